package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRootWithoutCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "Usage: whiteboard") || !strings.Contains(help, "replay") {
		t.Fatalf("unexpected help:\n%s", help)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	var uerr *UsageError
	if err := r.Run([]string{"paint"}); !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
}

func TestFitCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd, err := parseFitCmd([]string{"1000", "800"}, testRoot(&buf))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "1000x660\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestFitRejectsBadNumbers(t *testing.T) {
	var buf bytes.Buffer
	if _, err := parseFitCmd([]string{"wide", "800"}, testRoot(&buf)); err == nil || !strings.Contains(err.Error(), "invalid width") {
		t.Fatalf("err = %v", err)
	}
	var uerr *UsageError
	if _, err := parseFitCmd([]string{"800"}, testRoot(&buf)); !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
}

func TestConfigPrint(t *testing.T) {
	var buf bytes.Buffer
	r := testRoot(&buf)
	r.config.Tools.PenWidth = 7
	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "pen_width = 7") {
		t.Fatalf("output missing pen width:\n%s", buf.String())
	}
}

func TestColorsCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd, err := parseColorsCmd(nil, testRoot(&buf))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"* 1: black", "2: red", "#0000FF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	cmd, err := parseConfigCmd([]string{"-format", "yaml", "print"}, testRoot(&buf))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "debounce_ms: 300") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}
