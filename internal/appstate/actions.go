package appstate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/whiteboard/internal/tool"
)

const (
	actionEraser     = "eraser"
	actionClear      = "clear"
	actionUndo       = "undo"
	actionRedo       = "redo"
	actionFullscreen = "fullscreen"
	actionDownload   = "download"
	actionCopy       = "copy"
	actionQuit       = "quit"

	penPrefix = "pen:"
)

func penAction(p tool.PenColor) string { return penPrefix + p.Name }

// penFromAction resolves a pen action back to its colour.
func penFromAction(action string) (tool.PenColor, bool) {
	name, ok := strings.CutPrefix(action, penPrefix)
	if !ok {
		return tool.PenColor{}, false
	}
	return tool.LookupPen(name)
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func defaultShortcuts() map[KeyShortcut]string {
	m := map[KeyShortcut]string{
		{Rune: 'e'}:                                           actionEraser,
		{Code: key.CodeDeleteForward}:                         actionClear,
		{Rune: 'z', Modifiers: key.ModControl}:                actionUndo,
		{Rune: 'y', Modifiers: key.ModControl}:                actionRedo,
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift}: actionRedo,
		{Rune: 's', Modifiers: key.ModControl}:                actionDownload,
		{Rune: 'c', Modifiers: key.ModControl}:                actionCopy,
		{Code: key.CodeF11}:                                   actionFullscreen,
		{Rune: 'q'}:                                           actionQuit,
		{Code: key.CodeEscape}:                                actionQuit,
	}
	for i, p := range tool.PenColors() {
		m[KeyShortcut{Rune: rune('1' + i)}] = penAction(p)
	}
	return m
}

// actionForKey maps a key press to an action name, or "" when unbound.
// Letters match case-insensitively; codes take priority over runes.
func actionForKey(shortcuts map[KeyShortcut]string, e key.Event) string {
	if e.Direction == key.DirRelease {
		return ""
	}
	mods := e.Modifiers & (key.ModControl | key.ModShift | key.ModAlt | key.ModMeta)
	if a, ok := shortcuts[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok && e.Code != key.CodeUnknown {
		return a
	}
	r := unicode.ToLower(e.Rune)
	if r <= 0 {
		r = runeForCode(e.Code)
	}
	if r <= 0 {
		return ""
	}
	if a, ok := shortcuts[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
		return a
	}
	// Shifted digits and letters still arrive with ModShift set.
	return shortcuts[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]
}

// runeForCode covers control combinations that arrive without a rune.
func runeForCode(c key.Code) rune {
	switch {
	case c >= key.CodeA && c <= key.CodeZ:
		return 'a' + rune(c-key.CodeA)
	case c >= key.Code1 && c <= key.Code9:
		return '1' + rune(c-key.Code1)
	}
	return -1
}

// downloadPath names the PNG written by the download action.
func downloadPath(dir string, now time.Time) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fmt.Sprintf("whiteboard-%s.png", now.Format("20060102-150405")))
}
