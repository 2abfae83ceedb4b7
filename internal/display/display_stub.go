//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package display

import "fmt"

type unsupportedBackend struct{}

func newBackend() backend {
	return unsupportedBackend{}
}

func (unsupportedBackend) ListMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}
