//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"fmt"
)

// WritePNG reports that the platform has no clipboard support.
func WritePNG([]byte) error {
	return fmt.Errorf("clipboard image operations are not supported on this platform")
}
