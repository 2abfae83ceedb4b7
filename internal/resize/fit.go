// Package resize keeps the surface at a 3:2 fit of its container and
// debounces the expensive final redraw.
package resize

// Ratio is the height to width factor applied to the container width.
const Ratio = 0.66

// Fit returns the surface size for a container. The surface takes the full
// container width unless the resulting height would reach the container
// height, in which case it takes the full height and a 3:2 width instead.
func Fit(containerW, containerH int) (w, h int) {
	if containerW <= 0 || containerH <= 0 {
		return 0, 0
	}
	candidate := int(float64(containerW) * Ratio)
	if candidate >= containerH {
		return int(float64(containerH) * 1.5), containerH
	}
	return containerW, candidate
}
