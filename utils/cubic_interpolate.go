// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// the fractional position between y1 and y2 (0 <= x <= 1).
// At x == 0 the result is exactly y1.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// CubicWindow interpolates channel ch of a four frame window at x. Frames
// marked invalid (before the start or past the end of a stream) are
// replaced by their nearest valid neighbour; window[1] must be valid.
func CubicWindow(window *[4][]float32, valid *[4]bool, ch int, x float32) float32 {
	y1 := window[1][ch]
	y0, y2 := y1, y1
	if valid[0] {
		y0 = window[0][ch]
	}
	if valid[2] {
		y2 = window[2][ch]
	}
	y3 := y2
	if valid[3] {
		y3 = window[3][ch]
	}

	return CubicInterpolate(y0, y1, y2, y3, x)
}
