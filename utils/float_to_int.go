// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const int16Scale float32 = 32768.0

// Float32ToInt16 converts a normalized sample in [-1,1] to 16-bit PCM.
// Values outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	return SaturateInt16(x * int16Scale)
}

// Int16ToFloat32 converts 16-bit PCM to a normalized float32 sample.
// Float32ToInt16(Int16ToFloat32(v)) == v for every v.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / int16Scale
}

// SaturateInt16 narrows x to int16, truncating toward zero.
// Out of range values saturate at the int16 bounds, NaN becomes 0.
func SaturateInt16(x float32) int16 {
	switch {
	case x != x:
		return 0
	case x >= math.MaxInt16:
		return math.MaxInt16
	case x <= math.MinInt16:
		return math.MinInt16
	}

	return int16(x)
}

// ScaleInt16 multiplies a sample by gain in float32 and narrows the
// result with SaturateInt16.
func ScaleInt16(v int16, gain float32) int16 {
	return SaturateInt16(float32(v) * gain)
}
