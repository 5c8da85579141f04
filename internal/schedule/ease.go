package schedule

import "math"

// easeInOutCubic maps linear progress t in [0,1] onto a smooth S-curve:
// 4t^3 below the midpoint, 1 - (-2t+2)^3/2 above it.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Blend interpolates between two colors with cubic easing applied to
// progress. Channel values are truncated to integers, not rounded, so the
// endpoints reproduce the input colors exactly.
func Blend(from, to Color, progress float64) Color {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	eased := easeInOutCubic(progress)
	return Color{
		R: blendChannel(from.R, to.R, eased),
		G: blendChannel(from.G, to.G, eased),
		B: blendChannel(from.B, to.B, eased),
	}
}

func blendChannel(from, to uint8, eased float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*eased)
}
