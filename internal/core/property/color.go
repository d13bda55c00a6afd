package property

import "math"

// Color is an RGBA color with float32 channels in [0, 1].
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// HSB is the hue/saturation/brightness working representation the color
// resolver draws in. All channels are in [0, 1].
type HSB struct {
	H, S, B float64
}

// ToHSB converts the RGB channels to hue/saturation/brightness.
func (c Color) ToHSB() HSB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = math.Mod((g-b)/delta, 6)
	case max == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	if h < 0 {
		h += 1
	}

	var s float64
	if max > 0 {
		s = delta / max
	}
	return HSB{H: h, S: s, B: max}
}

// ToColor converts back to RGB, carrying alpha through from the caller.
func (v HSB) ToColor(alpha float32) Color {
	h := math.Mod(v.H, 1)
	if h < 0 {
		h += 1
	}
	c := v.B * v.S
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := v.B - c

	var r, g, b float64
	switch int(h * 6) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{
		R: float32(r + m),
		G: float32(g + m),
		B: float32(b + m),
		A: alpha,
	}
}

// NearlyEqual reports whether two colors match within tol on every channel.
func (c Color) NearlyEqual(other Color, tol float32) bool {
	abs := func(v float32) float32 {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(c.R-other.R) <= tol &&
		abs(c.G-other.G) <= tol &&
		abs(c.B-other.B) <= tol &&
		abs(c.A-other.A) <= tol
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
