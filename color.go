package glshapes

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms1"
)

// HSV converts hue, saturation and value on the range 0..1 to an RGB color
// stored as X=R, Y=G, Z=B on the range 0..1. Hue wraps around.
func HSV(h, s, v float32) ms3.Vec {
	h = wrapHue(h)
	s = ms1.Clamp(s, 0, 1)
	v = ms1.Clamp(v, 0, 1)
	var (
		c = s * v
		x = c * (1 - math32.Abs(math32.Mod(h*6, 2)-1))
		m = v - c
	)
	var r, g, b float32
	switch {
	case h <= 1.0/6:
		r, g, b = c, x, 0
	case h <= 2.0/6:
		r, g, b = x, c, 0
	case h <= 3.0/6:
		r, g, b = 0, c, x
	case h <= 4.0/6:
		r, g, b = 0, x, c
	case h <= 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return ms3.Vec{X: r + m, Y: g + m, Z: b + m}
}

// HSL converts hue, saturation and lightness on the range 0..1 to an RGB color
// on the range 0..1. Hue wraps around.
func HSL(h, s, l float32) ms3.Vec {
	h = wrapHue(h)
	s = ms1.Clamp(s, 0, 1)
	l = ms1.Clamp(l, 0, 1)
	if s == 0 {
		return ms3.Vec{X: l, Y: l, Z: l}
	}
	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return ms3.Vec{
		X: hueToRGB(p, q, h+1.0/3),
		Y: hueToRGB(p, q, h),
		Z: hueToRGB(p, q, h-1.0/3),
	}
}

// RGBToHSV is the inverse of [HSV].
func RGBToHSV(c ms3.Vec) (h, s, v float32) {
	r, g, b := c.X, c.Y, c.Z
	var (
		xmax  = max(r, g, b)
		xmin  = min(r, g, b)
		delta = xmax - xmin
	)
	v = xmax
	switch {
	case delta == 0:
		h = 0
	case v == r:
		h = (g - b) / (delta * 6)
	case v == g:
		h = 1.0/3 + (b-r)/(delta*6)
	default:
		h = 2.0/3 + (r-g)/(delta*6)
	}
	if h < 0 {
		h += 1
	}
	if xmax > 0 {
		s = delta / xmax
	}
	return h, s, v
}

// InterpHSV interpolates between two colors through HSV space taking the
// shortest path around the hue circle.
func InterpHSV(c0, c1 ms3.Vec, t float32) ms3.Vec {
	h0, s0, v0 := RGBToHSV(c0)
	h1, s1, v1 := RGBToHSV(c1)
	switch {
	case h1-h0 > 0.5:
		h0 += 1.0
	case h1-h0 < -0.5:
		h1 += 1.0
	}
	return HSV(ms1.Interp(h0, h1, t), ms1.Interp(s0, s1, t), ms1.Interp(v0, v1, t))
}

// Rainbow returns n fully saturated colors evenly spaced around the hue circle.
func Rainbow(n int) []ms3.Vec {
	colors := make([]ms3.Vec, n)
	for i := range colors {
		colors[i] = HSL(float32(i)/float32(n), 1, 0.5)
	}
	return colors
}

// Tint blends every vertex color of m a fraction t towards c with [InterpHSV].
// A mesh without colors is filled with c.
func (m *Mesh) Tint(c ms3.Vec, t float32) {
	if !m.HasColors() {
		m.Colors = make([]ms3.Vec, m.NumVertices())
		for i := range m.Colors {
			m.Colors[i] = c
		}
		return
	}
	for i, vc := range m.Colors {
		m.Colors[i] = InterpHSV(vc, c, t)
	}
}

func hueToRGB(p, q, t float32) float32 {
	t = wrapHue(t)
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func wrapHue(h float32) float32 {
	h = math32.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	return h
}
