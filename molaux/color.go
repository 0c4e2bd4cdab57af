package molaux

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/molmesh"
)

// HSV interpolation logic adapted from Esme Lamb's (@dedelala)
// color manipulation work presented at Gophercon AU 2024.
// https://github.com/dedelala/disco/tree/main/color

// Gradient returns a color scheme that maps values in [lo, hi] to colors interpolated
// in HSV space along stops, such as the red-white-blue scheme used to color
// atoms by partial charge or B-factor. Values outside the range are clamped.
// Gradient panics if given no stops.
func Gradient(lo, hi float32, stops ...molmesh.Color) func(v float32) molmesh.Color {
	if len(stops) == 0 {
		panic("gradient requires at least one color")
	}
	if len(stops) == 1 || lo == hi {
		c := stops[0]
		return func(float32) molmesh.Color { return c }
	}
	hsvStops := make([]hsv, len(stops))
	for i, c := range stops {
		hsvStops[i] = toHSV(c)
	}
	segments := float32(len(stops) - 1)
	return func(v float32) molmesh.Color {
		if math.IsNaN(v) {
			return stops[0]
		}
		t := ms1.Clamp((v-lo)/(hi-lo), 0, 1) * segments
		i := int(t)
		if i >= len(stops)-1 {
			return stops[len(stops)-1]
		}
		return hsvStops[i].lerp(hsvStops[i+1], t-float32(i)).color()
	}
}

// Common gradient stops.
var (
	RWB     = []molmesh.Color{{R: 1}, {R: 1, G: 1, B: 1}, {B: 1}}
	ROYGB   = []molmesh.Color{{R: 1}, {R: 1, G: 0.65}, {R: 1, G: 1}, {G: 1}, {B: 1}}
	Sinebow = []molmesh.Color{{R: 1}, {R: 1, G: 1}, {G: 1}, {G: 1, B: 1}, {B: 1}, {R: 1, B: 1}}
)

// hsv is a color as hue, saturation and value, all in [0, 1].
type hsv struct{ h, s, v float32 }

// lerp interpolates between a and b along the shorter way around the hue circle.
func (a hsv) lerp(b hsv, t float32) hsv {
	switch {
	case b.h-a.h > 0.5:
		a.h++
	case b.h-a.h < -0.5:
		b.h++
	}
	h := ms1.Interp(a.h, b.h, t)
	if h > 1 {
		h--
	}
	return hsv{h: h, s: ms1.Interp(a.s, b.s, t), v: ms1.Interp(a.v, b.v, t)}
}

func (c hsv) color() molmesh.Color {
	chroma := c.s * c.v
	x := chroma * (1 - math.Abs(math.Mod(c.h*6, 2)-1))
	m := c.v - chroma
	var r, g, b float32
	switch sector := min(int(c.h*6), 5); sector {
	case 0:
		r, g, b = chroma, x, 0
	case 1:
		r, g, b = x, chroma, 0
	case 2:
		r, g, b = 0, chroma, x
	case 3:
		r, g, b = 0, x, chroma
	case 4:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	return molmesh.Color{R: r + m, G: g + m, B: b + m}
}

func toHSV(c molmesh.Color) (out hsv) {
	hi := max(c.R, c.G, c.B)
	chroma := hi - min(c.R, c.G, c.B)
	out.v = hi
	switch {
	case chroma == 0:
	case hi == c.R:
		out.h = (c.G - c.B) / (chroma * 6)
	case hi == c.G:
		out.h = 1.0/3 + (c.B-c.R)/(chroma*6)
	default:
		out.h = 2.0/3 + (c.R-c.G)/(chroma*6)
	}
	if out.h < 0 {
		out.h++
	}
	if hi > 0 {
		out.s = chroma / hi
	}
	return out
}
