package molmesh

import "image/color"

// Color is a RGB color with components in [0,1]. The zero value is black,
// which is also the color used when none is given.
type Color struct {
	R, G, B float32
}

// ColorFrom converts c to a [Color], discarding alpha.
func ColorFrom(c color.Color) Color {
	if c == nil {
		return Color{}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// Undo alpha premultiplication.
	return Color{
		R: float32(r) / float32(a),
		G: float32(g) / float32(a),
		B: float32(b) / float32(a),
	}
}

// Hex returns the color encoded as 0xRRGGBB, handy for debugging.
func (c Color) Hex() uint32 {
	return uint32(to8bit(c.R))<<16 | uint32(to8bit(c.G))<<8 | uint32(to8bit(c.B))
}

// RGBA implements [color.Color].
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(to8bit(c.R)) * 0x101, uint32(to8bit(c.G)) * 0x101, uint32(to8bit(c.B)) * 0x101, 0xffff
}

// ColorHex returns the color for a 0xRRGGBB value.
func ColorHex(hex uint32) Color {
	return Color{
		R: float32(hex>>16&0xff) / 255,
		G: float32(hex>>8&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

func to8bit(f float32) uint8 {
	switch {
	case f <= 0 || f != f:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}
