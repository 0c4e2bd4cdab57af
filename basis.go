package molmesh

import (
	"errors"

	"github.com/soypat/geometry/ms3"
)

const maxSubdivisions = 12

// Basis is an ordered ring of unit vectors evenly spaced around the +Y axis.
// It is the cross section template shared by every cylinder, cone and cap.
type Basis struct {
	rays []ms3.Vec
}

// NewBasis builds 2**subdivisions rays by repeatedly inserting normalized
// midpoints between the four axis aligned seed rays. No trigonometry is used,
// and ray order follows increasing angle from -X towards +Z.
func NewBasis(subdivisions int) (*Basis, error) {
	if subdivisions < 2 {
		return nil, errors.New("basis needs at least 2 subdivisions")
	} else if subdivisions > maxSubdivisions {
		return nil, errors.New("too many basis subdivisions")
	}
	N := 1 << subdivisions
	rays := make([]ms3.Vec, N)
	spacing := N / 4
	rays[0] = ms3.Vec{X: -1}
	rays[spacing] = ms3.Vec{Z: 1}
	rays[2*spacing] = ms3.Vec{X: 1}
	rays[3*spacing] = ms3.Vec{Z: -1}
	for i := 3; i <= subdivisions; i++ {
		M := 1 << (i - 1)
		spacing = N / M
		for j := 0; j < M-1; j++ {
			rays[spacing/2+j*spacing] = ms3.Unit(ms3.Add(rays[j*spacing], rays[(j+1)*spacing]))
		}
		// Last midpoint wraps around to the first ray.
		j := M - 1
		rays[spacing/2+j*spacing] = ms3.Unit(ms3.Add(rays[j*spacing], rays[0]))
	}
	return &Basis{rays: rays}, nil
}

// Len returns the amount of rays.
func (b *Basis) Len() int { return len(b.rays) }

// Ray returns the i'th ray.
func (b *Basis) Ray(i int) ms3.Vec { return b.rays[i] }

// Rays returns a copy of the rays.
func (b *Basis) Rays() []ms3.Vec {
	return append([]ms3.Vec(nil), b.rays...)
}
