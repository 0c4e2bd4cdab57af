package molaux

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/molmesh"
)

// Atom is a single atom of a [Model].
type Atom struct {
	Elem string
	Pos  ms3.Vec
	// Value is a per atom scalar such as partial charge or B-factor,
	// used by value based color schemes.
	Value float32
}

// Bond connects the atoms at indices A and B of a [Model].
type Bond struct {
	A, B int
}

// Model is a molecule as a list of atoms and the bonds between them.
type Model struct {
	Atoms []Atom
	Bonds []Bond
}

// AddAtom appends an atom and returns its index.
func (m *Model) AddAtom(elem string, pos ms3.Vec) int {
	m.Atoms = append(m.Atoms, Atom{Elem: elem, Pos: pos})
	return len(m.Atoms) - 1
}

// AddBond bonds atoms a and b.
func (m *Model) AddBond(a, b int) error {
	err := m.checkBond(Bond{A: a, B: b})
	if err != nil {
		return err
	}
	m.Bonds = append(m.Bonds, Bond{A: a, B: b})
	return nil
}

func (m *Model) checkBond(b Bond) error {
	switch {
	case b.A < 0 || b.A >= len(m.Atoms) || b.B < 0 || b.B >= len(m.Atoms):
		return fmt.Errorf("bond %d-%d references atom out of range [0,%d)", b.A, b.B, len(m.Atoms))
	case b.A == b.B:
		return fmt.Errorf("atom %d bonded to itself", b.A)
	}
	return nil
}

// Connect replaces the bonds of m with bonds between every pair of atoms closer
// than the sum of their covalent radii plus tolerance. Hydrogens are not bonded to each other.
func (m *Model) Connect(tolerance float32) {
	m.Bonds = m.Bonds[:0]
	for i := range m.Atoms {
		ai := &m.Atoms[i]
		ri := CovalentRadius(ai.Elem)
		hi := normalizeSymbol(ai.Elem) == "H"
		for j := i + 1; j < len(m.Atoms); j++ {
			aj := &m.Atoms[j]
			if hi && normalizeSymbol(aj.Elem) == "H" {
				continue
			}
			lim := ri + CovalentRadius(aj.Elem) + tolerance
			if d := ms3.Norm(ms3.Sub(ai.Pos, aj.Pos)); d > 0 && d < lim {
				m.Bonds = append(m.Bonds, Bond{A: i, B: j})
			}
		}
	}
}

// BallStick configures [Model.Draw].
type BallStick struct {
	// AtomScale scales each atom's van der Waals radius to get its sphere radius.
	// Zero draws no spheres, only sticks.
	AtomScale float32
	// BondRadius is the stick radius. Zero draws no bonds.
	BondRadius float32
	// SphereQuality is passed to [molmesh.Builder.DrawSphere].
	SphereQuality int
	// Color picks the color of each atom and its half of each bond. nil uses [ElementColor].
	Color func(Atom) molmesh.Color
}

// DefaultBallStick returns the ball and stick style used by common molecular viewers.
func DefaultBallStick() BallStick {
	return BallStick{AtomScale: 0.25, BondRadius: 0.15, SphereQuality: 2}
}

// ColorByValue returns a [BallStick] color function that colors atoms by
// their Value along a [Gradient] spanning [lo, hi].
func ColorByValue(lo, hi float32, stops ...molmesh.Color) func(Atom) molmesh.Color {
	grad := Gradient(lo, hi, stops...)
	return func(a Atom) molmesh.Color { return grad(a.Value) }
}

// Draw draws m into geo in the ball and stick style. Each bond is drawn as two
// cylinders meeting at its midpoint when its atoms have different colors.
// Draw returns an error without drawing anything if a bond is invalid.
func (m *Model) Draw(bld *molmesh.Builder, geo molmesh.GeoGroupUpdater, style BallStick) error {
	if style.AtomScale < 0 || style.BondRadius < 0 {
		return errors.New("negative ball and stick dimensions")
	}
	for _, b := range m.Bonds {
		err := m.checkBond(b)
		if err != nil {
			return err
		}
	}
	colorOf := style.Color
	if colorOf == nil {
		colorOf = func(a Atom) molmesh.Color { return ElementColor(a.Elem) }
	}
	if style.AtomScale > 0 {
		for _, a := range m.Atoms {
			bld.DrawSphere(geo, a.Pos, style.AtomScale*ElementRadius(a.Elem), colorOf(a), style.SphereQuality)
		}
	}
	if style.BondRadius == 0 {
		return nil
	}
	// Rounded ends hide the joint between sticks when no spheres are drawn.
	endCap := molmesh.CapRound
	for _, b := range m.Bonds {
		a1, a2 := m.Atoms[b.A], m.Atoms[b.B]
		c1, c2 := colorOf(a1), colorOf(a2)
		if c1 == c2 {
			bld.DrawCylinder(geo, a1.Pos, a2.Pos, style.BondRadius, c1, endCap, endCap)
			continue
		}
		mid := ms3.Scale(0.5, ms3.Add(a1.Pos, a2.Pos))
		bld.DrawCylinder(geo, a1.Pos, mid, style.BondRadius, c1, endCap, molmesh.CapNone)
		bld.DrawCylinder(geo, mid, a2.Pos, style.BondRadius, c2, molmesh.CapNone, endCap)
	}
	return nil
}
