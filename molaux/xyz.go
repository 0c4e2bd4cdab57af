package molaux

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms3"
)

// Sanity limit on the atom count read from an untrusted header.
const xyzMaxAtoms = 1 << 24

// ReadXYZ reads the first frame of an XYZ file: an atom count line, a comment
// line and one "element x y z" line per atom. An optional fifth column is
// stored as the atom's Value. Bonds are not part of the format, see [Model.Connect].
func ReadXYZ(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		ok := sc.Scan()
		line++
		return sc.Text(), ok
	}
	text, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty XYZ input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || natoms < 0 {
		return nil, fmt.Errorf("line 1: invalid atom count %q", text)
	} else if natoms > xyzMaxAtoms {
		return nil, fmt.Errorf("line 1: atom count %d too large", natoms)
	}
	if _, ok = next(); !ok && natoms > 0 {
		return nil, errors.New("missing XYZ comment line")
	}
	m := &Model{Atoms: make([]Atom, 0, min(natoms, 1<<12))}
	for len(m.Atoms) < natoms {
		text, ok = next()
		if !ok {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("got %d of %d atoms: %w", len(m.Atoms), natoms, io.ErrUnexpectedEOF)
		}
		fields := strings.Fields(text)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: want element and 3 coordinates, got %q", line, text)
		}
		var coords [4]float32
		for i := 1; i < len(fields) && i <= 4; i++ {
			f, err := strconv.ParseFloat(fields[i], 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			coords[i-1] = float32(f)
		}
		m.Atoms = append(m.Atoms, Atom{
			Elem:  normalizeSymbol(fields[0]),
			Pos:   ms3.Vec{X: coords[0], Y: coords[1], Z: coords[2]},
			Value: coords[3],
		})
	}
	return m, nil
}
