package molaux

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/soypat/molmesh"
)

// element holds per element display data: Jmol CPK color, van der Waals
// radius and covalent radius, both in Ångström.
type element struct {
	color    uint32
	vdw      float32
	covalent float32
}

var unknownElement = element{color: 0xff1493, vdw: 1.7, covalent: 0.77}

var elements = map[string]element{
	"H":  {0xffffff, 1.2, 0.31},
	"He": {0xd9ffff, 1.4, 0.28},
	"Li": {0xcc80ff, 1.82, 1.28},
	"B":  {0xffb5b5, 1.92, 0.84},
	"C":  {0x909090, 1.7, 0.76},
	"N":  {0x3050f8, 1.55, 0.71},
	"O":  {0xff0d0d, 1.52, 0.66},
	"F":  {0x90e050, 1.47, 0.57},
	"Na": {0xab5cf2, 2.27, 1.66},
	"Mg": {0x8aff00, 1.73, 1.41},
	"P":  {0xff8000, 1.8, 1.07},
	"S":  {0xffff30, 1.8, 1.05},
	"Cl": {0x1ff01f, 1.75, 1.02},
	"K":  {0x8f40d4, 2.75, 2.03},
	"Ca": {0x3dff00, 2.31, 1.76},
	"Fe": {0xe06633, 2.0, 1.32},
	"Cu": {0xc88033, 1.4, 1.32},
	"Zn": {0x7d80b0, 1.39, 1.22},
	"Br": {0xa62929, 1.85, 1.2},
	"I":  {0x940094, 1.98, 1.39},
}

func lookupElement(symbol string) (element, bool) {
	e, ok := elements[normalizeSymbol(symbol)]
	if !ok {
		return unknownElement, false
	}
	return e, true
}

// normalizeSymbol turns "CL", "cl" or " Cl" into "Cl".
func normalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(symbol)
	return string(unicode.ToUpper(r)) + strings.ToLower(symbol[size:])
}

// KnownElement reports whether symbol has tabulated display data.
func KnownElement(symbol string) bool {
	_, ok := lookupElement(symbol)
	return ok
}

// ElementColor returns the Jmol CPK color of the element. Unknown elements are deep pink.
func ElementColor(symbol string) molmesh.Color {
	e, _ := lookupElement(symbol)
	return molmesh.ColorHex(e.color)
}

// ElementRadius returns the van der Waals radius of the element.
func ElementRadius(symbol string) float32 {
	e, _ := lookupElement(symbol)
	return e.vdw
}

// CovalentRadius returns the covalent radius of the element, used for bond detection.
func CovalentRadius(symbol string) float32 {
	e, _ := lookupElement(symbol)
	return e.covalent
}
