package molmesh

import (
	"image/color"
	"testing"

	"github.com/soypat/geometry/ms3"
)

func TestGeometryGroupSplit(t *testing.T) {
	bld := newTestBuilder(t)
	geo := Geometry{MaxGroupVertices: 100}
	// Each open tube is 32 vertices: three fit in a group, the fourth starts a new one.
	for i := 0; i < 4; i++ {
		p := ms3.Vec{X: float32(i)}
		bld.DrawCylinder(&geo, p, ms3.Add(p, ms3.Vec{Z: 1}), 0.1, red, CapNone, CapNone)
	}
	groups := geo.Groups()
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(groups))
	}
	if groups[0].Vertices != 96 || groups[1].Vertices != 32 {
		t.Errorf("unexpected group sizes %d %d", groups[0].Vertices, groups[1].Vertices)
	}
	if groups[1].ID != 1 {
		t.Errorf("unexpected group id %d", groups[1].ID)
	}
	// Indices restart in each group.
	for _, g := range groups {
		for i := 0; i < g.FaceIdx; i++ {
			if int(g.FaceArray[i]) >= g.Vertices {
				t.Fatalf("group %d: index %d out of range", g.ID, g.FaceArray[i])
			}
		}
	}
	if geo.VertexCount() != 128 || geo.TriangleCount() != 4*32 {
		t.Errorf("unexpected totals %d %d", geo.VertexCount(), geo.TriangleCount())
	}
	// A request larger than the limit gets its own group.
	bld.DrawSphere(&geo, ms3.Vec{}, 2, red, 1)
	if len(geo.Groups()) != 3 {
		t.Errorf("oversized request should start a group, have %d", len(geo.Groups()))
	}
}

func TestGeometryUnlimited(t *testing.T) {
	bld := newTestBuilder(t)
	geo := Geometry{MaxGroupVertices: -1}
	for i := 0; i < 200; i++ {
		bld.DrawSphere(&geo, ms3.Vec{X: float32(i)}, 1, red, 2)
	}
	if len(geo.Groups()) != 1 {
		t.Errorf("expected a single group, got %d", len(geo.Groups()))
	}
	if geo.VertexCount() <= DefaultMaxGroupVertices {
		t.Error("test should exceed default group size")
	}
}

func TestGeometryTruncate(t *testing.T) {
	bld := newTestBuilder(t)
	var geo Geometry
	bld.DrawSphere(&geo, ms3.Vec{}, 1, red, 1)
	bld.DrawCone(&geo, ms3.Vec{}, ms3.Vec{Y: 2}, 1, red)
	geo.Truncate()
	g := geo.Groups()[0]
	if len(g.VertexArray) != 3*g.Vertices || cap(g.VertexArray) != len(g.VertexArray) {
		t.Errorf("vertex array not truncated: len=%d cap=%d", len(g.VertexArray), cap(g.VertexArray))
	}
	if len(g.ColorArray) != 3*g.Vertices || len(g.NormalArray) != 3*g.Vertices {
		t.Error("attribute arrays not truncated")
	}
	if len(g.FaceArray) != g.FaceIdx || len(g.LineArray) != g.LineIdx {
		t.Error("index arrays not truncated")
	}
	// Drawing after truncation grows arrays again.
	before := geo.VertexCount()
	bld.DrawSphere(&geo, ms3.Vec{X: 4}, 1, red, 1)
	if got := geo.VertexCount(); got != before+17*11 {
		t.Errorf("got %d vertices after redraw, want %d", got, before+17*11)
	}
	if len(g.VertexArray) < 3*g.Vertices {
		t.Error("vertex array did not grow")
	}
	geo.Reset()
	if len(geo.Groups()) != 0 || geo.VertexCount() != 0 {
		t.Error("reset should drop groups")
	}
}

func TestGeometryBounds(t *testing.T) {
	bld := newTestBuilder(t)
	var geo Geometry
	bld.DrawSphere(&geo, ms3.Vec{X: 1, Y: 2, Z: 3}, 2, red, 2)
	bb := geo.Bounds()
	if !vecClose(bb.Min, ms3.Vec{X: -1, Y: 0, Z: 1}, 1e-4) || !vecClose(bb.Max, ms3.Vec{X: 3, Y: 4, Z: 5}, 1e-4) {
		t.Errorf("unexpected bounds %+v", bb)
	}
}

func TestColorConversions(t *testing.T) {
	c := ColorFrom(color.RGBA{R: 255, G: 128, A: 255})
	if c.R != 1 || absf(c.G-128./255) > 1e-6 || c.B != 0 {
		t.Errorf("unexpected color %v", c)
	}
	if ColorHex(0xff8000).Hex() != 0xff8000 {
		t.Error("hex round trip failed")
	}
	if ColorFrom(nil) != (Color{}) {
		t.Error("nil color should be black")
	}
	r, g, b, a := Color{R: 1, B: 0.5}.RGBA()
	if r != 0xffff || g != 0 || b != 128*0x101 || a != 0xffff {
		t.Errorf("unexpected RGBA %x %x %x %x", r, g, b, a)
	}
}
