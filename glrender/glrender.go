package glrender

import (
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/molmesh"
)

// Renderer reads triangles into dst. It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// GeometryRenderer implements [Renderer] over the faces of a [molmesh.Geometry].
// Triangles are read group by group in index order.
type GeometryRenderer struct {
	groups []*molmesh.GeoGroup
	group  int
	tri    int
}

// NewGeometryRenderer returns a renderer that reads the faces written to geo.
// Groups added to geo after the call are not read.
func NewGeometryRenderer(geo *molmesh.Geometry) *GeometryRenderer {
	gr := &GeometryRenderer{}
	gr.Reset(geo)
	return gr
}

// Reset discards read state and starts reading geo from the start.
func (gr *GeometryRenderer) Reset(geo *molmesh.Geometry) {
	*gr = GeometryRenderer{
		groups: append(gr.groups[:0], geo.Groups()...),
	}
}

// ReadTriangles implements [Renderer]. userData is not used.
func (gr *GeometryRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) {
		if gr.group >= len(gr.groups) {
			return n, io.EOF
		}
		g := gr.groups[gr.group]
		if gr.tri >= g.NumTriangles() {
			gr.group++
			gr.tri = 0
			continue
		}
		idx := g.Triangle(gr.tri)
		dst[n] = ms3.Triangle{g.Vertex(int(idx[0])), g.Vertex(int(idx[1])), g.Vertex(int(idx[2]))}
		gr.tri++
		n++
	}
	return n, nil
}

// triangleNormal returns the unit normal of t by the right hand rule, or the zero vector
// for degenerate triangles.
func triangleNormal(t ms3.Triangle) ms3.Vec {
	n := ms3.Cross(ms3.Sub(t[1], t[0]), ms3.Sub(t[2], t[0]))
	if ms3.Norm(n) == 0 {
		return ms3.Vec{}
	}
	return ms3.Unit(n)
}
