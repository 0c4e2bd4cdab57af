package molmesh

import "github.com/soypat/geometry/ms3"

// DefaultMaxGroupVertices limits the vertices of a [GeoGroup] so its faces
// may be indexed with 16 bit indices.
const DefaultMaxGroupVertices = 65535

// GeoGroupUpdater is implemented by geometry buffers emitters draw into.
// UpdateGeoGroup reserves room for addVertices more vertices and returns the group
// to write them to. After the call the emitter may write vertex data in
// [g.Vertices, g.Vertices+addVertices) and append face and line indices.
// The emitter advances g.Vertices once done.
type GeoGroupUpdater interface {
	UpdateGeoGroup(addVertices int) *GeoGroup
}

// GeoGroup is a batch of flat vertex, normal, color and index arrays ready for GPU upload.
// Vertex attributes are stored as 3 floats per vertex.
type GeoGroup struct {
	ID int
	// Vertices is the amount of vertices written, i.e: the next free vertex index.
	Vertices int
	// FaceIdx is the next free position in FaceArray.
	FaceIdx int
	// LineIdx is the next free position in LineArray.
	LineIdx int

	VertexArray []float32
	NormalArray []float32
	ColorArray  []float32
	FaceArray   []uint32
	LineArray   []uint32
}

func newGeoGroup(id int) *GeoGroup {
	return &GeoGroup{ID: id}
}

// reserve grows the vertex attribute arrays to fit n vertices past Vertices.
func (g *GeoGroup) reserve(n int) {
	need := 3 * (g.Vertices + n)
	g.VertexArray = growf32(g.VertexArray, need)
	g.NormalArray = growf32(g.NormalArray, need)
	g.ColorArray = growf32(g.ColorArray, need)
}

// SetVertex sets the position of vertex i.
func (g *GeoGroup) SetVertex(i int, v ms3.Vec) {
	g.VertexArray[3*i] = v.X
	g.VertexArray[3*i+1] = v.Y
	g.VertexArray[3*i+2] = v.Z
}

// SetNormal sets the normal of vertex i.
func (g *GeoGroup) SetNormal(i int, n ms3.Vec) {
	g.NormalArray[3*i] = n.X
	g.NormalArray[3*i+1] = n.Y
	g.NormalArray[3*i+2] = n.Z
}

// SetColor sets the color of vertex i.
func (g *GeoGroup) SetColor(i int, c Color) {
	g.ColorArray[3*i] = c.R
	g.ColorArray[3*i+1] = c.G
	g.ColorArray[3*i+2] = c.B
}

// Vertex returns the position of vertex i.
func (g *GeoGroup) Vertex(i int) ms3.Vec {
	return ms3.Vec{X: g.VertexArray[3*i], Y: g.VertexArray[3*i+1], Z: g.VertexArray[3*i+2]}
}

// Normal returns the normal of vertex i.
func (g *GeoGroup) Normal(i int) ms3.Vec {
	return ms3.Vec{X: g.NormalArray[3*i], Y: g.NormalArray[3*i+1], Z: g.NormalArray[3*i+2]}
}

// Color returns the color of vertex i.
func (g *GeoGroup) Color(i int) Color {
	return Color{R: g.ColorArray[3*i], G: g.ColorArray[3*i+1], B: g.ColorArray[3*i+2]}
}

// AddTriangle writes a triangle at FaceIdx and advances it.
func (g *GeoGroup) AddTriangle(a, b, c uint32) {
	g.FaceArray = growu32(g.FaceArray, g.FaceIdx+3)
	g.FaceArray[g.FaceIdx] = a
	g.FaceArray[g.FaceIdx+1] = b
	g.FaceArray[g.FaceIdx+2] = c
	g.FaceIdx += 3
}

// AddLine writes a line segment at LineIdx and advances it.
func (g *GeoGroup) AddLine(a, b uint32) {
	g.LineArray = growu32(g.LineArray, g.LineIdx+2)
	g.LineArray[g.LineIdx] = a
	g.LineArray[g.LineIdx+1] = b
	g.LineIdx += 2
}

// NumTriangles returns the amount of triangles written.
func (g *GeoGroup) NumTriangles() int { return g.FaceIdx / 3 }

// Triangle returns the vertex indices of the i'th triangle.
func (g *GeoGroup) Triangle(i int) [3]uint32 {
	return [3]uint32{g.FaceArray[3*i], g.FaceArray[3*i+1], g.FaceArray[3*i+2]}
}

// Truncate shrinks all arrays to their written length, releasing spare capacity.
func (g *GeoGroup) Truncate() {
	nv := 3 * g.Vertices
	g.VertexArray = shrink(g.VertexArray[:nv])
	g.NormalArray = shrink(g.NormalArray[:nv])
	g.ColorArray = shrink(g.ColorArray[:nv])
	g.FaceArray = shrink(g.FaceArray[:g.FaceIdx])
	g.LineArray = shrink(g.LineArray[:g.LineIdx])
}

// Geometry is a growable list of [GeoGroup]. It implements [GeoGroupUpdater]
// and starts a new group when the current one would exceed MaxGroupVertices.
// The zero value is ready to use. Geometry is not safe for concurrent use.
type Geometry struct {
	// MaxGroupVertices limits vertices per group. Zero uses [DefaultMaxGroupVertices],
	// negative values disable the limit.
	MaxGroupVertices int
	groups           []*GeoGroup
}

// UpdateGeoGroup implements [GeoGroupUpdater]. A request larger than
// MaxGroupVertices gets a group of its own.
func (geo *Geometry) UpdateGeoGroup(addVertices int) *GeoGroup {
	limit := geo.MaxGroupVertices
	if limit == 0 {
		limit = DefaultMaxGroupVertices
	}
	var g *GeoGroup
	if len(geo.groups) > 0 {
		g = geo.groups[len(geo.groups)-1]
		if limit > 0 && g.Vertices > 0 && g.Vertices+addVertices > limit {
			g = nil
		}
	}
	if g == nil {
		g = newGeoGroup(len(geo.groups))
		geo.groups = append(geo.groups, g)
	}
	g.reserve(addVertices)
	return g
}

// Groups returns the geometry groups in order of creation.
func (geo *Geometry) Groups() []*GeoGroup { return geo.groups }

// VertexCount returns the vertices written across all groups.
func (geo *Geometry) VertexCount() (n int) {
	for _, g := range geo.groups {
		n += g.Vertices
	}
	return n
}

// TriangleCount returns the triangles written across all groups.
func (geo *Geometry) TriangleCount() (n int) {
	for _, g := range geo.groups {
		n += g.NumTriangles()
	}
	return n
}

// Bounds returns the bounding box of all written vertices.
func (geo *Geometry) Bounds() ms3.Box {
	var bb ms3.Box
	first := true
	for _, g := range geo.groups {
		for i := 0; i < g.Vertices; i++ {
			v := g.Vertex(i)
			if first {
				bb = ms3.Box{Min: v, Max: v}
				first = false
				continue
			}
			bb.Min = ms3.MinElem(bb.Min, v)
			bb.Max = ms3.MaxElem(bb.Max, v)
		}
	}
	return bb
}

// Truncate shrinks every group's arrays to their written length. Call before GPU upload.
func (geo *Geometry) Truncate() {
	for _, g := range geo.groups {
		g.Truncate()
	}
}

// Reset discards all groups.
func (geo *Geometry) Reset() {
	geo.groups = geo.groups[:0]
}

func growf32(s []float32, n int) []float32 {
	if n <= len(s) {
		return s
	}
	if n <= cap(s) {
		return s[:n]
	}
	return append(s[:cap(s)], make([]float32, n-cap(s))...)
}

func growu32(s []uint32, n int) []uint32 {
	if n <= len(s) {
		return s
	}
	if n <= cap(s) {
		return s[:n]
	}
	return append(s[:cap(s)], make([]uint32, n-cap(s))...)
}

func shrink[T any](s []T) []T {
	if len(s) == cap(s) {
		return s
	}
	return append([]T(nil), s...)
}
