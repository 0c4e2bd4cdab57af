package molmesh

import "github.com/soypat/geometry/ms3"

// DrawCylinder draws a cylinder of the given radius between from and to into geo.
// fromCap and toCap select the style of each end; when either is not [CapNone]
// the cylinder is emitted as a single closed mesh with both cap hemispheres
// sharing the body vertices at their equator.
// Nothing is drawn if from or to are missing (non-finite) or radius is not positive.
func (bld *Builder) DrawCylinder(geo GeoGroupUpdater, from, to ms3.Vec, radius float32, color Color, fromCap, toCap Cap) {
	if !finite(from) || !finite(to) || !(radius > 0) {
		return
	}
	fromCap = bld.validCap(fromCap)
	toCap = bld.validCap(toCap)
	drawcaps := fromCap != CapNone || toCap != CapNone
	rot := RotationFor(ms3.Sub(to, from))

	toMesh := bld.cyl.Get(radius, toCap, RoleTo)
	n, h := toMesh.W, toMesh.H
	nverts := 2 * n
	if drawcaps {
		nverts = h*n + 2
	}
	g := geo.UpdateGeoGroup(nverts)
	start := g.Vertices
	s := uint32(start)

	// Body: paired vertices on the from and to rings share the rotated basis ray as normal.
	// Positions are computed exactly as the caps compute them so shared equator
	// vertices are bit for bit the same whichever loop writes them last.
	toRow, fromRow := toMesh.Rows[h/2], toMesh.Rows[h/2+1]
	for i := 0; i < n; i++ {
		vi := start + 2*i
		normal := rot.Apply(toMesh.Normals[2*i])
		off := rot.Apply(toMesh.Vertices[2*i])
		g.SetVertex(vi, ms3.Add(off, from))
		g.SetVertex(vi+1, ms3.Add(off, to))
		g.SetNormal(vi, normal)
		g.SetNormal(vi+1, normal)
		g.SetColor(vi, color)
		g.SetColor(vi+1, color)
		g.AddTriangle(s+uint32(fromRow[i]), s+uint32(fromRow[i+1]), s+uint32(toRow[i]))
		g.AddTriangle(s+uint32(toRow[i]), s+uint32(fromRow[i+1]), s+uint32(toRow[i+1]))
	}

	if drawcaps {
		fromMesh := bld.cyl.Get(radius, fromCap, RoleFrom)
		ystart, yend := h/2, h/2+1
		if toCap != CapNone {
			ystart = 0
		}
		if fromCap != CapNone {
			yend = h + 1
		}
		for y := ystart; y < yend; y++ {
			if y == h/2 {
				continue // Both equator rows are body rings.
			}
			mesh, center := toMesh, to
			if y > h/2 {
				mesh, center = fromMesh, from
			}
			put := func(v int) uint32 {
				vi := start + v
				g.SetVertex(vi, ms3.Add(rot.Apply(mesh.Vertices[v]), center))
				g.SetNormal(vi, rot.Apply(mesh.Normals[v]))
				g.SetColor(vi, color)
				return uint32(vi)
			}
			row, next := mesh.Rows[y], mesh.Rows[y+1]
			for x := 0; x < n; x++ {
				switch {
				case y == 0: // Pole fan at the to end.
					g.AddTriangle(put(row[x+1]), put(next[x]), put(next[x+1]))
				case y == yend-1: // Pole fan at the from end.
					g.AddTriangle(put(row[x+1]), put(row[x]), put(next[x]))
				default:
					v1, v2, v3, v4 := put(row[x+1]), put(row[x]), put(next[x]), put(next[x+1])
					g.AddTriangle(v1, v2, v4)
					g.AddTriangle(v2, v3, v4)
				}
			}
		}
		// Slots of an omitted cap are reserved but unreferenced by faces.
		// Collapse them onto the open end so they stay within the cylinder's bounds.
		axis := rot.Apply(ms3.Vec{Y: 1})
		collapse := func(rows [][]int, center, normal ms3.Vec) {
			for _, row := range rows {
				for _, v := range row {
					vi := start + v
					g.SetVertex(vi, center)
					g.SetNormal(vi, normal)
					g.SetColor(vi, color)
				}
			}
		}
		if toCap == CapNone {
			collapse(toMesh.Rows[:h/2], to, axis)
		}
		if fromCap == CapNone {
			collapse(toMesh.Rows[h/2+2:], from, ms3.Scale(-1, axis))
		}
	}
	g.Vertices += nverts
}

// DrawCone draws a cone with its base disc centered at from and its apex at to.
// Nothing is drawn if from or to are missing, coincide, or radius is not positive.
func (bld *Builder) DrawCone(geo GeoGroupUpdater, from, to ms3.Vec, radius float32, color Color) {
	if !finite(from) || !finite(to) || !(radius > 0) {
		return
	}
	axis := ms3.Sub(to, from)
	if axis == (ms3.Vec{}) {
		return
	}
	rot := RotationFor(axis)
	ndir := ms3.Unit(axis)
	n := bld.basis.Len()
	nverts := n + 2
	g := geo.UpdateGeoGroup(nverts)
	start := g.Vertices
	s := uint32(start)

	g.SetVertex(start, from)
	g.SetNormal(start, ms3.Scale(-1, ndir))
	g.SetColor(start, color)
	g.SetVertex(start+1, to)
	g.SetNormal(start+1, ndir)
	g.SetColor(start+1, color)
	for i := 0; i < n; i++ {
		vi := start + 2 + i
		normal := rot.Apply(bld.basis.rays[i])
		g.SetVertex(vi, ms3.Add(ms3.Scale(radius, normal), from))
		g.SetNormal(vi, normal)
		g.SetColor(vi, color)
	}
	g.Vertices += nverts

	for i := 0; i < n; i++ {
		v1 := s + 2 + uint32(i)
		v2 := s + 2 + uint32((i+1)%n)
		g.AddTriangle(v2, v1, s)   // Base.
		g.AddTriangle(v1, v2, s+1) // Side.
	}
}

// DrawSphere draws a sphere centered at pos. Quality scales tessellation, quality<=0
// uses the builder's configured sphere quality. Besides faces, DrawSphere writes
// the wireframe edges of the sphere as line indices.
// Nothing is drawn if pos is missing or radius is not positive.
func (bld *Builder) DrawSphere(geo GeoGroupUpdater, pos ms3.Vec, radius float32, color Color, quality int) {
	if !finite(pos) || !(radius > 0) {
		return
	}
	if quality <= 0 {
		quality = bld.quality
	}
	sm := bld.sph.Get(radius, quality)
	nverts := len(sm.Vertices)
	g := geo.UpdateGeoGroup(nverts)
	start := g.Vertices
	for i, v := range sm.Vertices {
		g.SetVertex(start+i, ms3.Add(v, pos))
		g.SetNormal(start+i, sm.Normals[i])
		g.SetColor(start+i, color)
	}
	g.Vertices += nverts

	s := uint32(start)
	h := len(sm.Rows) - 1
	for y := 0; y < h; y++ {
		row, next := sm.Rows[y], sm.Rows[y+1]
		w := len(row) - 1
		for x := 0; x < w; x++ {
			v1 := s + uint32(row[x+1])
			v2 := s + uint32(row[x])
			v3 := s + uint32(next[x])
			v4 := s + uint32(next[x+1])
			switch y {
			case 0:
				g.AddTriangle(v1, v3, v4)
				g.AddLine(v1, v3)
				g.AddLine(v1, v4)
				g.AddLine(v3, v4)
			case h - 1:
				g.AddTriangle(v1, v2, v3)
				g.AddLine(v1, v2)
				g.AddLine(v1, v3)
				g.AddLine(v2, v3)
			default:
				g.AddTriangle(v1, v2, v4)
				g.AddTriangle(v2, v3, v4)
				g.AddLine(v1, v2)
				g.AddLine(v1, v4)
				g.AddLine(v2, v3)
				g.AddLine(v3, v4)
			}
		}
	}
}

func (bld *Builder) validCap(c Cap) Cap {
	switch c {
	case CapNone, CapFlat, CapRound:
		return c
	}
	bld.warnf("unknown cap %s drawn as %s", c, CapNone)
	return CapNone
}
