package molmesh

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// CylinderMesh is the memoized geometry of a capped cylinder of a given radius,
// centered at the origin with its axis along +Y.
//
// The first 2*W vertices are the cylinder body: vertex 2i lies on the ring
// drawn at the start of the cylinder and 2i+1 on the ring at its end.
// Rows holds H+2 latitude rings of W+1 vertex indices each, the last index of a ring
// repeating its first. Rows 0..H/2-1 make up the "to" cap and rows H/2+2..H+1 the
// "from" cap. The equator is represented by two rows that point back into the body:
// Rows[H/2] at odd (end ring) indices and Rows[H/2+1] at even (start ring) indices,
// so caps stitch onto the body without duplicate vertices.
type CylinderMesh struct {
	Vertices []ms3.Vec
	Normals  []ms3.Vec
	Rows     [][]int
	// W is the amount of vertices around each ring, equal to the basis length.
	W int
	// H is the amount of latitude segments spanning both caps.
	H int
}

// NumVertices returns the amount of vertices in the mesh, H*W+2.
func (cm *CylinderMesh) NumVertices() int { return len(cm.Vertices) }

type cylinderKey struct {
	radius float32
	cap    Cap
	role   CapRole
}

// CylinderCache memoizes [CylinderMesh] per radius, cap kind and cap role.
// Entries are built once and never evicted. It is safe for concurrent use.
type CylinderCache struct {
	basis *Basis
	h     int
	mu    sync.RWMutex
	cache map[cylinderKey]*CylinderMesh
}

// NewCylinderCache returns an empty cache for cylinders built on basis with
// heightSegments latitude segments. heightSegments should be even and at least 2.
func NewCylinderCache(basis *Basis, heightSegments int) *CylinderCache {
	return &CylinderCache{
		basis: basis,
		h:     heightSegments,
		cache: make(map[cylinderKey]*CylinderMesh),
	}
}

// Len returns the amount of cached meshes.
func (cc *CylinderCache) Len() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

// Get returns the mesh for the given radius, cap kind and role, building it on first request.
// The returned mesh must not be modified. Get panics on a cap kind other than
// [CapNone], [CapFlat] or [CapRound].
func (cc *CylinderCache) Get(radius float32, cap Cap, role CapRole) *CylinderMesh {
	key := cylinderKey{radius: radius, cap: cap, role: role}
	cc.mu.RLock()
	cm, ok := cc.cache[key]
	cc.mu.RUnlock()
	if ok {
		return cm
	}
	built := buildCylinderMesh(cc.basis, cc.h, radius, cap)
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cm, ok = cc.cache[key]; ok {
		return cm // Lost the race, keep the published entry.
	}
	cc.cache[key] = built
	return built
}

func buildCylinderMesh(basis *Basis, heightSegments int, radius float32, cap Cap) *CylinderMesh {
	w := basis.Len()
	h := heightSegments
	nvert := h*w + 2
	cm := &CylinderMesh{
		Vertices: make([]ms3.Vec, 0, nvert),
		Normals:  make([]ms3.Vec, 0, nvert),
		Rows:     make([][]int, 0, h+2),
		W:        w,
		H:        h,
	}
	for _, ray := range basis.rays {
		v := ms3.Scale(radius, ray)
		cm.Vertices = append(cm.Vertices, v, v)
		cm.Normals = append(cm.Normals, ray, ray)
	}

	for y := 0; y <= h; y++ {
		polar := y == 0 || y == h
		if y == h/2 {
			// Equator: point to the body rings instead of adding vertices.
			toRow := make([]int, w+1)
			fromRow := make([]int, w+1)
			for x := 0; x <= w; x++ {
				xi := 2 * x
				if x == w {
					xi = 0
				}
				toRow[x] = xi + 1
				fromRow[x] = xi
			}
			cm.Rows = append(cm.Rows, toRow, fromRow)
			continue
		}
		v := float32(y) / float32(h)
		theta := v * math32.Pi
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
		row := make([]int, w+1)
		for x := 0; x <= w; x++ {
			if x == w || (polar && x > 0) {
				row[x] = row[0] // Poles share a single vertex, last column closes the ring.
				continue
			}
			u := float32(x) / float32(w)
			phi := u * 2 * math32.Pi
			sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
			vtx := ms3.Vec{
				X: -radius * cosPhi * sinTheta,
				Y: radius * cosTheta,
				Z: radius * sinPhi * sinTheta,
			}
			if absf(vtx.Z) < seamTol {
				vtx.Z = 0
			}
			var n ms3.Vec
			switch cap {
			case CapFlat:
				vtx.Y = 0
				n = ms3.Unit(ms3.Vec{Y: cosTheta})
			case CapNone, CapRound:
				n = ms3.Unit(vtx)
			default:
				panic("unknown cap " + cap.String())
			}
			row[x] = len(cm.Vertices)
			cm.Vertices = append(cm.Vertices, vtx)
			cm.Normals = append(cm.Normals, n)
		}
		cm.Rows = append(cm.Rows, row)
	}
	return cm
}
