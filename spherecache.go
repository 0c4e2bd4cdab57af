package molmesh

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// SphereMesh is the memoized UV-sphere of a given radius and quality, centered at the origin.
// Rows holds H+1 latitude rings of W+1 vertex indices, every index unique.
type SphereMesh struct {
	Vertices []ms3.Vec
	Normals  []ms3.Vec
	Rows     [][]int
	W, H     int
}

type sphereKey struct {
	quality int
	radius  float32
}

// SphereCache memoizes [SphereMesh] per quality and radius.
// Entries are built once and never evicted. It is safe for concurrent use.
type SphereCache struct {
	mu    sync.RWMutex
	cache map[sphereKey]*SphereMesh
}

// NewSphereCache returns an empty sphere mesh cache.
func NewSphereCache() *SphereCache {
	return &SphereCache{cache: make(map[sphereKey]*SphereMesh)}
}

// Len returns the amount of cached meshes.
func (sc *SphereCache) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.cache)
}

// Get returns the sphere mesh of the given radius and quality, building it on first request.
// A quality <= 0 is replaced with [DefaultSphereQuality]. The returned mesh must not be modified.
func (sc *SphereCache) Get(radius float32, quality int) *SphereMesh {
	if quality <= 0 {
		quality = DefaultSphereQuality
	}
	key := sphereKey{quality: quality, radius: radius}
	sc.mu.RLock()
	sm, ok := sc.cache[key]
	sc.mu.RUnlock()
	if ok {
		return sm
	}
	built := buildSphereMesh(radius, quality)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sm, ok = sc.cache[key]; ok {
		return sm
	}
	sc.cache[key] = built
	return built
}

// SphereSegments returns the tessellation of a sphere. Small spheres are coarser.
func SphereSegments(radius float32, quality int) (widthSegments, heightSegments int) {
	if radius < 1 {
		return 10 * quality, 8 * quality
	}
	return 16 * quality, 10 * quality
}

func buildSphereMesh(radius float32, quality int) *SphereMesh {
	w, h := SphereSegments(radius, quality)
	nvert := (w + 1) * (h + 1)
	sm := &SphereMesh{
		Vertices: make([]ms3.Vec, 0, nvert),
		Normals:  make([]ms3.Vec, 0, nvert),
		Rows:     make([][]int, 0, h+1),
		W:        w,
		H:        h,
	}
	for y := 0; y <= h; y++ {
		theta := float32(y) / float32(h) * math32.Pi
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
		row := make([]int, w+1)
		for x := 0; x <= w; x++ {
			phi := float32(x) / float32(w) * 2 * math32.Pi
			vtx := ms3.Vec{
				X: -radius * math32.Cos(phi) * sinTheta,
				Y: radius * cosTheta,
				Z: radius * math32.Sin(phi) * sinTheta,
			}
			row[x] = len(sm.Vertices)
			sm.Vertices = append(sm.Vertices, vtx)
			sm.Normals = append(sm.Normals, ms3.Unit(vtx))
		}
		sm.Rows = append(sm.Rows, row)
	}
	return sm
}
