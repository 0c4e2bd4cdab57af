package molmesh

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const (
	// DefaultSubdivisions is the basis subdivision depth: 2**4 = 16 rays around a cylinder.
	DefaultSubdivisions = 4
	// DefaultCapHeightSegments is the amount of latitude segments of a capped cylinder.
	// Must be even so an exact equator row exists.
	DefaultCapHeightSegments = 10
	// DefaultSphereQuality scales the tessellation of spheres.
	DefaultSphereQuality = 2

	// polarTol guards the rotation solver against dividing by a vanishing hypotenuse.
	polarTol = 1e-4
	// seamTol snaps near-zero z components of cap vertices to zero to avoid seam artifacts.
	seamTol = 1e-5
)

// Cap is the style of a cylinder end.
type Cap uint8

const (
	CapNone  Cap = iota // open tube
	CapFlat             // disc
	CapRound            // hemisphere
)

func (c Cap) String() string {
	switch c {
	case CapNone:
		return "none"
	case CapFlat:
		return "flat"
	case CapRound:
		return "round"
	}
	return fmt.Sprintf("Cap(%d)", uint8(c))
}

// CapRole tells apart the cap at the start of a cylinder from the cap at its end.
type CapRole uint8

const (
	RoleTo CapRole = iota
	RoleFrom
)

func (r CapRole) String() string {
	switch r {
	case RoleTo:
		return "to"
	case RoleFrom:
		return "from"
	}
	return fmt.Sprintf("CapRole(%d)", uint8(r))
}

// Config configures a [Builder]. The zero value is ready to use.
type Config struct {
	// BasisSubdivisions sets the amount of basis rays to 2**BasisSubdivisions. Zero uses [DefaultSubdivisions].
	BasisSubdivisions int
	// CapHeightSegments is the amount of latitude segments spanning both caps of a cylinder.
	// Odd values are rounded up with a warning. Zero uses [DefaultCapHeightSegments].
	CapHeightSegments int
	// SphereQuality is used by DrawSphere when called with quality<=0. Zero uses [DefaultSphereQuality].
	SphereQuality int
	// Logger receives warnings. If nil [log.Default] is used.
	Logger *log.Logger
}

// Builder owns the basis and mesh caches shared by all drawn primitives and
// draws cylinders, cones and spheres into geometry buffers.
// A Builder may be shared between goroutines as long as each goroutine draws into its own geometry.
type Builder struct {
	basis   *Basis
	cyl     *CylinderCache
	sph     *SphereCache
	quality int
	logger  *log.Logger
	mu      sync.Mutex
	warns   []error
}

// NewBuilder returns a Builder with fresh caches.
func NewBuilder(cfg Config) (*Builder, error) {
	bld := &Builder{
		logger:  cfg.Logger,
		quality: cfg.SphereQuality,
	}
	if bld.logger == nil {
		bld.logger = log.Default()
	}
	if bld.quality <= 0 {
		bld.quality = DefaultSphereQuality
	}
	subdivs := cfg.BasisSubdivisions
	if subdivs == 0 {
		subdivs = DefaultSubdivisions
	}
	basis, err := NewBasis(subdivs)
	if err != nil {
		return nil, err
	}
	bld.basis = basis

	h := cfg.CapHeightSegments
	switch {
	case h == 0:
		h = DefaultCapHeightSegments
	case h < 2:
		bld.warnf("cap height segments %d too small, using %d", h, DefaultCapHeightSegments)
		h = DefaultCapHeightSegments
	case h%2 != 0:
		bld.warnf("cap height segments should be even, got %d; using %d", h, h+1)
		h++
	}
	bld.cyl = NewCylinderCache(basis, h)
	bld.sph = NewSphereCache()
	return bld, nil
}

// Basis returns the basis rays shared by all cylinders and cones.
func (bld *Builder) Basis() *Basis { return bld.basis }

// CylinderCache returns the cache of capped cylinder meshes.
func (bld *Builder) CylinderCache() *CylinderCache { return bld.cyl }

// SphereCache returns the cache of sphere meshes.
func (bld *Builder) SphereCache() *SphereCache { return bld.sph }

// Err returns all warnings accumulated by the builder joined as a single error.
func (bld *Builder) Err() error {
	bld.mu.Lock()
	defer bld.mu.Unlock()
	if len(bld.warns) == 0 {
		return nil
	}
	return errors.Join(bld.warns...)
}

func (bld *Builder) warnf(msg string, args ...any) {
	err := fmt.Errorf(msg, args...)
	bld.mu.Lock()
	bld.warns = append(bld.warns, err)
	bld.mu.Unlock()
	bld.logger.Println("molmesh: warning:", err)
}

func finite(v ms3.Vec) bool {
	return !(math32.IsNaN(v.X) || math32.IsNaN(v.Y) || math32.IsNaN(v.Z) ||
		math32.IsInf(v.X, 0) || math32.IsInf(v.Y, 0) || math32.IsInf(v.Z, 0))
}

func hypotf(a, b float32) float32 {
	return math32.Hypot(a, b)
}

func absf(a float32) float32 {
	return math32.Abs(a)
}
