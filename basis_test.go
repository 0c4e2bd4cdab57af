package molmesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestBasisDefault(t *testing.T) {
	b, err := NewBasis(DefaultSubdivisions)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 16 {
		t.Fatalf("want 16 rays, got %d", b.Len())
	}
	const step = 2 * math32.Pi / 16
	for i, ray := range b.Rays() {
		if absf(ms3.Norm(ray)-1) > 1e-6 {
			t.Errorf("ray %d not unit: %v", i, ms3.Norm(ray))
		}
		if ray.Y != 0 {
			t.Errorf("ray %d not perpendicular to Y axis: %v", i, ray)
		}
		// Angle measured from -X towards +Z must increase evenly.
		angle := math32.Atan2(ray.Z, -ray.X)
		if angle < -1e-6 {
			angle += 2 * math32.Pi
		}
		if want := float32(i) * step; absf(angle-want) > 1e-5 {
			t.Errorf("ray %d at angle %v, want %v", i, angle, want)
		}
	}
}

func TestBasisSubdivisions(t *testing.T) {
	for subdivs := 2; subdivs <= 7; subdivs++ {
		b, err := NewBasis(subdivs)
		if err != nil {
			t.Fatal(err)
		}
		if b.Len() != 1<<subdivs {
			t.Errorf("subdivisions %d: got %d rays", subdivs, b.Len())
		}
		for i := 0; i < b.Len(); i++ {
			if b.Ray(i) == (ms3.Vec{}) {
				t.Errorf("subdivisions %d: ray %d unset", subdivs, i)
			}
		}
	}
	for _, bad := range []int{-1, 0, 1, maxSubdivisions + 1} {
		_, err := NewBasis(bad)
		if err == nil {
			t.Errorf("expected error for %d subdivisions", bad)
		}
	}
}

func TestBasisRaysCopy(t *testing.T) {
	b, _ := NewBasis(3)
	rays := b.Rays()
	rays[0] = ms3.Vec{X: 100}
	if b.Ray(0) == rays[0] {
		t.Error("Rays must not alias the basis")
	}
}
