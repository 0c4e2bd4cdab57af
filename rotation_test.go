package molmesh

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestRotationVerticalFallback(t *testing.T) {
	// dxy=0 so the first rotation is skipped, second rotation takes +Y onto +Z.
	got := RotationFor(ms3.Vec{Z: 1})
	want := Rotation{1, 0, 0, 0, 0, 1, 0, -1, 0}
	for i := range want {
		if absf(got[i]-want[i]) > 1e-6 {
			t.Fatalf("element %d: got %v, want %v (full %v)", i, got[i], want[i], got)
		}
	}
	y := got.Apply(ms3.Vec{Y: 1})
	if !vecClose(y, ms3.Vec{Z: 1}, 1e-6) {
		t.Error("expected +Y mapped to +Z, got", y)
	}
}

func TestRotationDegenerate(t *testing.T) {
	// Both hypotenuses under tolerance: identity, no NaNs.
	for _, dir := range []ms3.Vec{{}, {X: 5e-5}, {Y: -3e-5, Z: 2e-5}} {
		got := RotationFor(dir)
		want := Rotation{1, 0, 0, 0, 1, 0, 0, 0, 1}
		for i := range want {
			if math32.IsNaN(got[i]) {
				t.Fatalf("NaN in rotation for %v: %v", dir, got)
			}
			if absf(got[i]-want[i]) > 1e-6 {
				t.Fatalf("dir %v: got %v, want identity", dir, got)
			}
		}
	}
}

func TestRotationAlignsAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dirs := []ms3.Vec{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: -1}, {X: 1e-5, Z: 3}, {X: 1, Y: 1, Z: 1},
	}
	for i := 0; i < 200; i++ {
		dirs = append(dirs, ms3.Vec{
			X: 20 * (rng.Float32() - 0.5),
			Y: 20 * (rng.Float32() - 0.5),
			Z: 20 * (rng.Float32() - 0.5),
		})
	}
	for _, dir := range dirs {
		if ms3.Norm(dir) < 1e-3 {
			continue
		}
		rot := RotationFor(dir)
		got := rot.Apply(ms3.Vec{Y: 1})
		want := ms3.Unit(dir)
		if !vecClose(got, want, 1e-4) {
			t.Errorf("dir %v: +Y mapped to %v, want %v", dir, got, want)
		}
		// Columns must be orthonormal and right handed.
		cx := rot.Apply(ms3.Vec{X: 1})
		cy := rot.Apply(ms3.Vec{Y: 1})
		cz := rot.Apply(ms3.Vec{Z: 1})
		if absf(ms3.Norm(cx)-1) > 1e-5 || absf(ms3.Norm(cz)-1) > 1e-5 {
			t.Errorf("dir %v: non unit columns", dir)
		}
		if absf(ms3.Dot(cx, cy)) > 1e-5 || absf(ms3.Dot(cy, cz)) > 1e-5 || absf(ms3.Dot(cx, cz)) > 1e-5 {
			t.Errorf("dir %v: non orthogonal columns", dir)
		}
		if det := ms3.Dot(ms3.Cross(cx, cy), cz); absf(det-1) > 1e-5 {
			t.Errorf("dir %v: determinant %v", dir, det)
		}
	}
}

func TestRotationMat3(t *testing.T) {
	rot := RotationFor(ms3.Vec{X: 1, Y: -2, Z: 0.5})
	m := rot.Mat3()
	for _, v := range []ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 0.3, Y: -4, Z: 2}} {
		got := ms3.MulMatVec(m, v)
		want := rot.Apply(v)
		if !vecClose(got, want, 1e-6) {
			t.Errorf("Mat3 mismatch for %v: got %v, want %v", v, got, want)
		}
	}
}

func vecClose(a, b ms3.Vec, tol float32) bool {
	return absf(a.X-b.X) <= tol && absf(a.Y-b.Y) <= tol && absf(a.Z-b.Z) <= tol
}
