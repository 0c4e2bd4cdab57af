package molmesh

import "github.com/soypat/geometry/ms3"

// Rotation is a 3x3 rotation matrix stored in column major order.
// Canonical shapes are built around the +Y axis; a Rotation returned by
// [RotationFor] maps +Y onto the requested direction.
type Rotation [9]float32

// RotationFor returns the rotation that aligns the +Y axis with dir by
// rotating about the z axis and then about the x axis.
// A direction with no xy component skips the first rotation, a direction
// with no yz component after the first rotation skips the second,
// so the zero vector yields the identity.
func RotationFor(dir ms3.Vec) Rotation {
	dx, dy, dz := dir.X, dir.Y, dir.Z
	var sinA, cosA float32 = 0, 1
	if dxy := hypotf(dx, dy); dxy >= polarTol {
		sinA = -dx / dxy
		cosA = dy / dxy
	}
	dy = -sinA*dx + cosA*dy
	var sinB, cosB float32 = 0, 1
	if dyz := hypotf(dy, dz); dyz >= polarTol {
		sinB = dz / dyz
		cosB = dy / dyz
	}
	return Rotation{
		cosA, sinA, 0,
		-sinA * cosB, cosA * cosB, sinB,
		sinA * sinB, -cosA * sinB, cosB,
	}
}

// Apply returns v rotated by r.
func (r *Rotation) Apply(v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: r[0]*v.X + r[3]*v.Y + r[6]*v.Z,
		Y: r[1]*v.X + r[4]*v.Y + r[7]*v.Z,
		Z: r[2]*v.X + r[5]*v.Y + r[8]*v.Z,
	}
}

// Array returns the column major elements of the rotation.
func (r Rotation) Array() [9]float32 { return r }

// Mat3 returns the rotation as a [ms3.Mat3].
func (r Rotation) Mat3() ms3.Mat3 {
	return ms3.NewMat3([]float32{
		r[0], r[3], r[6],
		r[1], r[4], r[7],
		r[2], r[5], r[8],
	})
}
