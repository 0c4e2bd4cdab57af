package molaux

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// lookAt returns the view matrix of a camera at eye looking at target.
func lookAt(eye, target, up ms3.Vec) ms3.Mat4 {
	f := ms3.Unit(ms3.Sub(target, eye))
	s := ms3.Unit(ms3.Cross(f, up))
	u := ms3.Cross(s, f)
	return ms3.NewMat4([]float32{
		s.X, s.Y, s.Z, -ms3.Dot(s, eye),
		u.X, u.Y, u.Z, -ms3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, ms3.Dot(f, eye),
		0, 0, 0, 1,
	})
}

// perspective returns the OpenGL projection matrix for a vertical field of view fovy.
func perspective(fovy, aspect, near, far float32) ms3.Mat4 {
	f := 1 / math.Tan(fovy/2)
	return ms3.NewMat4([]float32{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	})
}
