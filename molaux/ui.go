//go:build !tinygo && cgo

package molaux

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/molmesh"
)

const vertexSrc = `#version 460
in vec3 aPos;
in vec3 aNormal;
in vec3 aColor;
uniform mat4 uView;
uniform mat4 uProj;
out vec3 vNormal;
out vec3 vColor;
void main() {
	vNormal = mat3(uView) * aNormal;
	vColor = aColor;
	gl_Position = uProj * uView * vec4(aPos, 1.0);
}
` + "\x00"

const fragmentSrc = `#version 460
in vec3 vNormal;
in vec3 vColor;
out vec4 fragColor;
void main() {
	vec3 light = normalize(vec3(-0.4, 0.5, 1.0));
	float dif = max(dot(normalize(vNormal), light), 0.0);
	fragColor = vec4(vColor * (0.25 + 0.75*dif), 1.0);
}
` + "\x00"

// glGroup holds the GPU buffers of a single geometry group.
type glGroup struct {
	vao      uint32
	nindices int32
}

func ui(geo *molmesh.Geometry, cfg UIConfig) error {
	bb := geo.Bounds()
	center := bb.Center()
	diag := float64(bb.Diagonal())
	if diag == 0 {
		diag = 1
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer term()

	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSrc,
		Fragment: fragmentSrc,
	})
	if err != nil {
		return err
	}
	prog.Bind()
	posAttrib, err := prog.AttribLocation("aPos\x00")
	if err != nil {
		return err
	}
	normAttrib, err := prog.AttribLocation("aNormal\x00")
	if err != nil {
		return err
	}
	colorAttrib, err := prog.AttribLocation("aColor\x00")
	if err != nil {
		return err
	}
	viewUniform, err := prog.UniformLocation("uView\x00")
	if err != nil {
		return err
	}
	projUniform, err := prog.UniformLocation("uProj\x00")
	if err != nil {
		return err
	}

	// Upload each group to its own vertex array.
	geo.Truncate()
	var groups []glGroup
	for _, g := range geo.Groups() {
		if g.FaceIdx == 0 {
			continue
		}
		var vao uint32
		gl.GenVertexArrays(1, &vao)
		gl.BindVertexArray(vao)
		attribs := []struct {
			loc  uint32
			data []float32
		}{
			{posAttrib, g.VertexArray},
			{normAttrib, g.NormalArray},
			{colorAttrib, g.ColorArray},
		}
		for _, a := range attribs {
			var vbo uint32
			gl.GenBuffers(1, &vbo)
			gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
			gl.BufferData(gl.ARRAY_BUFFER, 4*len(a.data), gl.Ptr(a.data), gl.STATIC_DRAW)
			gl.EnableVertexAttribArray(a.loc)
			gl.VertexAttribPointer(a.loc, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
		}
		var ebo uint32
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*g.FaceIdx, gl.Ptr(g.FaceArray), gl.STATIC_DRAW)
		groups = append(groups, glGroup{vao: vao, nindices: int32(g.FaceIdx)})
	}
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)

	minZoom := diag * 0.05
	maxZoom := diag * 10
	var (
		yaw              float64
		pitch            float64
		lastMouseX       float64
		lastMouseY       float64
		camDist          float64 = 1.5 * diag // initial camera distance
		firstMouseMove           = true
		isMousePressed           = false
		yawSensitivity           = 0.005
		pitchSensitivity         = 0.005
		refresh                  = true
	)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if !isMousePressed {
			return
		}
		refresh = true
		if firstMouseMove {
			lastMouseX = xpos
			lastMouseY = ypos
			firstMouseMove = false
		}
		yaw += (xpos - lastMouseX) * yawSensitivity
		pitch -= (ypos - lastMouseY) * pitchSensitivity // Invert y-axis
		maxPitch := math.Pi/2 - 0.01
		pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
		lastMouseX = xpos
		lastMouseY = ypos
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		refresh = true
		camDist -= yoff * (camDist*.1 + .01)
		camDist = math.Max(minZoom, math.Min(maxZoom, camDist))
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		refresh = true
		if action == glfw.Press {
			isMousePressed = true
			firstMouseMove = true
			window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else if action == glfw.Release {
			isMousePressed = false
			window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	})

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		eye := ms3.Add(center, ms3.Vec{
			X: float32(camDist * math.Cos(pitch) * math.Sin(yaw)),
			Y: float32(camDist * math.Sin(pitch)),
			Z: float32(camDist * math.Cos(pitch) * math.Cos(yaw)),
		})
		aspect := float32(width) / float32(max(height, 1))
		view := lookAt(eye, center, ms3.Vec{Y: 1}).Array()
		proj := perspective(math.Pi/4, aspect, float32(camDist*0.01), float32(camDist+2*diag)).Array()
		prog.Bind()
		// Arrays are row major.
		gl.UniformMatrix4fv(viewUniform, 1, true, &view[0])
		gl.UniformMatrix4fv(projUniform, 1, true, &proj[0])
		for _, g := range groups {
			gl.BindVertexArray(g.vao)
			gl.DrawElements(gl.TRIANGLES, g.nindices, gl.UNSIGNED_INT, gl.PtrOffset(0))
		}
		window.SwapBuffers()

		// Limit frame rate
		for {
			time.Sleep(time.Second / 60)
			glfw.PollEvents()
			if refresh || window.ShouldClose() {
				refresh = false
				break
			}
			if ctx != nil && ctx.Err() != nil {
				break
			}
		}
	}
	return nil
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Samples, 4)

	window, err = glfw.CreateWindow(width, height, "molmesh viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))
	return window, glfw.Terminate, nil
}
