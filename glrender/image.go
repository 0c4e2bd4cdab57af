package glrender

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/molmesh"
	"golang.org/x/image/draw"
)

const maxSupersample = 8

// ImageRenderer rasterizes a [molmesh.Geometry] to an image using an
// orthographic camera and a depth buffer. Faces are shaded with Lambert
// lighting from interpolated vertex normals and colors. The scene is
// rendered at a multiple of the destination size and downscaled to smooth edges.
type ImageRenderer struct {
	// ViewDir is the direction the camera looks at the scene from.
	// The zero value looks from +Z, with +Y pointing up in the image.
	ViewDir ms3.Vec
	// LightDir is the direction towards the light in camera space, where +Z points at the viewer.
	// The zero value is a light above and to the left of the camera.
	LightDir ms3.Vec
	// Background fills pixels not covered by geometry. nil is white.
	Background color.Color
	// Ambient is the light received by faces facing away from the light.
	Ambient float32

	ss   int
	hi   *image.RGBA
	zbuf []float32
	// Camera space vertices and normals of the group being drawn.
	verts []ms3.Vec
	norms []ms3.Vec
}

// NewImageRenderer returns an [ImageRenderer] which renders supersample×supersample
// samples per pixel.
func NewImageRenderer(supersample int) (*ImageRenderer, error) {
	if supersample < 1 {
		return nil, errors.New("supersample must be at least 1")
	} else if supersample > maxSupersample {
		return nil, errors.New("supersample too large")
	}
	return &ImageRenderer{ss: supersample, Ambient: 0.25}, nil
}

// Render draws geo onto dst, scaled to fit dst's bounds.
func (ir *ImageRenderer) Render(dst draw.Image, geo *molmesh.Geometry) error {
	bb := dst.Bounds()
	if bb.Empty() {
		return errors.New("empty destination image")
	}
	w, h := ir.ss*bb.Dx(), ir.ss*bb.Dy()
	ir.reset(w, h)

	view := newViewTransform(ir.ViewDir)
	light := ir.LightDir
	if light == (ms3.Vec{}) {
		light = ms3.Vec{X: -0.4, Y: 0.5, Z: 1}
	}
	light = ms3.Unit(light)

	// Fit the camera space bounds of the geometry into the image.
	var cbb ms3.Box
	first := true
	for _, g := range geo.Groups() {
		for i := 0; i < g.Vertices; i++ {
			v := view.apply(g.Vertex(i))
			if first {
				cbb = ms3.Box{Min: v, Max: v}
				first = false
				continue
			}
			cbb.Min = ms3.MinElem(cbb.Min, v)
			cbb.Max = ms3.MaxElem(cbb.Max, v)
		}
	}
	if !first {
		sz := cbb.Size()
		span := math32.Max(sz.X, sz.Y)
		if span == 0 {
			span = 1
		}
		scale := 0.9 * float32(min(w, h)) / span
		center := cbb.Center()
		toScreen := func(v ms3.Vec) ms3.Vec {
			return ms3.Vec{
				X: (v.X-center.X)*scale + float32(w)/2,
				Y: float32(h)/2 - (v.Y-center.Y)*scale,
				Z: v.Z,
			}
		}
		for _, g := range geo.Groups() {
			ir.verts = ir.verts[:0]
			ir.norms = ir.norms[:0]
			for i := 0; i < g.Vertices; i++ {
				ir.verts = append(ir.verts, toScreen(view.apply(g.Vertex(i))))
				ir.norms = append(ir.norms, view.apply(g.Normal(i)))
			}
			for i := 0; i < g.NumTriangles(); i++ {
				ir.fillTriangle(g, g.Triangle(i), light)
			}
		}
	}
	draw.CatmullRom.Scale(dst, bb, ir.hi, ir.hi.Bounds(), draw.Src, nil)
	return nil
}

func (ir *ImageRenderer) reset(w, h int) {
	if ir.hi == nil || ir.hi.Rect.Dx() != w || ir.hi.Rect.Dy() != h {
		ir.hi = image.NewRGBA(image.Rect(0, 0, w, h))
		ir.zbuf = make([]float32, w*h)
	}
	bg := ir.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(ir.hi, ir.hi.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	negInf := math32.Inf(-1)
	for i := range ir.zbuf {
		ir.zbuf[i] = negInf
	}
}

func (ir *ImageRenderer) fillTriangle(g *molmesh.GeoGroup, idx [3]uint32, light ms3.Vec) {
	a, b, c := ir.verts[idx[0]], ir.verts[idx[1]], ir.verts[idx[2]]
	area := edge(a, b, c)
	if math32.Abs(area) < 1e-9 {
		return // Seen edge on.
	}
	w, h := ir.hi.Rect.Dx(), ir.hi.Rect.Dy()
	x0 := max(0, int(math32.Floor(min(a.X, b.X, c.X))))
	x1 := min(w-1, int(math32.Ceil(max(a.X, b.X, c.X))))
	y0 := max(0, int(math32.Floor(min(a.Y, b.Y, c.Y))))
	y1 := min(h-1, int(math32.Ceil(max(a.Y, b.Y, c.Y))))
	inv := 1 / area
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := ms3.Vec{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			w0 := edge(b, c, p) * inv
			w1 := edge(c, a, p) * inv
			w2 := edge(a, b, p) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.Z + w1*b.Z + w2*c.Z
			zi := y*w + x
			if z <= ir.zbuf[zi] {
				continue
			}
			ir.zbuf[zi] = z
			n := ms3.Add(ms3.Add(ms3.Scale(w0, ir.norms[idx[0]]), ms3.Scale(w1, ir.norms[idx[1]])), ms3.Scale(w2, ir.norms[idx[2]]))
			var lambert float32
			if nn := ms3.Norm(n); nn > 0 {
				lambert = math32.Max(0, ms3.Dot(n, light)/nn)
			}
			shade := ir.Ambient + (1-ir.Ambient)*lambert
			ca, cb, cc := g.Color(int(idx[0])), g.Color(int(idx[1])), g.Color(int(idx[2]))
			col := molmesh.Color{
				R: shade * (w0*ca.R + w1*cb.R + w2*cc.R),
				G: shade * (w0*ca.G + w1*cb.G + w2*cc.G),
				B: shade * (w0*ca.B + w1*cb.B + w2*cc.B),
			}
			ir.hi.Set(x, y, col)
		}
	}
}

// edge returns twice the signed area of triangle abp projected on the XY plane.
func edge(a, b, p ms3.Vec) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// viewTransform maps world space to camera space, where the camera
// looks down -Z.
type viewTransform struct {
	cols [3]ms3.Vec
}

func newViewTransform(dir ms3.Vec) viewTransform {
	if dir == (ms3.Vec{}) {
		dir = ms3.Vec{Z: 1}
	}
	// RotationFor takes +Y onto dir; its transpose brings dir back onto +Y
	// which a quarter turn about X then takes onto +Z.
	rot := molmesh.RotationFor(dir)
	return viewTransform{cols: [3]ms3.Vec{
		rot.Apply(ms3.Vec{X: 1}),
		rot.Apply(ms3.Vec{Y: 1}),
		rot.Apply(ms3.Vec{Z: 1}),
	}}
}

func (vt viewTransform) apply(v ms3.Vec) ms3.Vec {
	x := ms3.Dot(vt.cols[0], v)
	y := ms3.Dot(vt.cols[1], v)
	z := ms3.Dot(vt.cols[2], v)
	return ms3.Vec{X: x, Y: -z, Z: y}
}
