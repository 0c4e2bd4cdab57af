package molaux

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/molmesh"
	"github.com/soypat/molmesh/glrender"
)

// RenderConfig configures [Render]. At least one output must be set.
type RenderConfig struct {
	STLOutput io.Writer
	PNGOutput io.Writer
	// ImageSize is the side in pixels of the square PNG output. Zero uses 512.
	ImageSize int
	// ViewDir is the direction the PNG camera looks at the model from. Zero looks from +Z.
	ViewDir ms3.Vec
	Silent  bool
}

// UIConfig configures [UI].
type UIConfig struct {
	Width, Height int
	// Context, when set, closes the window once done.
	Context context.Context
}

// Render is an auxiliary function to aid users in getting setup in using molmesh quickly.
// It writes geo as a binary STL and/or a shaded PNG preview.
func Render(geo *molmesh.Geometry, cfg RenderConfig) (err error) {
	if cfg.STLOutput == nil && cfg.PNGOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	if geo.TriangleCount() == 0 {
		return errors.New("geometry has no faces")
	}
	log("rendering", geo.VertexCount(), "vertices in", len(geo.Groups()), "groups")

	if cfg.STLOutput != nil {
		watch := stopwatch()
		triangles, err := glrender.RenderAll(glrender.NewGeometryRenderer(geo), nil)
		if err != nil {
			return fmt.Errorf("reading triangles: %w", err)
		}
		_, err = glrender.WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL file: %w", err)
		}
		log("wrote", len(triangles), "triangles to", outputName(cfg.STLOutput, "STL"), "in", watch())
	}

	if cfg.PNGOutput != nil {
		watch := stopwatch()
		size := cfg.ImageSize
		if size == 0 {
			size = 512
		} else if size < 0 {
			return errors.New("negative image size")
		}
		const supersample = 3
		renderer, err := glrender.NewImageRenderer(supersample)
		if err != nil {
			return err
		}
		renderer.ViewDir = cfg.ViewDir
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		err = renderer.Render(img, geo)
		if err != nil {
			return fmt.Errorf("rasterizing geometry: %w", err)
		}
		err = png.Encode(cfg.PNGOutput, img)
		if err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		log("wrote", outputName(cfg.PNGOutput, "PNG"), "in", watch())
	}
	return nil
}

// UI opens a window displaying geo with orbit controls: drag with the left
// mouse button to rotate and scroll to zoom. It blocks until the window is closed.
// UI must be called from the main thread, see [runtime.LockOSThread].
func UI(geo *molmesh.Geometry, cfg UIConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("UI requires positive window dimensions")
	}
	if geo.TriangleCount() == 0 {
		return errors.New("geometry has no faces")
	}
	return ui(geo, cfg)
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
