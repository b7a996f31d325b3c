// Package demo wires a window, an EGL context and the render passes of one
// variant into a frame loop.
package demo

import (
	"context"
	"fmt"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/display"
	"github.com/tinyrange/glcube/internal/extimage"
	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/logging"
	"github.com/tinyrange/glcube/internal/render"
	"github.com/tinyrange/glcube/internal/window"
)

type textureSource int

const (
	noTexture textureSource = iota
	targetTexture
	captureTexture
	patternTexture
)

// pipeline is the fixed rendering setup of a variant.
type pipeline struct {
	mesh      *render.Mesh
	shaders   render.ShaderSet
	offscreen bool
	texture   textureSource
}

var pipelines = map[config.Variant]pipeline{
	config.Triangle: {
		mesh:    render.Triangle,
		shaders: render.FlatShaders,
	},
	config.Cube: {
		mesh:    render.Cube,
		shaders: render.FlatShaders,
	},
	config.CubeFBO: {
		mesh:      render.Cube,
		shaders:   render.TexturedShaders,
		offscreen: true,
		texture:   targetTexture,
	},
	config.CubeFBCapture: {
		mesh:      render.Cube,
		shaders:   render.ExternalShaders,
		offscreen: true,
		texture:   captureTexture,
	},
	config.CubeYV12: {
		mesh:      render.Cube,
		shaders:   render.ExternalShaders,
		offscreen: true,
		texture:   patternTexture,
	},
}

// App is a running demo.
type App struct {
	cfg config.Config
	inc render.Increments

	win     window.Native
	surface *display.Surface
	gl      gl.OpenGL
	program *render.Program
	buffers *render.Buffers
	target  *render.Target
	state   *render.RenderState

	source      extimage.Source
	image       ImageBuffer
	framebuffer Framebuffer

	frames int
}

// Setup creates everything a variant draws with, in dependency order: the
// window, the display surface and context, the program, the geometry and
// finally the offscreen target or external image source.
//
// Partially created resources are released when a stage fails.
func Setup(cfg config.Config, p Platform) (_ *App, err error) {
	pl, ok := pipelines[cfg.Variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", cfg.Variant)
	}

	a := &App{cfg: cfg}
	if cfg.Animation != nil {
		a.inc = *cfg.Animation
	} else {
		a.inc = cfg.Variant.Increments()
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	win, err := p.OpenWindow(window.Options{
		Provider: cfg.Window.Provider,
		Title:    cfg.Window.Title,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		Library:  cfg.Libraries.X11,
	})
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}
	a.win = win

	binding, err := p.LoadEGL(cfg.Libraries.EGL)
	if err != nil {
		return nil, fmt.Errorf("load egl: %w", err)
	}
	surface, err := display.Open(binding, win)
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}
	a.surface = surface

	g, err := p.LoadGL(cfg.Libraries.GLES, binding.GetProcAddress)
	if err != nil {
		return nil, fmt.Errorf("load gles: %w", err)
	}
	a.gl = g
	display.LogGLInfo(g)

	a.program, err = render.NewProgram(g, pl.shaders)
	if err != nil {
		return nil, err
	}
	a.buffers = render.Upload(g, pl.mesh)
	a.state = render.NewRenderState(g, a.program, pl.mesh, a.buffers, surface.Width, surface.Height)

	if pl.offscreen {
		a.target, err = render.NewTarget(g, cfg.Offscreen.Width, cfg.Offscreen.Height)
		if err != nil {
			return nil, err
		}
		a.state.SetTarget(a.target)
	}

	importer := &extimage.EGLImporter{EGL: binding, GL: g, Display: surface.Display}
	switch pl.texture {
	case targetTexture:
		a.state.Texture = &render.Texture{Target: gl.Texture2D, ID: a.target.Texture()}
	case captureTexture:
		err = a.setupCapture(p, importer)
	case patternTexture:
		err = a.setupPattern(p, importer)
	}
	if err != nil {
		return nil, err
	}
	if a.source != nil {
		a.state.Texture = &render.Texture{Target: gl.TextureExternalOES, ID: a.source.Texture()}
	}

	logging.Logger().Info("demo ready", "variant", cfg.Variant, "width", surface.Width, "height", surface.Height)
	return a, nil
}

// setupCapture opens the framebuffer and allocates the capture image. A
// framebuffer that cannot be opened is logged and the image stays unfilled.
func (a *App) setupCapture(p Platform, importer extimage.Importer) error {
	log := logging.Logger()
	c := a.cfg.Capture

	format := extimage.RGB565
	var screen extimage.Screen
	fb, err := p.OpenFramebuffer(c.Device)
	if err != nil {
		log.Warn("framebuffer unavailable", "device", c.Device, "error", err)
	} else {
		a.framebuffer = fb
		screen = fb
		format = captureFormat(fb)
	}

	l, err := extimage.NewLayout(format, c.Width, c.Height)
	if err != nil {
		return err
	}
	img, err := p.NewImage(l)
	if err != nil {
		return fmt.Errorf("allocate capture buffer: %w", err)
	}
	a.image = img
	a.source = extimage.NewCaptureSource(img, screen, importer)
	return nil
}

// captureFormat matches the capture image to the framebuffer depth so rows
// copy byte for byte. Unknown depths fall back to RGB565.
func captureFormat(fb Framebuffer) extimage.Format {
	log := logging.Logger()
	info, err := fb.VarScreenInfo()
	if err != nil {
		log.Warn("querying framebuffer depth", "error", err)
		return extimage.RGB565
	}
	f, err := extimage.ForDepth(int(info.BitsPerPixel))
	if err != nil {
		log.Warn("capturing as RGB565", "error", err)
		return extimage.RGB565
	}
	return f
}

func (a *App) setupPattern(p Platform, importer extimage.Importer) error {
	size := a.cfg.Pattern
	img, err := p.NewImage(extimage.YV12Layout(size.Width, size.Height))
	if err != nil {
		return fmt.Errorf("allocate pattern buffer: %w", err)
	}
	a.image = img
	a.source = extimage.NewPatternSource(img, importer)
	return nil
}

// Step renders and presents one frame.
func (a *App) Step() {
	s := a.state
	s.Angles.Advance(a.inc)
	if a.source != nil {
		a.source.Refresh()
		s.Texture.ID = a.source.Texture()
	}
	s.OffscreenPass()
	s.MainPass()
	a.surface.Swap()
	a.frames++
}

// Frames is the number of frames presented so far.
func (a *App) Frames() int { return a.frames }

// Angles returns the current rotation.
func (a *App) Angles() render.AnimationState { return a.state.Angles }

// Run steps until ctx is cancelled or the configured frame count is reached.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			logging.Logger().Info("stopping", "frames", a.frames)
			return nil
		default:
		}
		a.Step()
		if a.cfg.Frames > 0 && a.frames >= a.cfg.Frames {
			return nil
		}
	}
}

// Close releases GPU objects, buffers and the window.
func (a *App) Close() {
	if a.gl != nil {
		if a.target != nil {
			a.target.Destroy()
		}
		if a.buffers != nil {
			a.buffers.Delete(a.gl)
		}
		if a.program != nil {
			a.program.Delete(a.gl)
		}
		a.gl = nil
	}
	if a.image != nil {
		a.image.Close()
		a.image = nil
	}
	if a.framebuffer != nil {
		a.framebuffer.Close()
		a.framebuffer = nil
	}
	if a.win != nil {
		a.win.Close()
		a.win = nil
	}
}
