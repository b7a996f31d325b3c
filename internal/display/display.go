// Package display negotiates the EGL display, config, window surface and
// OpenGL ES 2 context a demo renders into.
package display

import (
	"errors"
	"fmt"

	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/logging"
	"github.com/tinyrange/glcube/internal/window"
)

// ErrNoDisplay is returned when EGL cannot provide or initialize a display
// connection.
var ErrNoDisplay = errors.New("no EGL display available")

// Requirement is a config attribute whose value must contain every bit in Bits.
type Requirement struct {
	Attr int32
	Bits int32
}

// WindowGLES2 is the capability set every demo needs: a window-drawable,
// OpenGL ES 2 renderable config.
var WindowGLES2 = []Requirement{
	{Attr: egl.SurfaceType, Bits: egl.WindowBit},
	{Attr: egl.RenderableType, Bits: egl.OpenGLES2Bit},
}

// Surface is a window surface with its current context.
type Surface struct {
	egl egl.Binding

	Display egl.Display
	Config  egl.Config
	Surface egl.Surface
	Context egl.Context

	Width  int
	Height int
}

// Open obtains and initializes the display for win, selects a config, creates
// the window surface and an OpenGL ES 2 context and makes them current.
//
// A display that is missing or fails to initialize is reported as
// ErrNoDisplay. Every other failure is a wrapped error from the failing stage.
func Open(b egl.Binding, win window.Native) (*Surface, error) {
	log := logging.Logger()

	dpy := b.GetDisplay(win.Display())
	checkError(b, "eglGetDisplay", true)
	if dpy == egl.NoDisplay {
		return nil, fmt.Errorf("eglGetDisplay returned EGL_NO_DISPLAY: %w", ErrNoDisplay)
	}

	major, minor, ok := b.Initialize(dpy)
	checkError(b, "eglInitialize", ok)
	if !ok {
		return nil, fmt.Errorf("eglInitialize failed: %w", ErrNoDisplay)
	}
	log.Info("egl initialized", "version", fmt.Sprintf("%d.%d", major, minor))

	cfg, err := SelectConfig(b, dpy, WindowGLES2, win.VisualID())
	if err != nil {
		return nil, err
	}
	LogConfig(b, dpy, cfg)

	surface := b.CreateWindowSurface(dpy, cfg, win.Handle(), nil)
	checkError(b, "eglCreateWindowSurface", true)
	if surface == egl.NoSurface {
		return nil, errors.New("eglCreateWindowSurface failed")
	}

	ok = b.BindAPI(egl.OpenGLESAPI)
	checkError(b, "eglBindAPI", ok)

	ctx := b.CreateContext(dpy, cfg, egl.NoContext, []int32{egl.ContextClientVersion, 2, egl.None})
	checkError(b, "eglCreateContext", true)
	if ctx == egl.NoContext {
		return nil, errors.New("eglCreateContext failed")
	}

	ok = b.MakeCurrent(dpy, surface, surface, ctx)
	checkError(b, "eglMakeCurrent", ok)
	if !ok {
		return nil, errors.New("eglMakeCurrent failed")
	}

	s := &Surface{
		egl:     b,
		Display: dpy,
		Config:  cfg,
		Surface: surface,
		Context: ctx,
	}

	w, _ := b.QuerySurface(dpy, surface, egl.Width)
	checkError(b, "eglQuerySurface", true)
	h, _ := b.QuerySurface(dpy, surface, egl.Height)
	checkError(b, "eglQuerySurface", true)
	s.Width, s.Height = int(w), int(h)
	if s.Width <= 0 || s.Height <= 0 {
		// Some fbdev drivers only report the size after the first swap.
		s.Width, s.Height = win.Size()
	}
	log.Info("window surface", "width", s.Width, "height", s.Height)

	return s, nil
}

// SelectConfig returns the first config reported by eglChooseConfig whose
// attributes satisfy every requirement and, when visualID is non-zero,
// whose native visual matches. There is no ranking beyond report order.
func SelectConfig(b egl.Binding, dpy egl.Display, reqs []Requirement, visualID int32) (egl.Config, error) {
	attribs := make([]int32, 0, 2*len(reqs)+1)
	for _, r := range reqs {
		attribs = append(attribs, r.Attr, r.Bits)
	}
	attribs = append(attribs, egl.None)

	configs, ok := b.ChooseConfig(dpy, attribs)
	checkError(b, "eglChooseConfig", ok)
	if !ok {
		return 0, errors.New("eglChooseConfig failed")
	}

	for _, cfg := range configs {
		if matches(b, dpy, cfg, reqs, visualID) {
			return cfg, nil
		}
	}
	return 0, fmt.Errorf("no EGL config matches (%d candidates)", len(configs))
}

func matches(b egl.Binding, dpy egl.Display, cfg egl.Config, reqs []Requirement, visualID int32) bool {
	for _, r := range reqs {
		v, ok := b.GetConfigAttrib(dpy, cfg, r.Attr)
		if !ok || v&r.Bits != r.Bits {
			return false
		}
	}
	if visualID != 0 {
		v, ok := b.GetConfigAttrib(dpy, cfg, egl.NativeVisualID)
		if !ok || v != visualID {
			return false
		}
	}
	return true
}

// LogConfig dumps every queryable attribute of cfg.
func LogConfig(b egl.Binding, dpy egl.Display, cfg egl.Config) {
	log := logging.Logger()
	log.Info("chose egl config")
	for _, a := range egl.ConfigAttribs {
		v, ok := b.GetConfigAttrib(dpy, cfg, a.Attr)
		code := b.GetError()
		if !ok || code != egl.Success {
			continue
		}
		log.Info("egl config", "attr", a.Name, "value", v, "hex", fmt.Sprintf("0x%x", v))
	}
}

// LogGLInfo logs the strings identifying the current GL implementation.
func LogGLInfo(g gl.OpenGL) {
	log := logging.Logger()
	log.Info("gl", "name", "Version", "value", g.GetString(gl.Version))
	log.Info("gl", "name", "Vendor", "value", g.GetString(gl.Vendor))
	log.Info("gl", "name", "Renderer", "value", g.GetString(gl.Renderer))
	log.Info("gl", "name", "Extensions", "value", g.GetString(gl.Extensions))
}

// Swap presents the back buffer. Errors are logged only.
func (s *Surface) Swap() {
	ok := s.egl.SwapBuffers(s.Display, s.Surface)
	checkError(s.egl, "eglSwapBuffers", ok)
}

// EGL returns the binding the surface was created with.
func (s *Surface) EGL() egl.Binding {
	return s.egl
}

// checkError logs a false return value and drains the EGL error state.
func checkError(b egl.Binding, op string, ok bool) {
	log := logging.Logger()
	if !ok {
		log.Error("egl call failed", "op", op)
	}
	// eglGetError only holds one value, but a broken driver can keep reporting.
	for i := 0; i < 4; i++ {
		code := b.GetError()
		if code == egl.Success {
			return
		}
		log.Error("egl error", "op", op, "error", egl.ErrorString(code), "code", fmt.Sprintf("0x%x", code))
	}
}
