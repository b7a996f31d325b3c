// Package egltest provides an in-memory egl.Binding for tests.
package egltest

import (
	"github.com/tinyrange/glcube/internal/egl"
)

// Fake is a scripted egl.Binding. The zero value has no display; use New for
// a working single-config setup.
type Fake struct {
	Display egl.Display
	Major   int32
	Minor   int32

	// Configs are returned by ChooseConfig in order; Attribs holds each
	// config's attribute values keyed by config handle.
	Configs []egl.Config
	Attribs map[egl.Config]map[int32]int32

	FailInitialize  bool
	FailChoose      bool
	FailSurface     bool
	FailContext     bool
	FailMakeCurrent bool
	FailImage       bool

	Width  int32
	Height int32

	// Errors is drained by GetError.
	Errors []int32

	ChooseAttribs  []int32
	ContextAttribs []int32
	ImageAttribs   [][]int32
	ImageTargets   []uint32
	Swaps          int
	Images         int
	Destroyed      int
	Current        egl.Context
}

// New returns a fake exposing one window-capable OpenGL ES 2 config.
func New() *Fake {
	return &Fake{
		Display: 1,
		Major:   1,
		Minor:   4,
		Configs: []egl.Config{1},
		Attribs: map[egl.Config]map[int32]int32{
			1: {
				egl.SurfaceType:    egl.WindowBit | egl.PbufferBit,
				egl.RenderableType: egl.OpenGLES2Bit,
				egl.RedSize:        8,
				egl.GreenSize:      8,
				egl.BlueSize:       8,
				egl.NativeVisualID: 0,
			},
		},
		Width:  640,
		Height: 480,
	}
}

// AddConfig appends a config with the given attribute values.
func (f *Fake) AddConfig(cfg egl.Config, attribs map[int32]int32) {
	if f.Attribs == nil {
		f.Attribs = map[egl.Config]map[int32]int32{}
	}
	f.Configs = append(f.Configs, cfg)
	f.Attribs[cfg] = attribs
}

func (f *Fake) GetDisplay(native uintptr) egl.Display { return f.Display }

func (f *Fake) Initialize(dpy egl.Display) (int32, int32, bool) {
	if f.FailInitialize {
		f.Errors = append(f.Errors, egl.NotInitialized)
		return 0, 0, false
	}
	return f.Major, f.Minor, true
}

func (f *Fake) BindAPI(api uint32) bool { return api == egl.OpenGLESAPI }

func (f *Fake) ChooseConfig(dpy egl.Display, attribs []int32) ([]egl.Config, bool) {
	f.ChooseAttribs = append([]int32(nil), attribs...)
	if f.FailChoose {
		f.Errors = append(f.Errors, egl.BadAttribute)
		return nil, false
	}
	return append([]egl.Config(nil), f.Configs...), true
}

func (f *Fake) GetConfigAttrib(dpy egl.Display, cfg egl.Config, attr int32) (int32, bool) {
	attrs, ok := f.Attribs[cfg]
	if !ok {
		f.Errors = append(f.Errors, egl.BadConfig)
		return 0, false
	}
	return attrs[attr], true
}

func (f *Fake) CreateWindowSurface(dpy egl.Display, cfg egl.Config, win uintptr, attribs []int32) egl.Surface {
	if f.FailSurface {
		f.Errors = append(f.Errors, egl.BadNativeWindow)
		return egl.NoSurface
	}
	return 1
}

func (f *Fake) CreateContext(dpy egl.Display, cfg egl.Config, share egl.Context, attribs []int32) egl.Context {
	f.ContextAttribs = append([]int32(nil), attribs...)
	if f.FailContext {
		f.Errors = append(f.Errors, egl.BadConfig)
		return egl.NoContext
	}
	return 1
}

func (f *Fake) MakeCurrent(dpy egl.Display, draw, read egl.Surface, ctx egl.Context) bool {
	if f.FailMakeCurrent {
		f.Errors = append(f.Errors, egl.BadMatch)
		return false
	}
	f.Current = ctx
	return true
}

func (f *Fake) QuerySurface(dpy egl.Display, surf egl.Surface, attr int32) (int32, bool) {
	switch attr {
	case egl.Width:
		return f.Width, true
	case egl.Height:
		return f.Height, true
	}
	f.Errors = append(f.Errors, egl.BadAttribute)
	return 0, false
}

func (f *Fake) SwapBuffers(dpy egl.Display, surf egl.Surface) bool {
	f.Swaps++
	return true
}

func (f *Fake) QueryString(dpy egl.Display, name int32) string {
	switch name {
	case egl.Vendor:
		return "fake"
	case egl.Version:
		return "1.4 fake"
	case egl.Extensions:
		return "EGL_KHR_image_base EGL_EXT_image_dma_buf_import"
	}
	return ""
}

func (f *Fake) GetError() int32 {
	if len(f.Errors) == 0 {
		return egl.Success
	}
	code := f.Errors[0]
	f.Errors = f.Errors[1:]
	return code
}

func (f *Fake) GetProcAddress(name string) uintptr { return 0 }

func (f *Fake) CreateImageKHR(dpy egl.Display, ctx egl.Context, target uint32, buffer uintptr, attribs []int32) egl.Image {
	f.ImageTargets = append(f.ImageTargets, target)
	f.ImageAttribs = append(f.ImageAttribs, append([]int32(nil), attribs...))
	if f.FailImage {
		f.Errors = append(f.Errors, egl.BadParameter)
		return egl.NoImage
	}
	f.Images++
	return egl.Image(f.Images)
}

func (f *Fake) DestroyImageKHR(dpy egl.Display, img egl.Image) bool {
	f.Destroyed++
	return true
}

var _ egl.Binding = (*Fake)(nil)
