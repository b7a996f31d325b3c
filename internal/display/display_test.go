package display

import (
	"errors"
	"testing"

	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/egl/egltest"
)

type stubWindow struct {
	visual int32
}

func (w stubWindow) Display() uintptr { return 0 }
func (w stubWindow) Handle() uintptr  { return 42 }
func (w stubWindow) VisualID() int32  { return w.visual }
func (w stubWindow) Size() (int, int) { return 320, 200 }
func (w stubWindow) Close()           {}

func TestOpenNoDisplay(t *testing.T) {
	f := egltest.New()
	f.Display = egl.NoDisplay

	_, err := Open(f, stubWindow{})
	if !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("Open error = %v, want ErrNoDisplay", err)
	}
}

func TestOpenInitializeFails(t *testing.T) {
	f := egltest.New()
	f.FailInitialize = true

	_, err := Open(f, stubWindow{})
	if !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("Open error = %v, want ErrNoDisplay", err)
	}
	if len(f.Errors) != 0 {
		t.Fatalf("%d EGL errors left queued", len(f.Errors))
	}
}

func TestOpenMakesContextCurrent(t *testing.T) {
	f := egltest.New()

	s, err := Open(f, stubWindow{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Current != s.Context {
		t.Fatalf("current context = %v, want %v", f.Current, s.Context)
	}
	if s.Width != 640 || s.Height != 480 {
		t.Fatalf("surface size = %dx%d, want 640x480", s.Width, s.Height)
	}

	want := []int32{egl.ContextClientVersion, 2, egl.None}
	if len(f.ContextAttribs) != len(want) {
		t.Fatalf("context attribs = %v, want %v", f.ContextAttribs, want)
	}
	for i := range want {
		if f.ContextAttribs[i] != want[i] {
			t.Fatalf("context attribs = %v, want %v", f.ContextAttribs, want)
		}
	}

	s.Swap()
	s.Swap()
	if f.Swaps != 2 {
		t.Fatalf("swaps = %d, want 2", f.Swaps)
	}
}

func TestOpenFallsBackToWindowSize(t *testing.T) {
	f := egltest.New()
	f.Width, f.Height = 0, 0

	s, err := Open(f, stubWindow{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Width != 320 || s.Height != 200 {
		t.Fatalf("surface size = %dx%d, want 320x200", s.Width, s.Height)
	}
}

func TestOpenStageFailures(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(f *egltest.Fake)
	}{
		{"choose", func(f *egltest.Fake) { f.FailChoose = true }},
		{"surface", func(f *egltest.Fake) { f.FailSurface = true }},
		{"context", func(f *egltest.Fake) { f.FailContext = true }},
		{"make current", func(f *egltest.Fake) { f.FailMakeCurrent = true }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := egltest.New()
			tc.setup(f)
			_, err := Open(f, stubWindow{})
			if err == nil {
				t.Fatal("Open succeeded, want error")
			}
			if errors.Is(err, ErrNoDisplay) {
				t.Fatalf("Open error = %v, must not be ErrNoDisplay", err)
			}
		})
	}
}

func TestSelectConfigFirstMatch(t *testing.T) {
	f := &egltest.Fake{Display: 1}
	// Pbuffer only: rejected.
	f.AddConfig(10, map[int32]int32{
		egl.SurfaceType:    egl.PbufferBit,
		egl.RenderableType: egl.OpenGLES2Bit,
	})
	// ES1 only: rejected.
	f.AddConfig(11, map[int32]int32{
		egl.SurfaceType:    egl.WindowBit,
		egl.RenderableType: egl.OpenGLESBit,
	})
	f.AddConfig(12, map[int32]int32{
		egl.SurfaceType:    egl.WindowBit,
		egl.RenderableType: egl.OpenGLES2Bit | egl.OpenGLESBit,
	})
	f.AddConfig(13, map[int32]int32{
		egl.SurfaceType:    egl.WindowBit,
		egl.RenderableType: egl.OpenGLES2Bit,
	})

	cfg, err := SelectConfig(f, 1, WindowGLES2, 0)
	if err != nil {
		t.Fatalf("SelectConfig: %v", err)
	}
	if cfg != 12 {
		t.Fatalf("config = %d, want 12", cfg)
	}

	want := []int32{egl.SurfaceType, egl.WindowBit, egl.RenderableType, egl.OpenGLES2Bit, egl.None}
	for i := range want {
		if f.ChooseAttribs[i] != want[i] {
			t.Fatalf("choose attribs = %v, want %v", f.ChooseAttribs, want)
		}
	}
}

func TestSelectConfigVisualID(t *testing.T) {
	f := &egltest.Fake{Display: 1}
	f.AddConfig(1, map[int32]int32{
		egl.SurfaceType:    egl.WindowBit,
		egl.RenderableType: egl.OpenGLES2Bit,
		egl.NativeVisualID: 0x21,
	})
	f.AddConfig(2, map[int32]int32{
		egl.SurfaceType:    egl.WindowBit,
		egl.RenderableType: egl.OpenGLES2Bit,
		egl.NativeVisualID: 0x22,
	})

	cfg, err := SelectConfig(f, 1, WindowGLES2, 0x22)
	if err != nil {
		t.Fatalf("SelectConfig: %v", err)
	}
	if cfg != 2 {
		t.Fatalf("config = %d, want 2", cfg)
	}

	if _, err := SelectConfig(f, 1, WindowGLES2, 0x99); err == nil {
		t.Fatal("SelectConfig with unknown visual succeeded")
	}
}

func TestSelectConfigNoCandidates(t *testing.T) {
	f := &egltest.Fake{Display: 1}
	if _, err := SelectConfig(f, 1, WindowGLES2, 0); err == nil {
		t.Fatal("SelectConfig with no configs succeeded")
	}
}

func TestLogConfigDrainsErrors(t *testing.T) {
	f := egltest.New()

	// Config 7 is unknown, so every attribute query fails with EGL_BAD_CONFIG.
	LogConfig(f, 1, 7)
	if len(f.Errors) != 0 {
		t.Fatalf("%d EGL errors left queued after LogConfig", len(f.Errors))
	}

	LogConfig(f, 1, 1)
	if len(f.Errors) != 0 {
		t.Fatalf("%d EGL errors left queued after LogConfig", len(f.Errors))
	}
}
