package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tinyrange/glcube/internal/render"
	"github.com/tinyrange/glcube/internal/window"
)

func TestForVariantDefaults(t *testing.T) {
	tests := []struct {
		variant Variant
		inc     render.Increments
	}{
		{Triangle, render.Increments{X: 0, Y: 0, Z: 1}},
		{Cube, render.Increments{X: 3, Y: 2, Z: 1}},
		{CubeFBO, render.Increments{X: 3, Y: 2, Z: 1}},
		{CubeFBCapture, render.Increments{X: 0.15, Y: 0.1, Z: 0.05}},
		{CubeYV12, render.Increments{X: 0.15, Y: 0.1, Z: 0.05}},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			c, err := ForVariant(tt.variant)
			if err != nil {
				t.Fatalf("ForVariant: %v", err)
			}
			if *c.Animation != tt.inc {
				t.Errorf("increments = %+v, want %+v", *c.Animation, tt.inc)
			}
			if c.Offscreen.Width != 256 || c.Offscreen.Height != 256 {
				t.Errorf("offscreen = %+v, want 256x256", c.Offscreen)
			}
			if c.Capture.Width != 640 || c.Capture.Height != 240 {
				t.Errorf("capture = %+v, want 640x240", c.Capture)
			}
			if c.Window.Provider != window.ProviderX11 {
				t.Errorf("provider = %q", c.Window.Provider)
			}
		})
	}
}

func TestForVariantUnknown(t *testing.T) {
	if _, err := ForVariant("sphere"); err == nil {
		t.Fatal("ForVariant accepted an unknown variant")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlContent := `variant: cube-fbcapture
logLevel: debug
frames: 100
window:
  provider: fbdev
  width: 1024
  height: 600
animation:
  x: -1
  y: 0
  z: 2.5
capture:
  device: /dev/fb1
libraries:
  egl: libEGL_mesa.so.0
`
	path := filepath.Join(dir, "glcube.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write yaml: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Variant != CubeFBCapture {
		t.Errorf("variant = %q", c.Variant)
	}
	if c.LogLevel != "debug" || c.Frames != 100 {
		t.Errorf("logLevel = %q frames = %d", c.LogLevel, c.Frames)
	}
	if c.Window.Provider != window.ProviderFbdev || c.Window.Width != 1024 || c.Window.Height != 600 {
		t.Errorf("window = %+v", c.Window)
	}
	if *c.Animation != (render.Increments{X: -1, Y: 0, Z: 2.5}) {
		t.Errorf("animation = %+v", *c.Animation)
	}
	if c.Capture.Device != "/dev/fb1" || c.Capture.Width != DefaultCaptureWidth {
		t.Errorf("capture = %+v", c.Capture)
	}
	if c.Libraries.EGL != "libEGL_mesa.so.0" || c.Libraries.GLES != "" {
		t.Errorf("libraries = %+v", c.Libraries)
	}
	if c.Window.Title != "glcube: cube-fbcapture" {
		t.Errorf("title = %q", c.Window.Title)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown variant", "variant: teapot\n"},
		{"negative window", "window:\n  width: -1\n"},
		{"negative frames", "frames: -3\n"},
		{"not yaml", "variant: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.yaml)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	c, err := ForVariant(CubeYV12)
	if err != nil {
		t.Fatalf("ForVariant: %v", err)
	}
	c.Pattern = SizeConfig{Width: 100, Height: 50}
	if err := Write(path, c); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Variant != CubeYV12 || got.Pattern != c.Pattern || *got.Animation != *c.Animation {
		t.Fatalf("round trip = %+v, want %+v", got, c)
	}
}

func TestParseVariantOverride(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		variant Variant
		want    Variant
		inc     render.Increments
		title   string
	}{
		{
			name:    "defaults follow override",
			yaml:    "variant: cube\n",
			variant: CubeYV12,
			want:    CubeYV12,
			inc:     render.Increments{X: 0.15, Y: 0.1, Z: 0.05},
			title:   "glcube: cube-yv12",
		},
		{
			name:    "explicit values kept",
			yaml:    "variant: cube\nwindow:\n  title: spinning\nanimation:\n  x: 1\n  y: 1\n  z: 1\n",
			variant: Triangle,
			want:    Triangle,
			inc:     render.Increments{X: 1, Y: 1, Z: 1},
			title:   "spinning",
		},
		{
			name:  "no override",
			yaml:  "variant: cube-fbo\n",
			want:  CubeFBO,
			inc:   render.Increments{X: 3, Y: 2, Z: 1},
			title: "glcube: cube-fbo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseVariant([]byte(tt.yaml), tt.variant)
			if err != nil {
				t.Fatalf("ParseVariant: %v", err)
			}
			if c.Variant != tt.want {
				t.Errorf("variant = %q, want %q", c.Variant, tt.want)
			}
			if *c.Animation != tt.inc {
				t.Errorf("animation = %+v, want %+v", *c.Animation, tt.inc)
			}
			if c.Window.Title != tt.title {
				t.Errorf("title = %q, want %q", c.Window.Title, tt.title)
			}
		})
	}

	if _, err := ParseVariant([]byte("variant: cube\n"), "teapot"); err == nil {
		t.Fatal("ParseVariant accepted an unknown override")
	}
}

func TestLoadVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glcube.yaml")
	if err := os.WriteFile(path, []byte("variant: triangle\nframes: 5\n"), 0o644); err != nil {
		t.Fatalf("failed to write yaml: %v", err)
	}

	c, err := LoadVariant(path, CubeFBCapture)
	if err != nil {
		t.Fatalf("LoadVariant: %v", err)
	}
	if c.Variant != CubeFBCapture || c.Frames != 5 {
		t.Fatalf("config = %+v", c)
	}
	if *c.Animation != CubeFBCapture.Increments() {
		t.Fatalf("animation = %+v, want %+v", *c.Animation, CubeFBCapture.Increments())
	}
}
