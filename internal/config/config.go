// Package config holds the settings of a demo variant and reads them from
// YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinyrange/glcube/internal/render"
	"github.com/tinyrange/glcube/internal/window"
)

// Variant names one of the demo programs.
type Variant string

const (
	Triangle      Variant = "triangle"
	Cube          Variant = "cube"
	CubeFBO       Variant = "cube-fbo"
	CubeFBCapture Variant = "cube-fbcapture"
	CubeYV12      Variant = "cube-yv12"
)

// Variants lists every known variant.
var Variants = []Variant{Triangle, Cube, CubeFBO, CubeFBCapture, CubeYV12}

func (v Variant) Valid() bool {
	for _, known := range Variants {
		if v == known {
			return true
		}
	}
	return false
}

// Increments returns the per-frame rotation steps of the variant.
func (v Variant) Increments() render.Increments {
	switch v {
	case Triangle:
		return render.Increments{Z: 1}
	case Cube, CubeFBO:
		return render.Increments{X: 3, Y: 2, Z: 1}
	default:
		return render.Increments{X: 0.15, Y: 0.1, Z: 0.05}
	}
}

const (
	DefaultWidth  = 800
	DefaultHeight = 480

	DefaultCaptureWidth  = 640
	DefaultCaptureHeight = 240

	DefaultPatternWidth  = 64
	DefaultPatternHeight = 64
)

// Config is the full description of one demo run.
type Config struct {
	Variant  Variant `yaml:"variant"`
	LogLevel string  `yaml:"logLevel,omitempty"`
	// Frames stops the loop after this many frames; 0 runs until interrupted.
	Frames int `yaml:"frames,omitempty"`

	Window    WindowConfig       `yaml:"window"`
	Animation *render.Increments `yaml:"animation,omitempty"`
	Offscreen SizeConfig         `yaml:"offscreen"`
	Capture   CaptureConfig      `yaml:"capture"`
	Pattern   SizeConfig         `yaml:"pattern"`
	Libraries Libraries          `yaml:"libraries,omitempty"`
}

type WindowConfig struct {
	Provider window.Provider `yaml:"provider"`
	Title    string          `yaml:"title,omitempty"`
	Width    int             `yaml:"width"`
	Height   int             `yaml:"height"`
}

type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type CaptureConfig struct {
	Device string `yaml:"device"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Libraries override the sonames loaded at runtime.
type Libraries struct {
	EGL  string `yaml:"egl,omitempty"`
	GLES string `yaml:"gles,omitempty"`
	X11  string `yaml:"x11,omitempty"`
}

func (c *Config) normalize() {
	if c.Variant == "" {
		c.Variant = Cube
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Window.Provider == "" {
		c.Window.Provider = window.ProviderX11
	}
	if c.Window.Title == "" {
		c.Window.Title = "glcube: " + string(c.Variant)
	}
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultHeight
	}
	if c.Animation == nil {
		inc := c.Variant.Increments()
		c.Animation = &inc
	}
	if c.Offscreen.Width == 0 {
		c.Offscreen.Width = render.DefaultTargetSize
	}
	if c.Offscreen.Height == 0 {
		c.Offscreen.Height = render.DefaultTargetSize
	}
	if c.Capture.Device == "" {
		c.Capture.Device = "/dev/fb0"
	}
	if c.Capture.Width == 0 {
		c.Capture.Width = DefaultCaptureWidth
	}
	if c.Capture.Height == 0 {
		c.Capture.Height = DefaultCaptureHeight
	}
	if c.Pattern.Width == 0 {
		c.Pattern.Width = DefaultPatternWidth
	}
	if c.Pattern.Height == 0 {
		c.Pattern.Height = DefaultPatternHeight
	}
}

// Validate reports settings no variant can run with.
func (c *Config) Validate() error {
	if !c.Variant.Valid() {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	for name, s := range map[string][2]int{
		"window":    {c.Window.Width, c.Window.Height},
		"offscreen": {c.Offscreen.Width, c.Offscreen.Height},
		"capture":   {c.Capture.Width, c.Capture.Height},
		"pattern":   {c.Pattern.Width, c.Pattern.Height},
	} {
		if s[0] <= 0 || s[1] <= 0 {
			return fmt.Errorf("invalid %s size: %dx%d", name, s[0], s[1])
		}
	}
	if c.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	return nil
}

// ForVariant returns the built-in settings of a variant.
func ForVariant(v Variant) (Config, error) {
	c := Config{Variant: v}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse decodes YAML settings and fills in defaults.
func Parse(data []byte) (Config, error) {
	return ParseVariant(data, "")
}

// ParseVariant decodes YAML settings with the variant replaced by v. Defaults
// that depend on the variant follow v rather than the file's variant; values
// the file sets explicitly are kept. An empty v keeps the file's variant.
func ParseVariant(data []byte, v Variant) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if v != "" {
		c.Variant = v
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads settings from a YAML file.
func Load(path string) (Config, error) {
	return LoadVariant(path, "")
}

// LoadVariant reads settings from a YAML file as ParseVariant does.
func LoadVariant(path string, v Variant) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseVariant(data, v)
}

// Write stores c as YAML at path.
func Write(path string, c Config) error {
	c.normalize()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
