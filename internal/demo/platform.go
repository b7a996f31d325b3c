package demo

import (
	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/extimage"
	"github.com/tinyrange/glcube/internal/fbdev"
	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/window"
)

// Framebuffer is an opened system framebuffer.
type Framebuffer interface {
	extimage.Screen
	VarScreenInfo() (fbdev.VarScreenInfo, error)
	Close() error
}

// ImageBuffer is an importable image owned by the demo.
type ImageBuffer interface {
	extimage.Image
	Close() error
}

// Platform opens the native resources a demo needs. Tests replace the
// loaders with fakes.
type Platform struct {
	OpenWindow      func(opts window.Options) (window.Native, error)
	LoadEGL         func(library string) (egl.Binding, error)
	LoadGL          func(library string, procAddr gl.ProcAddressFunc) (gl.OpenGL, error)
	OpenFramebuffer func(path string) (Framebuffer, error)
	NewImage        func(l extimage.Layout) (ImageBuffer, error)
}
