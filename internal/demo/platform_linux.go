//go:build linux

package demo

import (
	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/extimage"
	"github.com/tinyrange/glcube/internal/fbdev"
	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/window"
)

// DefaultPlatform loads the system EGL, GLES and X11 libraries and uses
// /dev/fbN and /dev/udmabuf for external images.
func DefaultPlatform() Platform {
	return Platform{
		OpenWindow: window.New,
		LoadEGL:    egl.Load,
		LoadGL:     gl.Load,
		OpenFramebuffer: func(path string) (Framebuffer, error) {
			d, err := fbdev.Open(path)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
		NewImage: func(l extimage.Layout) (ImageBuffer, error) {
			b, err := extimage.NewBuffer(l)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	}
}
