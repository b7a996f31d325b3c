// Package window provides the native windows EGL surfaces are created on.
package window

import (
	"errors"
	"fmt"
)

// ErrNoDisplay is returned when the native display server cannot be reached.
var ErrNoDisplay = errors.New("no native display available")

// Native is a platform window that an EGL window surface can be bound to.
type Native interface {
	// Display returns the native display handle passed to eglGetDisplay.
	Display() uintptr
	// Handle returns the native window handle passed to eglCreateWindowSurface.
	Handle() uintptr
	// VisualID returns the native visual the window was created with, or 0
	// when any config visual is acceptable.
	VisualID() int32
	Size() (width, height int)
	Close()
}

// Provider names a native window implementation.
type Provider string

const (
	// ProviderX11 opens an X11 window through libX11.
	ProviderX11 Provider = "x11"
	// ProviderFbdev uses the fbdev_window struct understood by embedded EGL
	// drivers that render straight to /dev/fb0.
	ProviderFbdev Provider = "fbdev"
)

// Options configures New.
type Options struct {
	Provider Provider
	Title    string
	Width    int
	Height   int
	// Library overrides the X11 client library soname.
	Library string
}

// New creates a native window for the requested provider.
func New(opts Options) (Native, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid window size: %dx%d", opts.Width, opts.Height)
	}
	switch opts.Provider {
	case ProviderX11, "":
		return newX11(opts)
	case ProviderFbdev:
		return newFbdev(opts)
	default:
		return nil, fmt.Errorf("unknown window provider %q", opts.Provider)
	}
}
