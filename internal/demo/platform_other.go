//go:build !linux

package demo

import (
	"errors"
	"runtime"

	"github.com/tinyrange/glcube/internal/egl"
	"github.com/tinyrange/glcube/internal/window"
)

var errUnsupported = errors.New("EGL demos are not supported on " + runtime.GOOS)

func DefaultPlatform() Platform {
	return Platform{
		OpenWindow: window.New,
		LoadEGL: func(string) (egl.Binding, error) {
			return nil, errUnsupported
		},
	}
}
