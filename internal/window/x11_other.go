//go:build !linux

package window

import "errors"

func newX11(Options) (Native, error) {
	return nil, errors.New("x11 windows are only supported on linux")
}
