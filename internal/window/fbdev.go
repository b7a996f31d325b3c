package window

import (
	"runtime"
	"unsafe"
)

// fbdevWindow mirrors struct fbdev_window from the Mali/Vivante fbdev EGL
// headers: the driver reads the requested surface size through the handle.
type fbdevWindow struct {
	Width  uint16
	Height uint16
}

type fbdev struct {
	win    *fbdevWindow
	pinner runtime.Pinner
}

func newFbdev(opts Options) (Native, error) {
	f := &fbdev{win: &fbdevWindow{Width: uint16(opts.Width), Height: uint16(opts.Height)}}
	// The driver keeps the pointer for the lifetime of the surface.
	f.pinner.Pin(f.win)
	return f, nil
}

func (f *fbdev) Display() uintptr { return 0 }
func (f *fbdev) Handle() uintptr  { return uintptr(unsafe.Pointer(f.win)) }
func (f *fbdev) VisualID() int32  { return 0 }

func (f *fbdev) Size() (int, int) {
	return int(f.win.Width), int(f.win.Height)
}

func (f *fbdev) Close() {
	f.pinner.Unpin()
}
