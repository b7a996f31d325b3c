//go:build linux

package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

const defaultX11Library = "libX11.so.6"

var (
	x11Once sync.Once
	x11Err  error

	xOpenDisplay        func(name *byte) uintptr
	xCloseDisplay       func(dpy uintptr) int32
	xDefaultScreen      func(dpy uintptr) int32
	xRootWindow         func(dpy uintptr, screen int32) uintptr
	xDefaultVisual      func(dpy uintptr, screen int32) uintptr
	xVisualIDFromVisual func(visual uintptr) uint64
	xCreateSimpleWindow func(dpy, parent uintptr, x, y int32, w, h, border uint32, borderPixel, background uint64) uintptr
	xStoreName          func(dpy, win uintptr, name *byte) int32
	xMapWindow          func(dpy, win uintptr) int32
	xDestroyWindow      func(dpy, win uintptr) int32
	xFlush              func(dpy uintptr) int32
)

func loadX11(library string) error {
	x11Once.Do(func() {
		if library == "" {
			library = defaultX11Library
		}
		lib, err := purego.Dlopen(library, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			x11Err = fmt.Errorf("open %s: %w", library, err)
			return
		}

		purego.RegisterLibFunc(&xOpenDisplay, lib, "XOpenDisplay")
		purego.RegisterLibFunc(&xCloseDisplay, lib, "XCloseDisplay")
		purego.RegisterLibFunc(&xDefaultScreen, lib, "XDefaultScreen")
		purego.RegisterLibFunc(&xRootWindow, lib, "XRootWindow")
		purego.RegisterLibFunc(&xDefaultVisual, lib, "XDefaultVisual")
		purego.RegisterLibFunc(&xVisualIDFromVisual, lib, "XVisualIDFromVisual")
		purego.RegisterLibFunc(&xCreateSimpleWindow, lib, "XCreateSimpleWindow")
		purego.RegisterLibFunc(&xStoreName, lib, "XStoreName")
		purego.RegisterLibFunc(&xMapWindow, lib, "XMapWindow")
		purego.RegisterLibFunc(&xDestroyWindow, lib, "XDestroyWindow")
		purego.RegisterLibFunc(&xFlush, lib, "XFlush")
	})
	return x11Err
}

type x11Window struct {
	dpy    uintptr
	win    uintptr
	visual int32
	width  int
	height int
}

func newX11(opts Options) (Native, error) {
	if err := loadX11(opts.Library); err != nil {
		return nil, err
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		return nil, fmt.Errorf("XOpenDisplay failed (is DISPLAY set?): %w", ErrNoDisplay)
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)
	visual := xVisualIDFromVisual(xDefaultVisual(dpy, screen))

	win := xCreateSimpleWindow(dpy, root, 0, 0, uint32(opts.Width), uint32(opts.Height), 0, 0, 0)
	if win == 0 {
		xCloseDisplay(dpy)
		return nil, errors.New("XCreateSimpleWindow failed")
	}

	title := cStringX11(opts.Title)
	xStoreName(dpy, win, title)
	runtime.KeepAlive(title)
	xMapWindow(dpy, win)
	xFlush(dpy)

	return &x11Window{
		dpy:    dpy,
		win:    win,
		visual: int32(visual),
		width:  opts.Width,
		height: opts.Height,
	}, nil
}

func (w *x11Window) Display() uintptr { return w.dpy }
func (w *x11Window) Handle() uintptr  { return w.win }
func (w *x11Window) VisualID() int32  { return w.visual }

func (w *x11Window) Size() (int, int) {
	return w.width, w.height
}

func (w *x11Window) Close() {
	if w.win != 0 {
		xDestroyWindow(w.dpy, w.win)
		w.win = 0
	}
	if w.dpy != 0 {
		xCloseDisplay(w.dpy)
		w.dpy = 0
	}
}

func cStringX11(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
