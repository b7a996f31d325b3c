//go:build linux

package egl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// DefaultLibrary is the soname of the EGL implementation.
const DefaultLibrary = "libEGL.so.1"

type eglLib struct {
	eglGetDisplay          func(native uintptr) uintptr
	eglInitialize          func(dpy uintptr, major, minor *int32) uint32
	eglBindAPI             func(api uint32) uint32
	eglChooseConfig        func(dpy uintptr, attribs *int32, configs *uintptr, size int32, num *int32) uint32
	eglGetConfigAttrib     func(dpy, cfg uintptr, attr int32, value *int32) uint32
	eglCreateWindowSurface func(dpy, cfg, win uintptr, attribs *int32) uintptr
	eglCreateContext       func(dpy, cfg, share uintptr, attribs *int32) uintptr
	eglMakeCurrent         func(dpy, draw, read, ctx uintptr) uint32
	eglQuerySurface        func(dpy, surf uintptr, attr int32, value *int32) uint32
	eglSwapBuffers         func(dpy, surf uintptr) uint32
	eglQueryString         func(dpy uintptr, name int32) *byte
	eglGetError            func() int32
	eglGetProcAddress      func(name *byte) uintptr

	eglCreateImageKHR  func(dpy, ctx uintptr, target uint32, buffer uintptr, attribs *int32) uintptr
	eglDestroyImageKHR func(dpy, img uintptr) uint32
}

// Load opens the EGL library and resolves the core entry points. The
// EGL_KHR_image_base functions are resolved through eglGetProcAddress.
func Load(library string) (Binding, error) {
	if library == "" {
		library = DefaultLibrary
	}
	lib, err := purego.Dlopen(library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", library, err)
	}

	e := &eglLib{}
	purego.RegisterLibFunc(&e.eglGetDisplay, lib, "eglGetDisplay")
	purego.RegisterLibFunc(&e.eglInitialize, lib, "eglInitialize")
	purego.RegisterLibFunc(&e.eglBindAPI, lib, "eglBindAPI")
	purego.RegisterLibFunc(&e.eglChooseConfig, lib, "eglChooseConfig")
	purego.RegisterLibFunc(&e.eglGetConfigAttrib, lib, "eglGetConfigAttrib")
	purego.RegisterLibFunc(&e.eglCreateWindowSurface, lib, "eglCreateWindowSurface")
	purego.RegisterLibFunc(&e.eglCreateContext, lib, "eglCreateContext")
	purego.RegisterLibFunc(&e.eglMakeCurrent, lib, "eglMakeCurrent")
	purego.RegisterLibFunc(&e.eglQuerySurface, lib, "eglQuerySurface")
	purego.RegisterLibFunc(&e.eglSwapBuffers, lib, "eglSwapBuffers")
	purego.RegisterLibFunc(&e.eglQueryString, lib, "eglQueryString")
	purego.RegisterLibFunc(&e.eglGetError, lib, "eglGetError")
	purego.RegisterLibFunc(&e.eglGetProcAddress, lib, "eglGetProcAddress")

	if fn := e.GetProcAddress("eglCreateImageKHR"); fn != 0 {
		purego.RegisterFunc(&e.eglCreateImageKHR, fn)
	}
	if fn := e.GetProcAddress("eglDestroyImageKHR"); fn != 0 {
		purego.RegisterFunc(&e.eglDestroyImageKHR, fn)
	}

	return e, nil
}

func (e *eglLib) GetDisplay(native uintptr) Display {
	return Display(e.eglGetDisplay(native))
}

func (e *eglLib) Initialize(dpy Display) (int32, int32, bool) {
	var major, minor int32
	ok := e.eglInitialize(uintptr(dpy), &major, &minor) == True
	return major, minor, ok
}

func (e *eglLib) BindAPI(api uint32) bool {
	return e.eglBindAPI(api) == True
}

func (e *eglLib) ChooseConfig(dpy Display, attribs []int32) ([]Config, bool) {
	list := attribList(attribs)

	var num int32
	if e.eglChooseConfig(uintptr(dpy), &list[0], nil, 0, &num) != True {
		return nil, false
	}
	if num == 0 {
		return nil, true
	}

	raw := make([]uintptr, num)
	if e.eglChooseConfig(uintptr(dpy), &list[0], &raw[0], num, &num) != True {
		return nil, false
	}
	runtime.KeepAlive(list)

	configs := make([]Config, 0, num)
	for _, c := range raw[:num] {
		configs = append(configs, Config(c))
	}
	return configs, true
}

func (e *eglLib) GetConfigAttrib(dpy Display, cfg Config, attr int32) (int32, bool) {
	var value int32
	ok := e.eglGetConfigAttrib(uintptr(dpy), uintptr(cfg), attr, &value) == True
	return value, ok
}

func (e *eglLib) CreateWindowSurface(dpy Display, cfg Config, win uintptr, attribs []int32) Surface {
	list := attribList(attribs)
	s := e.eglCreateWindowSurface(uintptr(dpy), uintptr(cfg), win, &list[0])
	runtime.KeepAlive(list)
	return Surface(s)
}

func (e *eglLib) CreateContext(dpy Display, cfg Config, share Context, attribs []int32) Context {
	list := attribList(attribs)
	c := e.eglCreateContext(uintptr(dpy), uintptr(cfg), uintptr(share), &list[0])
	runtime.KeepAlive(list)
	return Context(c)
}

func (e *eglLib) MakeCurrent(dpy Display, draw, read Surface, ctx Context) bool {
	return e.eglMakeCurrent(uintptr(dpy), uintptr(draw), uintptr(read), uintptr(ctx)) == True
}

func (e *eglLib) QuerySurface(dpy Display, surf Surface, attr int32) (int32, bool) {
	var value int32
	ok := e.eglQuerySurface(uintptr(dpy), uintptr(surf), attr, &value) == True
	return value, ok
}

func (e *eglLib) SwapBuffers(dpy Display, surf Surface) bool {
	return e.eglSwapBuffers(uintptr(dpy), uintptr(surf)) == True
}

func (e *eglLib) QueryString(dpy Display, name int32) string {
	return gostring(e.eglQueryString(uintptr(dpy), name))
}

func (e *eglLib) GetError() int32 {
	return e.eglGetError()
}

func (e *eglLib) GetProcAddress(name string) uintptr {
	p := cstring(name)
	fn := e.eglGetProcAddress(p)
	runtime.KeepAlive(p)
	return fn
}

func (e *eglLib) CreateImageKHR(dpy Display, ctx Context, target uint32, buffer uintptr, attribs []int32) Image {
	if e.eglCreateImageKHR == nil {
		return NoImage
	}
	list := attribList(attribs)
	img := e.eglCreateImageKHR(uintptr(dpy), uintptr(ctx), target, buffer, &list[0])
	runtime.KeepAlive(list)
	return Image(img)
}

func (e *eglLib) DestroyImageKHR(dpy Display, img Image) bool {
	if e.eglDestroyImageKHR == nil {
		return false
	}
	return e.eglDestroyImageKHR(uintptr(dpy), uintptr(img)) == True
}

func cstring(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Add(unsafe.Pointer(p), 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
