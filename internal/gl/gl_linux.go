//go:build linux

package gl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// DefaultLibrary is the soname of the OpenGL ES 2.0 driver.
const DefaultLibrary = "libGLESv2.so.2"

type glesLib struct {
	glClearColor               func(r, g, b, a float32)
	glClear                    func(mask uint32)
	glViewport                 func(x, y, width, height int32)
	glEnable                   func(cap uint32)
	glDisable                  func(cap uint32)
	glCullFace                 func(mode uint32)
	glBlendFunc                func(sfactor, dfactor uint32)
	glGetError                 func() uint32
	glGetString                func(name uint32) *byte
	glGenTextures              func(n int32, textures *uint32)
	glDeleteTextures           func(n int32, textures *uint32)
	glBindTexture              func(target, texture uint32)
	glTexImage2D               func(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexParameteri            func(target, pname uint32, param int32)
	glActiveTexture            func(texture uint32)
	glGenFramebuffers          func(n int32, framebuffers *uint32)
	glDeleteFramebuffers       func(n int32, framebuffers *uint32)
	glBindFramebuffer          func(target, framebuffer uint32)
	glFramebufferTexture2D     func(target, attachment, textarget, texture uint32, level int32)
	glCheckFramebufferStatus   func(target uint32) uint32
	glGenBuffers               func(n int32, buffers *uint32)
	glDeleteBuffers            func(n int32, buffers *uint32)
	glBindBuffer               func(target, buffer uint32)
	glBufferData               func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	glVertexAttribPointer      func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	glEnableVertexAttribArray  func(index uint32)
	glDisableVertexAttribArray func(index uint32)
	glCreateShader             func(xtype uint32) uint32
	glShaderSource             func(shader uint32, count int32, src **byte, length *int32)
	glCompileShader            func(shader uint32)
	glGetShaderiv              func(shader, pname uint32, params *int32)
	glGetShaderInfoLog         func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	glDeleteShader             func(shader uint32)
	glCreateProgram            func() uint32
	glAttachShader             func(program, shader uint32)
	glLinkProgram              func(program uint32)
	glGetProgramiv             func(program, pname uint32, params *int32)
	glGetProgramInfoLog        func(program uint32, bufSize int32, length *int32, infoLog *byte)
	glUseProgram               func(program uint32)
	glDeleteProgram            func(program uint32)
	glGetUniformLocation       func(program uint32, name *byte) int32
	glGetAttribLocation        func(program uint32, name *byte) int32
	glUniform1i                func(location, v0 int32)
	glUniform1f                func(location int32, v0 float32)
	glUniformMatrix4fv         func(location, count int32, transpose bool, value *float32)
	glDrawArrays               func(mode uint32, first, count int32)
	glDrawElements             func(mode uint32, count int32, xtype uint32, offset uintptr)

	// Resolved lazily through the proc address callback.
	glEGLImageTargetTexture2DOES func(target uint32, image uintptr)

	procAddr ProcAddressFunc
}

// Load opens the GLES library and resolves every entry point in OpenGL.
//
// procAddr resolves extension functions; it may be nil when no extension
// is needed, in which case EGLImageTargetTexture2DOES reports false.
func Load(library string, procAddr ProcAddressFunc) (OpenGL, error) {
	if library == "" {
		library = DefaultLibrary
	}
	lib, err := purego.Dlopen(library, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", library, err)
	}

	g := &glesLib{procAddr: procAddr}
	purego.RegisterLibFunc(&g.glClearColor, lib, "glClearColor")
	purego.RegisterLibFunc(&g.glClear, lib, "glClear")
	purego.RegisterLibFunc(&g.glViewport, lib, "glViewport")
	purego.RegisterLibFunc(&g.glEnable, lib, "glEnable")
	purego.RegisterLibFunc(&g.glDisable, lib, "glDisable")
	purego.RegisterLibFunc(&g.glCullFace, lib, "glCullFace")
	purego.RegisterLibFunc(&g.glBlendFunc, lib, "glBlendFunc")
	purego.RegisterLibFunc(&g.glGetError, lib, "glGetError")
	purego.RegisterLibFunc(&g.glGetString, lib, "glGetString")
	purego.RegisterLibFunc(&g.glGenTextures, lib, "glGenTextures")
	purego.RegisterLibFunc(&g.glDeleteTextures, lib, "glDeleteTextures")
	purego.RegisterLibFunc(&g.glBindTexture, lib, "glBindTexture")
	purego.RegisterLibFunc(&g.glTexImage2D, lib, "glTexImage2D")
	purego.RegisterLibFunc(&g.glTexParameteri, lib, "glTexParameteri")
	purego.RegisterLibFunc(&g.glActiveTexture, lib, "glActiveTexture")
	purego.RegisterLibFunc(&g.glGenFramebuffers, lib, "glGenFramebuffers")
	purego.RegisterLibFunc(&g.glDeleteFramebuffers, lib, "glDeleteFramebuffers")
	purego.RegisterLibFunc(&g.glBindFramebuffer, lib, "glBindFramebuffer")
	purego.RegisterLibFunc(&g.glFramebufferTexture2D, lib, "glFramebufferTexture2D")
	purego.RegisterLibFunc(&g.glCheckFramebufferStatus, lib, "glCheckFramebufferStatus")
	purego.RegisterLibFunc(&g.glGenBuffers, lib, "glGenBuffers")
	purego.RegisterLibFunc(&g.glDeleteBuffers, lib, "glDeleteBuffers")
	purego.RegisterLibFunc(&g.glBindBuffer, lib, "glBindBuffer")
	purego.RegisterLibFunc(&g.glBufferData, lib, "glBufferData")
	purego.RegisterLibFunc(&g.glVertexAttribPointer, lib, "glVertexAttribPointer")
	purego.RegisterLibFunc(&g.glEnableVertexAttribArray, lib, "glEnableVertexAttribArray")
	purego.RegisterLibFunc(&g.glDisableVertexAttribArray, lib, "glDisableVertexAttribArray")
	purego.RegisterLibFunc(&g.glCreateShader, lib, "glCreateShader")
	purego.RegisterLibFunc(&g.glShaderSource, lib, "glShaderSource")
	purego.RegisterLibFunc(&g.glCompileShader, lib, "glCompileShader")
	purego.RegisterLibFunc(&g.glGetShaderiv, lib, "glGetShaderiv")
	purego.RegisterLibFunc(&g.glGetShaderInfoLog, lib, "glGetShaderInfoLog")
	purego.RegisterLibFunc(&g.glDeleteShader, lib, "glDeleteShader")
	purego.RegisterLibFunc(&g.glCreateProgram, lib, "glCreateProgram")
	purego.RegisterLibFunc(&g.glAttachShader, lib, "glAttachShader")
	purego.RegisterLibFunc(&g.glLinkProgram, lib, "glLinkProgram")
	purego.RegisterLibFunc(&g.glGetProgramiv, lib, "glGetProgramiv")
	purego.RegisterLibFunc(&g.glGetProgramInfoLog, lib, "glGetProgramInfoLog")
	purego.RegisterLibFunc(&g.glUseProgram, lib, "glUseProgram")
	purego.RegisterLibFunc(&g.glDeleteProgram, lib, "glDeleteProgram")
	purego.RegisterLibFunc(&g.glGetUniformLocation, lib, "glGetUniformLocation")
	purego.RegisterLibFunc(&g.glGetAttribLocation, lib, "glGetAttribLocation")
	purego.RegisterLibFunc(&g.glUniform1i, lib, "glUniform1i")
	purego.RegisterLibFunc(&g.glUniform1f, lib, "glUniform1f")
	purego.RegisterLibFunc(&g.glUniformMatrix4fv, lib, "glUniformMatrix4fv")
	purego.RegisterLibFunc(&g.glDrawArrays, lib, "glDrawArrays")
	purego.RegisterLibFunc(&g.glDrawElements, lib, "glDrawElements")

	return g, nil
}

func (g *glesLib) ClearColor(r, gr, b, a float32)    { g.glClearColor(r, gr, b, a) }
func (g *glesLib) Clear(mask uint32)                 { g.glClear(mask) }
func (g *glesLib) Viewport(x, y, w, h int32)         { g.glViewport(x, y, w, h) }
func (g *glesLib) Enable(cap uint32)                 { g.glEnable(cap) }
func (g *glesLib) Disable(cap uint32)                { g.glDisable(cap) }
func (g *glesLib) CullFace(mode uint32)              { g.glCullFace(mode) }
func (g *glesLib) BlendFunc(sfactor, dfactor uint32) { g.glBlendFunc(sfactor, dfactor) }
func (g *glesLib) GetError() uint32                  { return g.glGetError() }
func (g *glesLib) GetString(name uint32) string      { return gostring(g.glGetString(name)) }

func (g *glesLib) GenTextures(n int32, textures *uint32)    { g.glGenTextures(n, textures) }
func (g *glesLib) DeleteTextures(n int32, textures *uint32) { g.glDeleteTextures(n, textures) }
func (g *glesLib) BindTexture(target, texture uint32)       { g.glBindTexture(target, texture) }

func (g *glesLib) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	g.glTexImage2D(target, level, internalformat, width, height, border, format, xtype, pixels)
}

func (g *glesLib) TexParameteri(target, pname uint32, param int32) {
	g.glTexParameteri(target, pname, param)
}

func (g *glesLib) ActiveTexture(texture uint32) { g.glActiveTexture(texture) }

func (g *glesLib) EGLImageTargetTexture2DOES(target uint32, image uintptr) bool {
	if g.glEGLImageTargetTexture2DOES == nil {
		if g.procAddr == nil {
			return false
		}
		fn := g.procAddr("glEGLImageTargetTexture2DOES")
		if fn == 0 {
			return false
		}
		purego.RegisterFunc(&g.glEGLImageTargetTexture2DOES, fn)
	}
	g.glEGLImageTargetTexture2DOES(target, image)
	return true
}

func (g *glesLib) GenFramebuffers(n int32, fbs *uint32)    { g.glGenFramebuffers(n, fbs) }
func (g *glesLib) DeleteFramebuffers(n int32, fbs *uint32) { g.glDeleteFramebuffers(n, fbs) }
func (g *glesLib) BindFramebuffer(target, fb uint32)       { g.glBindFramebuffer(target, fb) }

func (g *glesLib) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	g.glFramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (g *glesLib) CheckFramebufferStatus(target uint32) uint32 {
	return g.glCheckFramebufferStatus(target)
}

func (g *glesLib) GenBuffers(n int32, buffers *uint32)    { g.glGenBuffers(n, buffers) }
func (g *glesLib) DeleteBuffers(n int32, buffers *uint32) { g.glDeleteBuffers(n, buffers) }
func (g *glesLib) BindBuffer(target, buffer uint32)       { g.glBindBuffer(target, buffer) }

func (g *glesLib) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	g.glBufferData(target, uintptr(size), data, usage)
}

func (g *glesLib) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.glVertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (g *glesLib) EnableVertexAttribArray(index uint32)  { g.glEnableVertexAttribArray(index) }
func (g *glesLib) DisableVertexAttribArray(index uint32) { g.glDisableVertexAttribArray(index) }

func (g *glesLib) CreateShader(xtype uint32) uint32 { return g.glCreateShader(xtype) }

func (g *glesLib) ShaderSource(shader uint32, source string) {
	src := cstring(source)
	length := int32(len(source))
	g.glShaderSource(shader, 1, &src, &length)
	runtime.KeepAlive(src)
}

func (g *glesLib) CompileShader(shader uint32) { g.glCompileShader(shader) }

func (g *glesLib) GetShaderiv(shader, pname uint32, params *int32) {
	g.glGetShaderiv(shader, pname, params)
}

func (g *glesLib) GetShaderInfoLog(shader uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]byte, bufSize)
	var n int32
	g.glGetShaderInfoLog(shader, bufSize, &n, &buf[0])
	return string(buf[:clampLen(n, bufSize)])
}

func (g *glesLib) DeleteShader(shader uint32) { g.glDeleteShader(shader) }
func (g *glesLib) CreateProgram() uint32      { return g.glCreateProgram() }

func (g *glesLib) AttachShader(program, shader uint32) { g.glAttachShader(program, shader) }
func (g *glesLib) LinkProgram(program uint32)          { g.glLinkProgram(program) }

func (g *glesLib) GetProgramiv(program, pname uint32, params *int32) {
	g.glGetProgramiv(program, pname, params)
}

func (g *glesLib) GetProgramInfoLog(program uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]byte, bufSize)
	var n int32
	g.glGetProgramInfoLog(program, bufSize, &n, &buf[0])
	return string(buf[:clampLen(n, bufSize)])
}

func (g *glesLib) UseProgram(program uint32)    { g.glUseProgram(program) }
func (g *glesLib) DeleteProgram(program uint32) { g.glDeleteProgram(program) }

func (g *glesLib) GetUniformLocation(program uint32, name string) int32 {
	p := cstring(name)
	loc := g.glGetUniformLocation(program, p)
	runtime.KeepAlive(p)
	return loc
}

func (g *glesLib) GetAttribLocation(program uint32, name string) int32 {
	p := cstring(name)
	loc := g.glGetAttribLocation(program, p)
	runtime.KeepAlive(p)
	return loc
}

func (g *glesLib) Uniform1i(location, v0 int32)         { g.glUniform1i(location, v0) }
func (g *glesLib) Uniform1f(location int32, v0 float32) { g.glUniform1f(location, v0) }

func (g *glesLib) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	g.glUniformMatrix4fv(location, count, transpose, value)
}

func (g *glesLib) DrawArrays(mode uint32, first, count int32) { g.glDrawArrays(mode, first, count) }

func (g *glesLib) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	g.glDrawElements(mode, count, xtype, offset)
}

func clampLen(n, max int32) int32 {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
