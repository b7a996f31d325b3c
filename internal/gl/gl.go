// Package gl describes the OpenGL ES 2.0 entry points used by the demos and
// loads them at runtime without cgo.
package gl

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/glcube/internal/logging"
)

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// Texture2D is the texture target for 2D textures.
	Texture2D = 0x0DE1
	// TextureExternalOES is the texture target for EGLImage-backed textures
	// (GL_OES_EGL_image_external).
	TextureExternalOES = 0x8D65

	// TextureWrapS selects the wrapping function for texture coordinate S.
	TextureWrapS = 0x2802
	// TextureWrapT selects the wrapping function for texture coordinate T.
	TextureWrapT = 0x2803

	// TextureMinFilter selects the texture minification filter.
	TextureMinFilter = 0x2801
	// TextureMagFilter selects the texture magnification filter.
	TextureMagFilter = 0x2800

	// Nearest selects nearest-neighbor filtering.
	Nearest = 0x2600
	// Linear selects linear filtering.
	Linear = 0x2601

	// ClampToEdge clamps texture coordinates to the edge of the texture.
	ClampToEdge = 0x812F

	// RGBA is a pixel format representing red/green/blue/alpha.
	RGBA = 0x1908

	// UnsignedByte is a data type indicating 8-bit unsigned values.
	UnsignedByte = 0x1401
	// UnsignedShort is a data type indicating 16-bit unsigned values.
	UnsignedShort = 0x1403
	// Float is a data type indicating 32-bit floating point values.
	Float = 0x1406

	// Triangles is a primitive type for drawing triangles.
	Triangles = 0x0004
	// TriangleStrip is a primitive type for drawing a connected strip of triangles.
	TriangleStrip = 0x0005

	// ArrayBuffer is the target for vertex buffer objects.
	ArrayBuffer = 0x8892
	// ElementArrayBuffer is the target for index buffer objects.
	ElementArrayBuffer = 0x8893
	// StaticDraw indicates that buffer data will be modified once and used many times.
	StaticDraw = 0x88E4

	// Shader types
	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	// Shader/Program status
	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	// Texture unit
	Texture0 = 0x84C0

	// Capabilities.
	Blend     = 0x0BE2
	CullFace  = 0x0B44
	DepthTest = 0x0B71
	Back      = 0x0405

	// Blending factors.
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// Framebuffer objects.
	Framebuffer         = 0x8D40
	ColorAttachment0    = 0x8CE0
	FramebufferComplete = 0x8CD5

	// GetString parameters.
	Vendor                 = 0x1F00
	Renderer               = 0x1F01
	Version                = 0x1F02
	Extensions             = 0x1F03
	ShadingLanguageVersion = 0x8B8C

	// Errors returned by GetError.
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// OpenGL describes the subset of OpenGL ES 2.0 entry points used by this module.
//
// All methods operate on the context that is current for the calling thread.
type OpenGL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	Disable(cap uint32)
	CullFace(mode uint32)
	BlendFunc(sfactor, dfactor uint32)

	// GetError returns and clears the oldest recorded error flag.
	GetError() uint32

	// GetString returns a string describing a GL property for the current context.
	// It returns the empty string if the name is unknown.
	GetString(name uint32) string

	// Textures
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	BindTexture(target, texture uint32)
	TexImage2D(
		target uint32,
		level int32,
		internalformat int32,
		width int32,
		height int32,
		border int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)
	TexParameteri(target, pname uint32, param int32)
	ActiveTexture(texture uint32)

	// EGLImageTargetTexture2DOES binds an EGLImage as the storage of the texture
	// currently bound to target. It reports false when the driver does not
	// provide the entry point.
	EGLImageTargetTexture2DOES(target uint32, image uintptr) bool

	// Framebuffer objects
	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32

	// Buffer operations
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// Vertex attributes. offset is a byte offset into the bound ArrayBuffer.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	// Shader operations
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	// GetShaderInfoLog reads at most bufSize bytes of the shader's info log.
	GetShaderInfoLog(shader uint32, bufSize int32) string
	DeleteShader(shader uint32)

	// Program operations
	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32, bufSize int32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniform and attribute lookup. Both return -1 when the name is not active.
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32

	Uniform1i(location int32, v0 int32)
	Uniform1f(location int32, v0 float32)
	UniformMatrix4fv(location int32, count int32, transpose bool, value *float32)

	// Drawing. offset is a byte offset into the bound ElementArrayBuffer.
	DrawArrays(mode uint32, first int32, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
}

// ProcAddressFunc resolves an extension entry point, usually eglGetProcAddress.
type ProcAddressFunc func(name string) uintptr

// ErrorString returns the symbolic name of a GL error code.
func ErrorString(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// CheckError drains the GL error queue after op and logs every pending error.
// It never alters control flow.
func CheckError(gl OpenGL, op string) {
	// A lost context can report the same error forever; bound the drain.
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == NoError {
			return
		}
		logging.Logger().Error("gl error", "op", op, "error", ErrorString(code), "code", fmt.Sprintf("0x%x", code))
	}
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
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
