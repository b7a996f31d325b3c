// Package egl binds the EGL display API used to negotiate surfaces, contexts
// and external images.
package egl

import "fmt"

// Opaque EGL handles.
type (
	Display uintptr
	Config  uintptr
	Surface uintptr
	Context uintptr
	Image   uintptr
)

// Sentinel handles.
const (
	NoDisplay Display = 0
	NoSurface Surface = 0
	NoContext Context = 0
	NoImage   Image   = 0

	// DefaultDisplay is EGL_DEFAULT_DISPLAY as a native display argument.
	DefaultDisplay uintptr = 0
)

const (
	False = 0
	True  = 1

	Success           = 0x3000
	NotInitialized    = 0x3001
	BadAccess         = 0x3002
	BadAlloc          = 0x3003
	BadAttribute      = 0x3004
	BadConfig         = 0x3005
	BadContext        = 0x3006
	BadCurrentSurface = 0x3007
	BadDisplay        = 0x3008
	BadMatch          = 0x3009
	BadNativePixmap   = 0x300A
	BadNativeWindow   = 0x300B
	BadParameter      = 0x300C
	BadSurface        = 0x300D
	ContextLost       = 0x300E

	// Config attributes.
	BufferSize            = 0x3020
	AlphaSize             = 0x3021
	BlueSize              = 0x3022
	GreenSize             = 0x3023
	RedSize               = 0x3024
	DepthSize             = 0x3025
	StencilSize           = 0x3026
	ConfigCaveat          = 0x3027
	ConfigID              = 0x3028
	Level                 = 0x3029
	MaxPbufferHeight      = 0x302A
	MaxPbufferPixels      = 0x302B
	MaxPbufferWidth       = 0x302C
	NativeRenderable      = 0x302D
	NativeVisualID        = 0x302E
	NativeVisualType      = 0x302F
	Samples               = 0x3031
	SampleBuffers         = 0x3032
	SurfaceType           = 0x3033
	TransparentType       = 0x3034
	TransparentBlueValue  = 0x3035
	TransparentGreenValue = 0x3036
	TransparentRedValue   = 0x3037
	None                  = 0x3038
	BindToTextureRGB      = 0x3039
	BindToTextureRGBA     = 0x303A
	MinSwapInterval       = 0x303B
	MaxSwapInterval       = 0x303C
	LuminanceSize         = 0x303D
	AlphaMaskSize         = 0x303E
	ColorBufferType       = 0x303F
	RenderableType        = 0x3040
	Conformant            = 0x3042

	// SurfaceType bits.
	PbufferBit = 0x0001
	PixmapBit  = 0x0002
	WindowBit  = 0x0004

	// RenderableType bits.
	OpenGLESBit  = 0x0001
	OpenVGBit    = 0x0002
	OpenGLES2Bit = 0x0004
	OpenGLBit    = 0x0008

	// QueryString names.
	Vendor     = 0x3053
	Version    = 0x3054
	Extensions = 0x3055
	ClientAPIs = 0x308D

	// Context and surface attributes.
	OpenGLESAPI          = 0x30A0
	ContextClientVersion = 0x3098
	Height               = 0x3056
	Width                = 0x3057

	// EGL_EXT_image_dma_buf_import.
	LinuxDmaBuf        = 0x3270
	LinuxDrmFourCC     = 0x3271
	DmaBufPlane0FD     = 0x3272
	DmaBufPlane0Offset = 0x3273
	DmaBufPlane0Pitch  = 0x3274
	DmaBufPlane1FD     = 0x3275
	DmaBufPlane1Offset = 0x3276
	DmaBufPlane1Pitch  = 0x3277
	DmaBufPlane2FD     = 0x3278
	DmaBufPlane2Offset = 0x3279
	DmaBufPlane2Pitch  = 0x327A
)

// Binding is the set of EGL entry points used by the demos. The purego
// implementation is returned by Load; tests substitute fakes.
type Binding interface {
	GetDisplay(native uintptr) Display
	Initialize(dpy Display) (major, minor int32, ok bool)
	BindAPI(api uint32) bool
	// ChooseConfig returns every config matching attribs, in the order the
	// implementation reports them.
	ChooseConfig(dpy Display, attribs []int32) ([]Config, bool)
	GetConfigAttrib(dpy Display, cfg Config, attr int32) (int32, bool)
	CreateWindowSurface(dpy Display, cfg Config, win uintptr, attribs []int32) Surface
	CreateContext(dpy Display, cfg Config, share Context, attribs []int32) Context
	MakeCurrent(dpy Display, draw, read Surface, ctx Context) bool
	QuerySurface(dpy Display, surf Surface, attr int32) (int32, bool)
	SwapBuffers(dpy Display, surf Surface) bool
	QueryString(dpy Display, name int32) string
	GetError() int32
	GetProcAddress(name string) uintptr

	// EGL_KHR_image_base. Both report failure when the extension is missing.
	CreateImageKHR(dpy Display, ctx Context, target uint32, buffer uintptr, attribs []int32) Image
	DestroyImageKHR(dpy Display, img Image) bool
}

// ErrorString returns the symbolic name of an EGL error code.
func ErrorString(code int32) string {
	switch code {
	case Success:
		return "EGL_SUCCESS"
	case NotInitialized:
		return "EGL_NOT_INITIALIZED"
	case BadAccess:
		return "EGL_BAD_ACCESS"
	case BadAlloc:
		return "EGL_BAD_ALLOC"
	case BadAttribute:
		return "EGL_BAD_ATTRIBUTE"
	case BadConfig:
		return "EGL_BAD_CONFIG"
	case BadContext:
		return "EGL_BAD_CONTEXT"
	case BadCurrentSurface:
		return "EGL_BAD_CURRENT_SURFACE"
	case BadDisplay:
		return "EGL_BAD_DISPLAY"
	case BadMatch:
		return "EGL_BAD_MATCH"
	case BadNativePixmap:
		return "EGL_BAD_NATIVE_PIXMAP"
	case BadNativeWindow:
		return "EGL_BAD_NATIVE_WINDOW"
	case BadParameter:
		return "EGL_BAD_PARAMETER"
	case BadSurface:
		return "EGL_BAD_SURFACE"
	case ContextLost:
		return "EGL_CONTEXT_LOST"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// ConfigAttrib names a config attribute for diagnostics.
type ConfigAttrib struct {
	Attr int32
	Name string
}

// ConfigAttribs lists the attributes dumped after a config has been chosen.
var ConfigAttribs = []ConfigAttrib{
	{BufferSize, "EGL_BUFFER_SIZE"},
	{AlphaSize, "EGL_ALPHA_SIZE"},
	{BlueSize, "EGL_BLUE_SIZE"},
	{GreenSize, "EGL_GREEN_SIZE"},
	{RedSize, "EGL_RED_SIZE"},
	{DepthSize, "EGL_DEPTH_SIZE"},
	{StencilSize, "EGL_STENCIL_SIZE"},
	{ConfigCaveat, "EGL_CONFIG_CAVEAT"},
	{ConfigID, "EGL_CONFIG_ID"},
	{Level, "EGL_LEVEL"},
	{MaxPbufferHeight, "EGL_MAX_PBUFFER_HEIGHT"},
	{MaxPbufferPixels, "EGL_MAX_PBUFFER_PIXELS"},
	{MaxPbufferWidth, "EGL_MAX_PBUFFER_WIDTH"},
	{NativeRenderable, "EGL_NATIVE_RENDERABLE"},
	{NativeVisualID, "EGL_NATIVE_VISUAL_ID"},
	{NativeVisualType, "EGL_NATIVE_VISUAL_TYPE"},
	{Samples, "EGL_SAMPLES"},
	{SampleBuffers, "EGL_SAMPLE_BUFFERS"},
	{SurfaceType, "EGL_SURFACE_TYPE"},
	{TransparentType, "EGL_TRANSPARENT_TYPE"},
	{TransparentRedValue, "EGL_TRANSPARENT_RED_VALUE"},
	{TransparentGreenValue, "EGL_TRANSPARENT_GREEN_VALUE"},
	{TransparentBlueValue, "EGL_TRANSPARENT_BLUE_VALUE"},
	{BindToTextureRGB, "EGL_BIND_TO_TEXTURE_RGB"},
	{BindToTextureRGBA, "EGL_BIND_TO_TEXTURE_RGBA"},
	{MinSwapInterval, "EGL_MIN_SWAP_INTERVAL"},
	{MaxSwapInterval, "EGL_MAX_SWAP_INTERVAL"},
	{LuminanceSize, "EGL_LUMINANCE_SIZE"},
	{AlphaMaskSize, "EGL_ALPHA_MASK_SIZE"},
	{ColorBufferType, "EGL_COLOR_BUFFER_TYPE"},
	{RenderableType, "EGL_RENDERABLE_TYPE"},
	{Conformant, "EGL_CONFORMANT"},
}

// attribList appends the EGL_NONE terminator when missing.
func attribList(attribs []int32) []int32 {
	if len(attribs) > 0 && attribs[len(attribs)-1] == None {
		return attribs
	}
	out := make([]int32, 0, len(attribs)+1)
	out = append(out, attribs...)
	return append(out, None)
}
