package render

import (
	"fmt"

	"github.com/tinyrange/glcube/internal/gl"
)

// DefaultTargetSize is the edge length of the offscreen target.
const DefaultTargetSize = 256

// Target is an off-screen render target (FBO + texture).
type Target struct {
	gl      gl.OpenGL
	fbo     uint32
	texture uint32
	width   int
	height  int
}

// NewTarget creates a render-to-texture target. The target is left unbound.
func NewTarget(g gl.OpenGL, width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size: %dx%d", width, height)
	}

	rt := &Target{gl: g, width: width, height: height}
	if err := rt.create(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Target) create() error {
	g := rt.gl

	// Color attachment, no mipmaps.
	g.GenTextures(1, &rt.texture)
	g.BindTexture(gl.Texture2D, rt.texture)
	g.TexParameteri(gl.Texture2D, gl.TextureMinFilter, gl.Linear)
	g.TexParameteri(gl.Texture2D, gl.TextureMagFilter, gl.Linear)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapS, gl.ClampToEdge)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapT, gl.ClampToEdge)
	g.TexImage2D(
		gl.Texture2D,
		0,
		int32(gl.RGBA),
		int32(rt.width),
		int32(rt.height),
		0,
		gl.RGBA,
		gl.UnsignedByte,
		nil,
	)
	gl.CheckError(g, "glTexImage2D: target")

	g.GenFramebuffers(1, &rt.fbo)
	g.BindFramebuffer(gl.Framebuffer, rt.fbo)
	g.FramebufferTexture2D(
		gl.Framebuffer,
		gl.ColorAttachment0,
		gl.Texture2D,
		rt.texture,
		0,
	)

	status := g.CheckFramebufferStatus(gl.Framebuffer)
	if status != gl.FramebufferComplete {
		g.BindFramebuffer(gl.Framebuffer, 0)
		rt.Destroy()
		return fmt.Errorf("framebuffer incomplete: status 0x%X", status)
	}

	g.BindFramebuffer(gl.Framebuffer, 0)
	g.BindTexture(gl.Texture2D, 0)
	return nil
}

// Bind makes the target the drawing destination and sets the viewport to
// its size. Call Unbind when done.
func (rt *Target) Bind() {
	rt.gl.BindFramebuffer(gl.Framebuffer, rt.fbo)
	rt.gl.Viewport(0, 0, int32(rt.width), int32(rt.height))
}

// Unbind restores the window framebuffer. The caller restores the viewport.
func (rt *Target) Unbind() {
	rt.gl.BindFramebuffer(gl.Framebuffer, 0)
}

func (rt *Target) Texture() uint32  { return rt.texture }
func (rt *Target) Size() (int, int) { return rt.width, rt.height }

// Aspect is width/height of the target.
func (rt *Target) Aspect() float32 {
	return float32(rt.width) / float32(rt.height)
}

func (rt *Target) Destroy() {
	if rt.fbo != 0 {
		rt.gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	if rt.texture != 0 {
		rt.gl.DeleteTextures(1, &rt.texture)
		rt.texture = 0
	}
}
