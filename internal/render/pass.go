package render

import (
	"github.com/tinyrange/glcube/internal/gl"
)

// Projection parameters shared by every pass.
const (
	FieldOfView = 45
	NearPlane   = 0.01
	FarPlane    = 100
	// Distance the model is pushed away from the camera.
	ModelDistance = 2
)

// Color is an RGBA clear color.
type Color [4]float32

var (
	// SceneBackground clears the window surface.
	SceneBackground = Color{0, 0, 1, 1}
	// TargetBackground clears the offscreen target.
	TargetBackground = Color{0.5, 0.5, 0.5, 1}
)

// Texture is the texture sampled by the main pass on unit 0.
type Texture struct {
	Target uint32
	ID     uint32
}

// RenderState is everything a frame needs. Target and Texture are nil for
// single-pass variants.
type RenderState struct {
	GL      gl.OpenGL
	Program *Program
	Mesh    *Mesh
	Buffers *Buffers
	Angles  AnimationState

	Width  int
	Height int

	Projection       Mat4
	TargetProjection Mat4

	Target  *Target
	Texture *Texture
}

// NewRenderState builds the projections for a width x height window and sets
// the fixed pipeline state: blending, back-face culling and depth testing.
func NewRenderState(g gl.OpenGL, prog *Program, mesh *Mesh, bufs *Buffers, width, height int) *RenderState {
	s := &RenderState{
		GL:      g,
		Program: prog,
		Mesh:    mesh,
		Buffers: bufs,
		Width:   width,
		Height:  height,
	}
	s.Projection = PerspectiveMat4(FieldOfView, aspect(width, height), NearPlane, FarPlane)
	s.TargetProjection = s.Projection

	g.Enable(gl.Blend)
	g.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)
	g.Enable(gl.CullFace)
	g.CullFace(gl.Back)
	g.Enable(gl.DepthTest)
	g.Viewport(0, 0, int32(width), int32(height))
	gl.CheckError(g, "pipeline state")
	return s
}

// SetTarget attaches an offscreen target and its projection.
func (s *RenderState) SetTarget(t *Target) {
	s.Target = t
	if t != nil {
		s.TargetProjection = PerspectiveMat4(FieldOfView, t.Aspect(), NearPlane, FarPlane)
	}
}

// ModelView rotates about the origin and then moves the model away from the
// camera. sign is +1 for the main pass and -1 for the counter-rotating
// offscreen pass.
func ModelView(a AnimationState, sign float32) Mat4 {
	m := TranslateMat4(0, 0, -ModelDistance)
	m = MulMat4(m, RotateXMat4(sign*a.X))
	m = MulMat4(m, RotateYMat4(sign*a.Y))
	m = MulMat4(m, RotateZMat4(sign*a.Z))
	return m
}

// OffscreenPass draws the untextured, counter-rotated model into the target.
// It is a no-op without a target.
func (s *RenderState) OffscreenPass() {
	if s.Target == nil {
		return
	}
	g := s.GL

	s.Target.Bind()
	clearTo(g, TargetBackground)
	s.Program.SetMatrices(g, s.TargetProjection, ModelView(s.Angles, -1))
	s.Program.SetTextureMix(g, 0)
	s.draw("offscreen")
	s.Target.Unbind()

	g.Viewport(0, 0, int32(s.Width), int32(s.Height))
}

// MainPass draws the model to the window surface. With a texture it is
// sampled fully on unit 0, otherwise vertex colors are used.
func (s *RenderState) MainPass() {
	g := s.GL

	clearTo(g, SceneBackground)
	s.Program.SetMatrices(g, s.Projection, ModelView(s.Angles, 1))
	if s.Texture != nil {
		s.Program.SetTextureMix(g, 1)
		g.ActiveTexture(gl.Texture0)
		g.BindTexture(s.Texture.Target, s.Texture.ID)
	} else {
		s.Program.SetTextureMix(g, 0)
	}
	s.draw("main")
}

func (s *RenderState) draw(pass string) {
	g := s.GL
	p := s.Program
	b := s.Buffers

	bindAttribute(g, p.Position, b.Position, 3)
	bindAttribute(g, p.FillColor, b.Color, 4)
	bindAttribute(g, p.TexCoord, b.TexCoord, 2)
	g.BindBuffer(gl.ArrayBuffer, 0)

	if b.Index != 0 {
		g.BindBuffer(gl.ElementArrayBuffer, b.Index)
		g.DrawElements(s.Mesh.Mode, b.IndexCount, gl.UnsignedByte, 0)
		g.BindBuffer(gl.ElementArrayBuffer, 0)
	} else {
		g.DrawArrays(s.Mesh.Mode, 0, b.VertexCount)
	}
	gl.CheckError(g, "draw "+pass)
}

// bindAttribute points an active attribute at buf. Absent attributes and
// streams the mesh lacks are left disabled.
func bindAttribute(g gl.OpenGL, loc Location, buf uint32, size int32) {
	if !loc.Valid() || buf == 0 {
		return
	}
	g.BindBuffer(gl.ArrayBuffer, buf)
	g.VertexAttribPointer(loc.Index(), size, gl.Float, false, 0, 0)
	g.EnableVertexAttribArray(loc.Index())
}

func clearTo(g gl.OpenGL, c Color) {
	g.ClearColor(c[0], c[1], c[2], c[3])
	g.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
}

func aspect(w, h int) float32 {
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}
