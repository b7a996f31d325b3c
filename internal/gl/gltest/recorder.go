// Package gltest provides an in-memory gl.OpenGL that records every call.
package gltest

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/glcube/internal/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gl.OpenGL without a GPU. Zero value is ready to use and
// behaves like a driver where everything compiles, links and is present.
type Recorder struct {
	Calls []Call

	// MissingAttribs and MissingUniforms make the named lookups return -1.
	MissingAttribs  map[string]bool
	MissingUniforms map[string]bool

	// FailCompile makes compilation of the given shader type fail.
	FailCompile map[uint32]bool
	// ZeroShader makes CreateShader return 0 for the given shader type.
	ZeroShader map[uint32]bool
	// FailLink makes LinkProgram report failure.
	FailLink bool
	// InfoLog is returned by the info log queries.
	InfoLog string
	// HideLogLength makes InfoLogLength queries report 0.
	HideLogLength bool

	// FramebufferStatus is returned by CheckFramebufferStatus; zero means complete.
	FramebufferStatus uint32

	// NoImageTarget makes EGLImageTargetTexture2DOES report a missing entry
	// point.
	NoImageTarget bool

	// Errors is drained one entry per GetError call.
	Errors []uint32

	// Strings backs GetString.
	Strings map[uint32]string

	nextName    uint32
	shaderTypes map[uint32]uint32
	attribs     map[string]int32
	uniforms    map[string]int32
}

var _ gl.OpenGL = (*Recorder)(nil)

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen() uint32 {
	r.nextName++
	return r.nextName
}

// Count returns how many times the named entry point was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns every recorded call to the named entry point, in order.
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps resolved names and configuration.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// AttribIndex returns the index handed out for an attribute name, or -1.
func (r *Recorder) AttribIndex(name string) int32 {
	if idx, ok := r.attribs[name]; ok {
		return idx
	}
	return -1
}

// UniformIndex returns the location handed out for a uniform name, or -1.
func (r *Recorder) UniformIndex(name string) int32 {
	if idx, ok := r.uniforms[name]; ok {
		return idx
	}
	return -1
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32)          { r.record("Clear", mask) }
func (r *Recorder) Viewport(x, y, w, h int32)  { r.record("Viewport", x, y, w, h) }
func (r *Recorder) Enable(cap uint32)          { r.record("Enable", cap) }
func (r *Recorder) Disable(cap uint32)         { r.record("Disable", cap) }
func (r *Recorder) CullFace(mode uint32)       { r.record("CullFace", mode) }
func (r *Recorder) BlendFunc(s, d uint32)      { r.record("BlendFunc", s, d) }
func (r *Recorder) GetString(n uint32) string  { return r.Strings[n] }
func (r *Recorder) ActiveTexture(unit uint32)  { r.record("ActiveTexture", unit) }
func (r *Recorder) UseProgram(program uint32)  { r.record("UseProgram", program) }
func (r *Recorder) LinkProgram(program uint32) { r.record("LinkProgram", program) }

func (r *Recorder) GetError() uint32 {
	if len(r.Errors) == 0 {
		return gl.NoError
	}
	code := r.Errors[0]
	r.Errors = r.Errors[1:]
	return code
}

func (r *Recorder) GenTextures(n int32, textures *uint32) {
	genInto(r, n, textures)
	r.record("GenTextures", n)
}

func (r *Recorder) DeleteTextures(n int32, textures *uint32) {
	r.record("DeleteTextures", n, *textures)
}

func (r *Recorder) BindTexture(target, texture uint32) {
	r.record("BindTexture", target, texture)
}

func (r *Recorder) TexImage2D(target uint32, level, internalformat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	r.record("TexImage2D", target, level, internalformat, width, height, border, format, xtype, pixels == nil)
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) EGLImageTargetTexture2DOES(target uint32, image uintptr) bool {
	r.record("EGLImageTargetTexture2DOES", target, image)
	return !r.NoImageTarget
}

func (r *Recorder) GenFramebuffers(n int32, fbs *uint32) {
	genInto(r, n, fbs)
	r.record("GenFramebuffers", n)
}

func (r *Recorder) DeleteFramebuffers(n int32, fbs *uint32) {
	r.record("DeleteFramebuffers", n, *fbs)
}

func (r *Recorder) BindFramebuffer(target, fb uint32) {
	r.record("BindFramebuffer", target, fb)
}

func (r *Recorder) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	r.record("FramebufferTexture2D", target, attachment, textarget, texture, level)
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.record("CheckFramebufferStatus", target)
	if r.FramebufferStatus == 0 {
		return gl.FramebufferComplete
	}
	return r.FramebufferStatus
}

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	genInto(r, n, buffers)
	r.record("GenBuffers", n)
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) {
	r.record("DeleteBuffers", n, *buffers)
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", target, buffer)
}

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.record("BufferData", target, size, usage)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	r.record("CreateShader", xtype)
	if r.ZeroShader[xtype] {
		return 0
	}
	name := r.gen()
	if r.shaderTypes == nil {
		r.shaderTypes = make(map[uint32]uint32)
	}
	r.shaderTypes[name] = xtype
	return name
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader uint32) {
	r.record("CompileShader", shader)
}

func (r *Recorder) GetShaderiv(shader, pname uint32, params *int32) {
	switch pname {
	case gl.CompileStatus:
		*params = 1
		if r.FailCompile[r.shaderTypes[shader]] {
			*params = 0
		}
	case gl.InfoLogLength:
		*params = r.logLength()
	}
}

func (r *Recorder) GetShaderInfoLog(shader uint32, bufSize int32) string {
	r.record("GetShaderInfoLog", shader, bufSize)
	return truncate(r.InfoLog, bufSize)
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader", shader)
}

func (r *Recorder) CreateProgram() uint32 {
	r.record("CreateProgram")
	return r.gen()
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader", program, shader)
}

func (r *Recorder) GetProgramiv(program, pname uint32, params *int32) {
	switch pname {
	case gl.LinkStatus:
		*params = 1
		if r.FailLink {
			*params = 0
		}
	case gl.InfoLogLength:
		*params = r.logLength()
	}
}

func (r *Recorder) GetProgramInfoLog(program uint32, bufSize int32) string {
	r.record("GetProgramInfoLog", program, bufSize)
	return truncate(r.InfoLog, bufSize)
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram", program)
}

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	if r.MissingUniforms[name] {
		return -1
	}
	if r.uniforms == nil {
		r.uniforms = make(map[string]int32)
	}
	if loc, ok := r.uniforms[name]; ok {
		return loc
	}
	loc := int32(len(r.uniforms))
	r.uniforms[name] = loc
	return loc
}

func (r *Recorder) GetAttribLocation(program uint32, name string) int32 {
	if r.MissingAttribs[name] {
		return -1
	}
	if r.attribs == nil {
		r.attribs = make(map[string]int32)
	}
	if loc, ok := r.attribs[name]; ok {
		return loc
	}
	loc := int32(len(r.attribs))
	r.attribs[name] = loc
	return loc
}

func (r *Recorder) Uniform1i(location, v0 int32) {
	r.record("Uniform1i", location, v0)
}

func (r *Recorder) Uniform1f(location int32, v0 float32) {
	r.record("Uniform1f", location, v0)
}

// UniformMatrix4fv records the full matrix so tests can inspect it.
func (r *Recorder) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	var m [16]float32
	copy(m[:], unsafe.Slice(value, 16))
	r.record("UniformMatrix4fv", location, count, transpose, m)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	r.record("DrawElements", mode, count, xtype, offset)
}

func (r *Recorder) logLength() int32 {
	if r.HideLogLength || r.InfoLog == "" {
		return 0
	}
	return int32(len(r.InfoLog) + 1)
}

func genInto(r *Recorder, n int32, dst *uint32) {
	names := unsafe.Slice(dst, n)
	for i := range names {
		names[i] = r.gen()
	}
}

func truncate(s string, n int32) string {
	if int32(len(s)) > n {
		return s[:n]
	}
	return s
}
