package render

import (
	"errors"
	"fmt"

	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/logging"
)

// defaultInfoLogSize is the buffer used when the driver does not report an
// info log length.
const defaultInfoLogSize = 0x1000

// Location is a resolved attribute or uniform location. The zero value is
// absent: the name was optimised out or never declared.
type Location struct {
	loc   int32
	valid bool
}

func location(loc int32) Location {
	if loc < 0 {
		return Location{}
	}
	return Location{loc: loc, valid: true}
}

func (l Location) Valid() bool   { return l.valid }
func (l Location) Int() int32    { return l.loc }
func (l Location) Index() uint32 { return uint32(l.loc) }

// ShaderSet is a vertex and fragment shader pair sharing one interface.
type ShaderSet struct {
	Name     string
	Vertex   string
	Fragment string
}

const vertexShader = `attribute vec4 a_v4Position;
attribute vec4 a_v4FillColor;
attribute vec2 a_v2TexCoord;
uniform mat4 u_m4Projection;
uniform mat4 u_m4Modelview;
varying vec4 v_v4FillColor;
varying vec2 v_v2TexCoord;
void main()
{
	v_v4FillColor = a_v4FillColor;
	v_v2TexCoord = a_v2TexCoord;
	gl_Position = u_m4Projection * u_m4Modelview * a_v4Position;
}
`

// FlatShaders output the interpolated vertex color.
var FlatShaders = ShaderSet{
	Name: "flat",
	Vertex: `attribute vec4 a_v4Position;
attribute vec4 a_v4FillColor;
uniform mat4 u_m4Projection;
uniform mat4 u_m4Modelview;
varying vec4 v_v4FillColor;
void main()
{
	v_v4FillColor = a_v4FillColor;
	gl_Position = u_m4Projection * u_m4Modelview * a_v4Position;
}
`,
	Fragment: `precision mediump float;
varying vec4 v_v4FillColor;
void main()
{
	gl_FragColor = v_v4FillColor;
}
`,
}

// TexturedShaders mix the vertex color with a 2D texture by u_fTex.
var TexturedShaders = ShaderSet{
	Name:   "textured",
	Vertex: vertexShader,
	Fragment: `precision mediump float;
uniform sampler2D u_s2dTexture;
uniform float u_fTex;
varying vec4 v_v4FillColor;
varying vec2 v_v2TexCoord;
void main()
{
	vec4 v4Texel = texture2D(u_s2dTexture, v_v2TexCoord);
	gl_FragColor = mix(v_v4FillColor, v4Texel, u_fTex);
}
`,
}

// ExternalShaders mix the vertex color with an EGLImage-backed texture.
var ExternalShaders = ShaderSet{
	Name:   "external",
	Vertex: vertexShader,
	Fragment: `#extension GL_OES_EGL_image_external : require
precision mediump float;
uniform samplerExternalOES u_s2dTexture;
uniform float u_fTex;
varying vec4 v_v4FillColor;
varying vec2 v_v2TexCoord;
void main()
{
	vec4 v4Texel = texture2D(u_s2dTexture, v_v2TexCoord);
	gl_FragColor = mix(v_v4FillColor, v4Texel, u_fTex);
}
`,
}

// Program is a linked shader program with its resolved interface.
type Program struct {
	ID uint32

	Position  Location
	FillColor Location
	TexCoord  Location

	TextureMix Location
	Sampler    Location
	Projection Location
	Modelview  Location
}

// Compile creates and compiles one shader. A failure returns the driver's
// info log in the error.
func Compile(g gl.OpenGL, kind uint32, src string) (uint32, error) {
	shader := g.CreateShader(kind)
	if shader == 0 {
		gl.CheckError(g, "glCreateShader")
		return 0, fmt.Errorf("glCreateShader(0x%x) returned 0", kind)
	}
	g.ShaderSource(shader, src)
	g.CompileShader(shader)

	var status int32
	g.GetShaderiv(shader, gl.CompileStatus, &status)
	if status == 0 {
		var n int32
		g.GetShaderiv(shader, gl.InfoLogLength, &n)
		if n <= 0 {
			n = defaultInfoLogSize
		}
		log := g.GetShaderInfoLog(shader, n)
		g.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader 0x%x: %s", kind, log)
	}
	return shader, nil
}

// NewProgram compiles and links set, resolves its interface and initialises
// the texture mix to 0 and the sampler to unit 0.
//
// Only a_v4Position is required. Every other name may be absent; absent
// attributes are skipped when drawing and absent uniforms are never set.
func NewProgram(g gl.OpenGL, set ShaderSet) (*Program, error) {
	log := logging.Logger()

	vs, err := Compile(g, gl.VertexShader, set.Vertex)
	if err != nil {
		return nil, fmt.Errorf("%s vertex shader: %w", set.Name, err)
	}
	fs, err := Compile(g, gl.FragmentShader, set.Fragment)
	if err != nil {
		g.DeleteShader(vs)
		return nil, fmt.Errorf("%s fragment shader: %w", set.Name, err)
	}

	id := g.CreateProgram()
	if id == 0 {
		g.DeleteShader(vs)
		g.DeleteShader(fs)
		return nil, errors.New("glCreateProgram returned 0")
	}
	g.AttachShader(id, vs)
	gl.CheckError(g, "glAttachShader")
	g.AttachShader(id, fs)
	gl.CheckError(g, "glAttachShader")
	g.LinkProgram(id)

	var status int32
	g.GetProgramiv(id, gl.LinkStatus, &status)
	if status == 0 {
		var n int32
		g.GetProgramiv(id, gl.InfoLogLength, &n)
		if n <= 0 {
			n = defaultInfoLogSize
		}
		msg := g.GetProgramInfoLog(id, n)
		g.DeleteShader(vs)
		g.DeleteShader(fs)
		g.DeleteProgram(id)
		return nil, fmt.Errorf("link %s program: %s", set.Name, msg)
	}

	// Shaders can be deleted after linking
	g.DeleteShader(vs)
	g.DeleteShader(fs)

	p := &Program{ID: id}
	p.Position = location(g.GetAttribLocation(id, "a_v4Position"))
	if !p.Position.Valid() {
		g.DeleteProgram(id)
		return nil, fmt.Errorf("%s program has no a_v4Position attribute", set.Name)
	}
	p.FillColor = location(g.GetAttribLocation(id, "a_v4FillColor"))
	p.TexCoord = location(g.GetAttribLocation(id, "a_v2TexCoord"))
	if !p.FillColor.Valid() {
		log.Warn("attribute not active", "program", set.Name, "name", "a_v4FillColor")
	}
	if !p.TexCoord.Valid() {
		log.Warn("attribute not active", "program", set.Name, "name", "a_v2TexCoord")
	}

	p.TextureMix = location(g.GetUniformLocation(id, "u_fTex"))
	p.Sampler = location(g.GetUniformLocation(id, "u_s2dTexture"))
	p.Projection = location(g.GetUniformLocation(id, "u_m4Projection"))
	p.Modelview = location(g.GetUniformLocation(id, "u_m4Modelview"))
	log.Info("linked program",
		"program", set.Name,
		"position", p.Position.Int(),
		"fillColor", locString(p.FillColor),
		"texCoord", locString(p.TexCoord),
		"textureMix", locString(p.TextureMix),
		"sampler", locString(p.Sampler),
		"projection", locString(p.Projection),
		"modelview", locString(p.Modelview),
	)

	g.UseProgram(id)
	gl.CheckError(g, "glUseProgram")
	p.SetTextureMix(g, 0)
	if p.Sampler.Valid() {
		g.Uniform1i(p.Sampler.Int(), 0)
	}

	return p, nil
}

// SetTextureMix sets u_fTex when the program declares it.
func (p *Program) SetTextureMix(g gl.OpenGL, mix float32) {
	if p.TextureMix.Valid() {
		g.Uniform1f(p.TextureMix.Int(), mix)
	}
}

// SetMatrices uploads the projection and model-view matrices that are present.
func (p *Program) SetMatrices(g gl.OpenGL, projection, modelview Mat4) {
	if p.Projection.Valid() {
		g.UniformMatrix4fv(p.Projection.Int(), 1, false, &projection[0])
	}
	if p.Modelview.Valid() {
		g.UniformMatrix4fv(p.Modelview.Int(), 1, false, &modelview[0])
	}
}

// Delete releases the program object.
func (p *Program) Delete(g gl.OpenGL) {
	if p.ID != 0 {
		g.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func locString(l Location) string {
	if !l.Valid() {
		return "absent"
	}
	return fmt.Sprint(l.Int())
}
