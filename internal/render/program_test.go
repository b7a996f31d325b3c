package render

import (
	"strings"
	"testing"

	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/gl/gltest"
)

func TestNewProgramResolvesInterface(t *testing.T) {
	r := &gltest.Recorder{}
	p, err := NewProgram(r, TexturedShaders)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	for name, loc := range map[string]Location{
		"a_v4Position":   p.Position,
		"a_v4FillColor":  p.FillColor,
		"a_v2TexCoord":   p.TexCoord,
		"u_fTex":         p.TextureMix,
		"u_s2dTexture":   p.Sampler,
		"u_m4Projection": p.Projection,
		"u_m4Modelview":  p.Modelview,
	} {
		if !loc.Valid() {
			t.Errorf("%s not resolved", name)
		}
	}

	// Texture mix starts at 0 and the sampler reads unit 0.
	mix := r.Find("Uniform1f")
	if len(mix) != 1 || mix[0].Args[0] != p.TextureMix.Int() || mix[0].Args[1] != float32(0) {
		t.Fatalf("texture mix init = %v", mix)
	}
	sampler := r.Find("Uniform1i")
	if len(sampler) != 1 || sampler[0].Args[0] != p.Sampler.Int() || sampler[0].Args[1] != int32(0) {
		t.Fatalf("sampler init = %v", sampler)
	}
	if r.Count("DeleteShader") != 2 {
		t.Fatalf("shaders deleted %d times, want 2", r.Count("DeleteShader"))
	}
}

func TestNewProgramOptionalNames(t *testing.T) {
	r := &gltest.Recorder{
		MissingAttribs:  map[string]bool{"a_v4FillColor": true, "a_v2TexCoord": true},
		MissingUniforms: map[string]bool{"u_fTex": true, "u_s2dTexture": true},
	}
	p, err := NewProgram(r, TexturedShaders)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if p.FillColor.Valid() || p.TexCoord.Valid() || p.TextureMix.Valid() || p.Sampler.Valid() {
		t.Fatalf("absent names resolved: %+v", p)
	}
	if r.Count("Uniform1f") != 0 || r.Count("Uniform1i") != 0 {
		t.Fatal("absent uniforms were set")
	}
}

func TestNewProgramRequiresPosition(t *testing.T) {
	r := &gltest.Recorder{MissingAttribs: map[string]bool{"a_v4Position": true}}
	if _, err := NewProgram(r, FlatShaders); err == nil {
		t.Fatal("NewProgram succeeded without a_v4Position")
	}
}

func TestCompileFailure(t *testing.T) {
	tests := []struct {
		name     string
		rec      *gltest.Recorder
		wantSize int32
	}{
		{
			name:     "reported log length",
			rec:      &gltest.Recorder{FailCompile: map[uint32]bool{gl.FragmentShader: true}, InfoLog: "0:3: syntax error"},
			wantSize: int32(len("0:3: syntax error") + 1),
		},
		{
			name:     "unknown log length",
			rec:      &gltest.Recorder{FailCompile: map[uint32]bool{gl.FragmentShader: true}, InfoLog: "0:3: syntax error", HideLogLength: true},
			wantSize: defaultInfoLogSize,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProgram(tt.rec, TexturedShaders)
			if err == nil {
				t.Fatal("NewProgram succeeded with a failing fragment shader")
			}
			if !strings.Contains(err.Error(), "syntax error") {
				t.Fatalf("error %q does not carry the info log", err)
			}
			logs := tt.rec.Find("GetShaderInfoLog")
			if len(logs) != 1 || logs[0].Args[1] != tt.wantSize {
				t.Fatalf("info log reads = %v, want size %d", logs, tt.wantSize)
			}
			if tt.rec.Count("CreateProgram") != 0 {
				t.Fatal("program created after compile failure")
			}
		})
	}
}

func TestCompileZeroHandle(t *testing.T) {
	r := &gltest.Recorder{ZeroShader: map[uint32]bool{gl.VertexShader: true}}
	if _, err := Compile(r, gl.VertexShader, FlatShaders.Vertex); err == nil {
		t.Fatal("Compile succeeded with a zero shader handle")
	}
}

func TestLinkFailure(t *testing.T) {
	r := &gltest.Recorder{FailLink: true, InfoLog: "varying mismatch"}
	_, err := NewProgram(r, FlatShaders)
	if err == nil || !strings.Contains(err.Error(), "varying mismatch") {
		t.Fatalf("NewProgram error = %v, want link failure", err)
	}
	if r.Count("DeleteProgram") != 1 {
		t.Fatalf("DeleteProgram calls = %d, want 1", r.Count("DeleteProgram"))
	}
}

func TestExternalShadersDeclareExtension(t *testing.T) {
	if !strings.HasPrefix(ExternalShaders.Fragment, "#extension GL_OES_EGL_image_external : require") {
		t.Fatal("external fragment shader must start with the extension directive")
	}
	if !strings.Contains(ExternalShaders.Fragment, "samplerExternalOES") {
		t.Fatal("external fragment shader does not sample an external texture")
	}
}
