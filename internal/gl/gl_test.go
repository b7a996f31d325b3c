package gl_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/gl/gltest"
	"github.com/tinyrange/glcube/internal/logging"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { logging.SetLogger(nil) })
	return &buf
}

func TestCheckErrorDrains(t *testing.T) {
	buf := captureLog(t)
	r := &gltest.Recorder{Errors: []uint32{gl.InvalidEnum, gl.OutOfMemory}}

	gl.CheckError(r, "draw")

	if len(r.Errors) != 0 {
		t.Fatalf("%d errors left queued", len(r.Errors))
	}
	out := buf.String()
	for _, want := range []string{"GL_INVALID_ENUM", "GL_OUT_OF_MEMORY", "op=draw"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestCheckErrorBounded(t *testing.T) {
	captureLog(t)
	r := &gltest.Recorder{}
	for i := 0; i < 20; i++ {
		r.Errors = append(r.Errors, gl.InvalidOperation)
	}

	gl.CheckError(r, "stuck")

	if len(r.Errors) != 4 {
		t.Fatalf("%d errors left, want 4", len(r.Errors))
	}
}

func TestCheckErrorQuiet(t *testing.T) {
	buf := captureLog(t)
	gl.CheckError(&gltest.Recorder{}, "clear")
	if buf.Len() != 0 {
		t.Fatalf("logged without errors: %s", buf.String())
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{gl.NoError, "GL_NO_ERROR"},
		{gl.InvalidValue, "GL_INVALID_VALUE"},
		{gl.InvalidFramebufferOperation, "GL_INVALID_FRAMEBUFFER_OPERATION"},
		{0x1234, "0x1234"},
	}
	for _, tt := range tests {
		if got := gl.ErrorString(tt.code); got != tt.want {
			t.Errorf("ErrorString(0x%x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
