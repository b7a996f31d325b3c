package render

import (
	"testing"

	"github.com/tinyrange/glcube/internal/gl"
	"github.com/tinyrange/glcube/internal/gl/gltest"
)

func TestCubeStreams(t *testing.T) {
	if n := Cube.VertexCount(); n != 24 {
		t.Fatalf("vertex count = %d, want 24", n)
	}
	if len(Cube.Colors) != 24*4 {
		t.Fatalf("colors = %d floats, want %d", len(Cube.Colors), 24*4)
	}
	if len(Cube.TexCoords) != 24*2 {
		t.Fatalf("texcoords = %d floats, want %d", len(Cube.TexCoords), 24*2)
	}
	if len(Cube.Indices) != 34 {
		t.Fatalf("indices = %d, want 34", len(Cube.Indices))
	}
	if Triangle.VertexCount() != 3 || len(Triangle.Colors) != 12 {
		t.Fatalf("triangle has %d vertices, %d color floats", Triangle.VertexCount(), len(Triangle.Colors))
	}
}

func TestCubeIndicesReferenceEveryVertex(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, idx := range Cube.Indices {
		if int(idx) >= Cube.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 24 {
		t.Fatalf("indices reference %d distinct vertices, want 24", len(seen))
	}
}

func TestCubeDegenerateJoins(t *testing.T) {
	idx := Cube.Indices
	// Every repeated index is a strip boundary: the first vertex of the
	// repeat pair ends a face and the second starts the next one.
	for i := 1; i < len(idx); i++ {
		if idx[i] != idx[i-1] {
			continue
		}
		if int(idx[i])%4 != 0 && int(idx[i])%4 != 3 {
			t.Fatalf("repeat of vertex %d at %d is not on a face boundary", idx[i], i)
		}
	}

	var degenerate int
	for i := 2; i < len(idx); i++ {
		if (Tri{idx[i-2], idx[i-1], idx[i]}).Degenerate() {
			degenerate++
		}
	}
	// Four degenerate triangles per join, five joins.
	if degenerate != 20 {
		t.Fatalf("degenerate triangles = %d, want 20", degenerate)
	}
	if tris := DecodeStrip(idx); len(tris) != 12 {
		t.Fatalf("visible triangles = %d, want 12", len(tris))
	}
}

func TestCubeStripQuads(t *testing.T) {
	quads, err := StripQuads(Cube.Indices)
	if err != nil {
		t.Fatalf("StripQuads: %v", err)
	}
	if len(quads) != 6 {
		t.Fatalf("quads = %d, want 6", len(quads))
	}

	used := make(map[uint8]int)
	for face, q := range quads {
		for _, v := range q {
			used[v]++
			if int(v)/4 != face {
				t.Errorf("quad %d uses vertex %d from another face", face, v)
			}
		}
	}
	for v := uint8(0); v < 24; v++ {
		if used[v] != 1 {
			t.Errorf("vertex %d used by %d quads, want 1", v, used[v])
		}
	}
}

func TestStripQuadsRejectsBrokenStrip(t *testing.T) {
	// Three visible triangles cannot pair into quads.
	if _, err := StripQuads([]uint8{0, 1, 2, 3, 4}); err == nil {
		t.Fatal("StripQuads accepted an odd strip")
	}
}

func TestUpload(t *testing.T) {
	r := &gltest.Recorder{}
	b := Upload(r, Cube)

	if b.Position == 0 || b.Color == 0 || b.TexCoord == 0 || b.Index == 0 {
		t.Fatalf("missing buffer: %+v", b)
	}
	if b.IndexCount != 34 || b.VertexCount != 24 {
		t.Fatalf("counts = %d indices, %d vertices", b.IndexCount, b.VertexCount)
	}

	data := r.Find("BufferData")
	if len(data) != 4 {
		t.Fatalf("BufferData calls = %d, want 4", len(data))
	}
	last := data[3]
	if last.Args[0] != uint32(gl.ElementArrayBuffer) || last.Args[1] != 34 {
		t.Fatalf("index upload = %v", last)
	}

	tri := Upload(r, Triangle)
	if tri.TexCoord != 0 || tri.Index != 0 {
		t.Fatalf("triangle has unexpected streams: %+v", tri)
	}
}
