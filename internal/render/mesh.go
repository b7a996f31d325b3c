package render

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/glcube/internal/gl"
)

// Mesh is constant geometry compiled into the binary. Positions are xyz,
// Colors rgba and TexCoords st per vertex. When Indices is set the mesh is
// drawn with DrawElements, otherwise with DrawArrays.
type Mesh struct {
	Name      string
	Mode      uint32
	Positions []float32
	Colors    []float32
	TexCoords []float32
	Indices   []uint8
}

// VertexCount returns the number of vertices described by Positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Cube is a unit cube centred on the origin. Each face is a four vertex
// strip; faces are joined with degenerate triangles so the whole cube is one
// TriangleStrip draw.
//
//	2 ----- 3
//	| \     |
//	|   \   |6 - 7
//	|     \ || \ |
//	0 ----- 14 - 5
var Cube = &Mesh{
	Name: "cube",
	Mode: gl.TriangleStrip,
	Positions: []float32{
		// Front.
		-0.5, -0.5, 0.5,
		0.5, -0.5, 0.5,
		-0.5, 0.5, 0.5,
		0.5, 0.5, 0.5,
		// Right.
		0.5, -0.5, 0.5,
		0.5, -0.5, -0.5,
		0.5, 0.5, 0.5,
		0.5, 0.5, -0.5,
		// Back.
		0.5, -0.5, -0.5,
		-0.5, -0.5, -0.5,
		0.5, 0.5, -0.5,
		-0.5, 0.5, -0.5,
		// Left.
		-0.5, -0.5, -0.5,
		-0.5, -0.5, 0.5,
		-0.5, 0.5, -0.5,
		-0.5, 0.5, 0.5,
		// Top.
		-0.5, 0.5, 0.5,
		0.5, 0.5, 0.5,
		-0.5, 0.5, -0.5,
		0.5, 0.5, -0.5,
		// Bottom.
		-0.5, -0.5, -0.5,
		0.5, -0.5, -0.5,
		-0.5, -0.5, 0.5,
		0.5, -0.5, 0.5,
	},
	Colors: []float32{
		// Front.
		0, 0, 0, 1,
		1, 0, 0, 1,
		0, 1, 0, 1,
		1, 1, 0, 1,
		// Right.
		1, 0, 0, 1,
		0, 0, 1, 1,
		1, 1, 0, 1,
		0, 1, 1, 1,
		// Back.
		0, 0, 1, 1,
		1, 0, 1, 1,
		0, 1, 1, 1,
		1, 1, 1, 1,
		// Left.
		1, 0, 1, 1,
		0, 0, 0, 1,
		1, 1, 1, 1,
		0, 1, 0, 1,
		// Top.
		0, 1, 0, 1,
		1, 1, 0, 1,
		1, 1, 1, 1,
		0, 1, 1, 1,
		// Bottom.
		1, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 0, 1,
		1, 0, 0, 1,
	},
	TexCoords: []float32{
		0, 0, 1, 0, 0, 1, 1, 1,
		0, 0, 1, 0, 0, 1, 1, 1,
		0, 0, 1, 0, 0, 1, 1, 1,
		0, 0, 1, 0, 0, 1, 1, 1,
		0, 0, 1, 0, 0, 1, 1, 1,
		0, 0, 1, 0, 0, 1, 1, 1,
	},
	Indices: []uint8{
		0, 1, 2, 3, 3, 4, 4, 5, 6, 7, 7, 8, 8, 9, 10, 11, 11, 12,
		12, 13, 14, 15, 15, 16, 16, 17, 18, 19, 19, 20, 20, 21, 22, 23,
	},
}

// Triangle is a single flat-shaded triangle.
var Triangle = &Mesh{
	Name: "triangle",
	Mode: gl.Triangles,
	Positions: []float32{
		0, 0.5, 0,
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
	},
	Colors: []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
	},
}

// Tri is one triangle of a decoded strip, in strip order.
type Tri [3]uint8

// Degenerate reports whether the triangle repeats a vertex and has no area.
func (t Tri) Degenerate() bool {
	return t[0] == t[1] || t[1] == t[2] || t[0] == t[2]
}

// DecodeStrip expands a triangle strip into its triangles, dropping the
// degenerate ones used to join separate strips.
func DecodeStrip(indices []uint8) []Tri {
	var out []Tri
	for i := 2; i < len(indices); i++ {
		t := Tri{indices[i-2], indices[i-1], indices[i]}
		if t.Degenerate() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// StripQuads pairs consecutive triangles of a decoded strip into quads. Each
// pair must share an edge. The returned quads list their four distinct
// vertices in first-seen order.
func StripQuads(indices []uint8) ([][4]uint8, error) {
	tris := DecodeStrip(indices)
	if len(tris)%2 != 0 {
		return nil, fmt.Errorf("odd number of triangles in strip: %d", len(tris))
	}

	var quads [][4]uint8
	for i := 0; i < len(tris); i += 2 {
		var q [4]uint8
		n := 0
		for _, t := range []Tri{tris[i], tris[i+1]} {
			for _, v := range t {
				seen := false
				for _, e := range q[:n] {
					if e == v {
						seen = true
						break
					}
				}
				if seen {
					continue
				}
				if n == 4 {
					return nil, fmt.Errorf("triangles %v and %v do not share an edge", tris[i], tris[i+1])
				}
				q[n] = v
				n++
			}
		}
		if n != 4 {
			return nil, fmt.Errorf("triangles %v and %v do not form a quad", tris[i], tris[i+1])
		}
		quads = append(quads, q)
	}
	return quads, nil
}

// Buffers are the GPU copies of a mesh. A zero name means the mesh has no
// such stream.
type Buffers struct {
	Position uint32
	Color    uint32
	TexCoord uint32
	Index    uint32

	IndexCount  int32
	VertexCount int32
}

// Upload copies mesh into static buffer objects.
func Upload(g gl.OpenGL, m *Mesh) *Buffers {
	b := &Buffers{
		VertexCount: int32(m.VertexCount()),
		IndexCount:  int32(len(m.Indices)),
	}
	b.Position = uploadFloats(g, m.Positions)
	b.Color = uploadFloats(g, m.Colors)
	b.TexCoord = uploadFloats(g, m.TexCoords)

	if len(m.Indices) > 0 {
		g.GenBuffers(1, &b.Index)
		g.BindBuffer(gl.ElementArrayBuffer, b.Index)
		g.BufferData(gl.ElementArrayBuffer, len(m.Indices), unsafe.Pointer(&m.Indices[0]), gl.StaticDraw)
		g.BindBuffer(gl.ElementArrayBuffer, 0)
	}
	gl.CheckError(g, "upload "+m.Name)
	return b
}

func uploadFloats(g gl.OpenGL, data []float32) uint32 {
	if len(data) == 0 {
		return 0
	}
	var buf uint32
	g.GenBuffers(1, &buf)
	g.BindBuffer(gl.ArrayBuffer, buf)
	g.BufferData(gl.ArrayBuffer, len(data)*4, unsafe.Pointer(&data[0]), gl.StaticDraw)
	g.BindBuffer(gl.ArrayBuffer, 0)
	return buf
}

// Delete releases the buffer objects.
func (b *Buffers) Delete(g gl.OpenGL) {
	for _, name := range []*uint32{&b.Position, &b.Color, &b.TexCoord, &b.Index} {
		if *name != 0 {
			g.DeleteBuffers(1, name)
			*name = 0
		}
	}
}
