package render

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func near(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestMulMat4Identity(t *testing.T) {
	m := TranslateMat4(1, 2, 3)
	if got := MulMat4(IdentityMat4(), m); got != m {
		t.Fatalf("I*m = %v, want %v", got, m)
	}
	if got := MulMat4(m, IdentityMat4()); got != m {
		t.Fatalf("m*I = %v, want %v", got, m)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec4
		want Vec4
	}{
		{"x 90 takes y to z", RotateXMat4(90), Vec4{0, 1, 0, 1}, Vec4{0, 0, 1, 1}},
		{"y 90 takes z to x", RotateYMat4(90), Vec4{0, 0, 1, 1}, Vec4{1, 0, 0, 1}},
		{"z 90 takes x to y", RotateZMat4(90), Vec4{1, 0, 0, 1}, Vec4{0, 1, 0, 1}},
		{"z 180", RotateZMat4(180), Vec4{1, 0, 0, 1}, Vec4{-1, 0, 0, 1}},
		{"x 0", RotateXMat4(0), Vec4{0.5, -0.5, 0.5, 1}, Vec4{0.5, -0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.MulVec4(tt.in)
			for i := range got {
				if !near(float64(got[i]), float64(tt.want[i])) {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTranslateThenRotateOrder(t *testing.T) {
	// Rotation applies first, then translation.
	m := MulMat4(TranslateMat4(0, 0, -2), RotateYMat4(90))
	got := m.MulVec4(Vec4{0, 0, 1, 1})
	want := Vec4{1, 0, -2, 1}
	for i := range got {
		if !near(float64(got[i]), float64(want[i])) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPerspectiveMat4(t *testing.T) {
	p := PerspectiveMat4(90, 2, 1, 3)
	// f = 1/tan(45deg) = 1
	if !near(float64(p[0]), 0.5) || !near(float64(p[5]), 1) {
		t.Fatalf("scale terms = %v, %v", p[0], p[5])
	}
	if p[11] != -1 || p[15] != 0 {
		t.Fatalf("w row = %v, %v", p[11], p[15])
	}

	// Points on the near and far plane map to NDC depth -1 and 1.
	for _, tc := range []struct {
		z    float32
		want float64
	}{{-1, -1}, {-3, 1}} {
		c := p.MulVec4(Vec4{0, 0, tc.z, 1})
		if ndc := float64(c[2] / c[3]); !near(ndc, tc.want) {
			t.Errorf("z=%v: ndc depth %v, want %v", tc.z, ndc, tc.want)
		}
	}
}
