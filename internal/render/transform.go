package render

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix compatible with OpenGL uniforms.
type Mat4 [16]float32

// Vec4 is a homogeneous position.
type Vec4 [4]float32

func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func TranslateMat4(x, y, z float32) Mat4 {
	m := IdentityMat4()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// RotateXMat4 rotates counter-clockwise about +X by deg degrees.
func RotateXMat4(deg float32) Mat4 {
	s, c := math32.Sincos(radians(deg))
	m := IdentityMat4()
	m[5] = c
	m[6] = s
	m[9] = -s
	m[10] = c
	return m
}

// RotateYMat4 rotates counter-clockwise about +Y by deg degrees.
func RotateYMat4(deg float32) Mat4 {
	s, c := math32.Sincos(radians(deg))
	m := IdentityMat4()
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}

// RotateZMat4 rotates counter-clockwise about +Z by deg degrees.
func RotateZMat4(deg float32) Mat4 {
	s, c := math32.Sincos(radians(deg))
	m := IdentityMat4()
	m[0] = c
	m[1] = s
	m[4] = -s
	m[5] = c
	return m
}

// PerspectiveMat4 returns a right-handed projection looking down -Z with a
// vertical field of view of fovDeg degrees.
func PerspectiveMat4(fovDeg, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(radians(fovDeg)/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}

// MulMat4 returns a*b (column-major, vectors on the right).
func MulMat4(a, b Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] =
				a[0*4+row]*b[c*4+0] +
					a[1*4+row]*b[c*4+1] +
					a[2*4+row]*b[c*4+2] +
					a[3*4+row]*b[c*4+3]
		}
	}
	return r
}

// MulVec4 returns m*v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var r Vec4
	for row := 0; row < 4; row++ {
		r[row] = m[0*4+row]*v[0] + m[1*4+row]*v[1] + m[2*4+row]*v[2] + m[3*4+row]*v[3]
	}
	return r
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
