package types

import "golang.org/x/image/math/f32"

const floatCmpEpsilon = 1e-6

// Mat4 is a row-major 4x4 matrix; element (row, col) lives at m[row*4+col].
// Affine transforms keep their translation in the last column.
type Mat4 f32.Mat4

// Create identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Create a translation matrix.
func Translate4(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, t[0],
		0, 1, 0, t[1],
		0, 0, 1, t[2],
		0, 0, 0, 1,
	}
}

// Create a scale matrix.
func Scale4(s Vec3) Mat4 {
	return Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	}
}

// Compose a translation * rotation * scale matrix. The rotation is given
// as Euler angles in degrees.
func TRS(position, rotation, scale Vec3) Mat4 {
	return Translate4(position).Mul(QuatFromEuler(rotation).Mat4()).Mul(Scale4(scale))
}

// Multiply two matrices (m * m2).
func (m Mat4) Mul(m2 Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m[r*4+0]*m2[0*4+c] +
				m[r*4+1]*m2[1*4+c] +
				m[r*4+2]*m2[2*4+c] +
				m[r*4+3]*m2[3*4+c]
		}
	}
	return out
}

// Transform a point (w = 1) by this affine matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// Get the translation part of an affine matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// Invert an affine matrix. The second return value is false if the upper
// 3x3 part is singular, in which case the identity matrix is returned.
func (m Mat4) InverseAffine() (Mat4, bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if det > -floatCmpEpsilon && det < floatCmpEpsilon {
		return Ident4(), false
	}
	inv := 1.0 / det

	var out Mat4
	out[0] = c00 * inv
	out[1] = -(b*i - c*h) * inv
	out[2] = (b*f - c*e) * inv
	out[4] = c01 * inv
	out[5] = (a*i - c*g) * inv
	out[6] = -(a*f - c*d) * inv
	out[8] = c02 * inv
	out[9] = -(a*h - b*g) * inv
	out[10] = (a*e - b*d) * inv

	t := m.Translation()
	out[3] = -(out[0]*t[0] + out[1]*t[1] + out[2]*t[2])
	out[7] = -(out[4]*t[0] + out[5]*t[1] + out[6]*t[2])
	out[11] = -(out[8]*t[0] + out[9]*t[1] + out[10]*t[2])
	out[15] = 1
	return out, true
}

// Returns true if all elements of m and m2 differ by less than epsilon.
func (m Mat4) ApproxEqual(m2 Mat4, epsilon float32) bool {
	for i := range m {
		if d := m[i] - m2[i]; d > epsilon || d < -epsilon {
			return false
		}
	}
	return true
}
