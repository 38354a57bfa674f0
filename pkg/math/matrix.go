// Package math provides a model matrix with fast single-axis rotations on
// top of mgl32.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a column-major model transform.
// Elements 12, 13 and 14 hold the translation.
type Matrix struct {
	M mgl32.Mat4
}

// NewMatrix returns an identity matrix.
func NewMatrix() Matrix {
	return Matrix{M: mgl32.Ident4()}
}

// SetIdentity resets m to identity.
func (m *Matrix) SetIdentity() {
	m.M = mgl32.Ident4()
}

// SetRotateXAxis replaces the rotation part with a rotation about X.
// Translation is kept and any rotation about other axes is lost.
func (m *Matrix) SetRotateXAxis(rads float32) {
	m.setRotation(mgl32.Rotate3DX(-rads))
}

// SetRotateYAxis replaces the rotation part with a rotation about Y.
func (m *Matrix) SetRotateYAxis(rads float32) {
	m.setRotation(mgl32.Rotate3DY(-rads))
}

// SetRotateZAxis replaces the rotation part with a rotation about Z.
func (m *Matrix) SetRotateZAxis(rads float32) {
	m.setRotation(mgl32.Rotate3DZ(-rads))
}

// MulRotateXAxis multiplies a rotation about X into the existing rotation.
func (m *Matrix) MulRotateXAxis(rads float32) {
	m.mulRotation(mgl32.Rotate3DX(-rads))
}

// MulRotateYAxis multiplies a rotation about Y into the existing rotation.
func (m *Matrix) MulRotateYAxis(rads float32) {
	m.mulRotation(mgl32.Rotate3DY(-rads))
}

// MulRotateZAxis multiplies a rotation about Z into the existing rotation.
func (m *Matrix) MulRotateZAxis(rads float32) {
	m.mulRotation(mgl32.Rotate3DZ(-rads))
}

func (m *Matrix) setRotation(r mgl32.Mat3) {
	for c := 0; c < 3; c++ {
		for row := 0; row < 3; row++ {
			m.M[c*4+row] = r[c*3+row]
		}
	}
}

func (m *Matrix) mulRotation(r mgl32.Mat3) {
	m.setRotation(r.Mul3(m.M.Mat3()))
}

// MultiplyBy sets m to m * m2.
func (m *Matrix) MultiplyBy(m2 mgl32.Mat4) {
	m.M = m.M.Mul4(m2)
}

// TranslateBy sets m to m * T(x, y, z), moving along m's own axes.
func (m *Matrix) TranslateBy(x, y, z float32) {
	for row := 0; row < 4; row++ {
		m.M[12+row] += m.M[row]*x + m.M[4+row]*y + m.M[8+row]*z
	}
}

// Position returns the translation.
func (m *Matrix) Position() mgl32.Vec3 {
	return mgl32.Vec3{m.M[12], m.M[13], m.M[14]}
}

// SetPosition overwrites the translation.
func (m *Matrix) SetPosition(p mgl32.Vec3) {
	m.M[12], m.M[13], m.M[14] = p[0], p[1], p[2]
}

// Multiply returns a * b.
func Multiply(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// FastSin approximates sin(x) with a maximum error of about 0.001.
func FastSin(x float32) float32 {
	const p = 0.225
	x *= 1 / math.Pi
	k := int(math.Round(float64(x)))
	x -= float32(k)
	y := (4 - 4*abs(x)) * x
	y = p*(y*abs(y)-y) + y
	if k&1 != 0 {
		return -y
	}
	return y
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
