package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestNewMatrix_Identity(t *testing.T) {
	m := NewMatrix()
	if !m.M.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("NewMatrix() = %v, want identity", m.M)
	}
}

func TestSetRotate_KeepsTranslation(t *testing.T) {
	m := NewMatrix()
	m.SetPosition(mgl32.Vec3{1, 2, 3})
	m.SetRotateYAxis(0.7)

	if p := m.Position(); p != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want (1,2,3)", p)
	}
}

func TestSetRotateAxis_Elements(t *testing.T) {
	const a = float32(0.5)
	s, c := float32(math.Sin(0.5)), float32(math.Cos(0.5))

	tests := []struct {
		name string
		set  func(*Matrix, float32)
		want [9]float32 // upper 3x3, column-major
	}{
		{"x", (*Matrix).SetRotateXAxis, [9]float32{1, 0, 0, 0, c, -s, 0, s, c}},
		{"y", (*Matrix).SetRotateYAxis, [9]float32{c, 0, s, 0, 1, 0, -s, 0, c}},
		{"z", (*Matrix).SetRotateZAxis, [9]float32{c, -s, 0, s, c, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatrix()
			tt.set(&m, a)
			got := m.M.Mat3()
			if !got.ApproxEqualThreshold(mgl32.Mat3(tt.want), eps) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulRotate_Accumulates(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Matrix, float32)
		mul  func(*Matrix, float32)
	}{
		{"x", (*Matrix).SetRotateXAxis, (*Matrix).MulRotateXAxis},
		{"y", (*Matrix).SetRotateYAxis, (*Matrix).MulRotateYAxis},
		{"z", (*Matrix).SetRotateZAxis, (*Matrix).MulRotateZAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewMatrix()
			tt.set(&a, 0.3)
			tt.mul(&a, 0.4)

			b := NewMatrix()
			tt.set(&b, 0.7)

			if !a.M.ApproxEqualThreshold(b.M, eps) {
				t.Errorf("set(0.3)+mul(0.4) = %v, want set(0.7) = %v", a.M, b.M)
			}
		})
	}
}

func TestMultiplyBy(t *testing.T) {
	m := NewMatrix()
	m.SetPosition(mgl32.Vec3{1, 0, 0})
	m.MultiplyBy(mgl32.Translate3D(0, 2, 0))

	if p := m.Position(); !p.ApproxEqual(mgl32.Vec3{1, 2, 0}) {
		t.Errorf("position = %v, want (1,2,0)", p)
	}
	if !Multiply(mgl32.Ident4(), m.M).ApproxEqual(m.M) {
		t.Error("I * M should equal M")
	}
}

func TestTranslateBy_MatchesMultiply(t *testing.T) {
	a := NewMatrix()
	a.SetRotateYAxis(1.1)
	a.SetPosition(mgl32.Vec3{0, 0, -3})
	b := a

	a.TranslateBy(1, 2, 3)
	b.MultiplyBy(mgl32.Translate3D(1, 2, 3))

	if !a.M.ApproxEqualThreshold(b.M, eps) {
		t.Errorf("TranslateBy = %v, MultiplyBy(T) = %v", a.M, b.M)
	}
}

func TestFastSin(t *testing.T) {
	for x := float32(-10); x <= 10; x += 0.05 {
		want := float32(math.Sin(float64(x)))
		if got := FastSin(x); math.Abs(float64(got-want)) > 0.002 {
			t.Fatalf("FastSin(%f) = %f, want %f", x, got, want)
		}
	}
}
