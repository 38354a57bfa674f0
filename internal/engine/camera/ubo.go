package camera

import (
	"encoding/binary"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// UBOSize is the byte size of a UBO in a uniform buffer.
const UBOSize = 3 * 16 * 4

// UBO is the model-view-projection uniform block.
type UBO struct {
	Model mgl32.Mat4
	View  mgl32.Mat4
	Proj  mgl32.Mat4
}

// NewUBO returns a UBO with identity matrices.
func NewUBO() UBO {
	return UBO{Model: mgl32.Ident4(), View: mgl32.Ident4(), Proj: mgl32.Ident4()}
}

// Bytes returns the block as little-endian float32s: model, view, proj.
func (u UBO) Bytes() []byte {
	out := make([]byte, 0, UBOSize)
	for _, m := range [3]mgl32.Mat4{u.Model, u.View, u.Proj} {
		for _, f := range m {
			out = binary.LittleEndian.AppendUint32(out, gomath.Float32bits(f))
		}
	}
	return out
}
