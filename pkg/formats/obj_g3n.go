package formats

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/g3n/engine/loader/obj"
)

// DecodeOBJWithG3N reads an OBJ file with the g3n decoder and converts the
// result to an OBJ. A sibling .mtl file is passed along when it exists.
// g3n does not read vertex colors, so the result never has a color array.
func DecodeOBJWithG3N(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening OBJ file %s", path)
	}
	defer f.Close()

	var mtl io.Reader = strings.NewReader("")
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if mf, err := os.Open(mtlPath); err == nil {
		defer mf.Close()
		mtl = mf
	}

	dec, err := obj.DecodeReader(f, mtl)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decoding %s", path), ErrInvalidOBJ)
	}
	return fromG3N(dec), nil
}

// g3nDefaultMaterial is the name g3n gives faces with no usemtl.
const g3nDefaultMaterial = "internal default"

func fromG3N(dec *obj.Decoder) *OBJ {
	out := &OBJ{
		Positions: append([]float32(nil), dec.Vertices...),
		Normals:   append([]float32(nil), dec.Normals...),
		TexCoords: append([]float32(nil), dec.Uvs...),
		Warnings:  append([]string(nil), dec.Warnings...),
	}

	for _, o := range dec.Objects {
		for _, f := range o.Faces {
			face := OBJFace{
				Corners:  make([]OBJCorner, len(f.Vertices)),
				Object:   o.Name,
				Material: f.Material,
				Smooth:   f.Smooth,
			}
			if face.Material == g3nDefaultMaterial {
				face.Material = ""
			}
			for i := range f.Vertices {
				face.Corners[i] = OBJCorner{
					Position: g3nIndex(f.Vertices, i),
					Normal:   g3nIndex(f.Normals, i),
					TexCoord: g3nIndex(f.Uvs, i),
					Color:    NoIndex,
				}
			}
			out.Faces = append(out.Faces, face)
		}
	}
	return out
}

// g3nIndex maps g3n's missing-index marker (MaxUint32) to NoIndex.
func g3nIndex(indices []int, i int) int32 {
	if i >= len(indices) {
		return NoIndex
	}
	idx := indices[i]
	if idx < 0 || idx > math.MaxInt32 {
		return NoIndex
	}
	return int32(idx)
}
