// Wavefront OBJ format parser.
package formats

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidOBJ marks malformed OBJ input. Parse errors carry the line number.
var ErrInvalidOBJ = errors.New("invalid OBJ data")

// NoIndex marks a corner that does not reference an attribute.
const NoIndex int32 = -1

// Component strides of the flat OBJ arrays.
const (
	PositionStride = 3
	NormalStride   = 3
	TexCoordStride = 2
	ColorStride    = 4
)

// OBJCorner holds independent 0-based indices into each attribute array.
type OBJCorner struct {
	Position int32
	Normal   int32
	TexCoord int32
	Color    int32
}

// OBJFace is a polygon with at least three corners.
type OBJFace struct {
	Corners  []OBJCorner
	Object   string // from the last "o" line
	Group    string // from the last "g" line
	Material string // from the last "usemtl" line
	Smooth   bool
}

// OBJ is a parsed Wavefront OBJ mesh with flat float arrays.
type OBJ struct {
	Positions []float32 // x y z
	Normals   []float32 // x y z
	TexCoords []float32 // u v
	Colors    []float32 // r g b a, one per position when present

	Faces        []OBJFace
	MaterialLibs []string
	Warnings     []string
}

// PositionCount returns the number of positions.
func (o *OBJ) PositionCount() int { return len(o.Positions) / PositionStride }

// NormalCount returns the number of normals.
func (o *OBJ) NormalCount() int { return len(o.Normals) / NormalStride }

// TexCoordCount returns the number of texture coordinates.
func (o *OBJ) TexCoordCount() int { return len(o.TexCoords) / TexCoordStride }

// ColorCount returns the number of colors.
func (o *OBJ) ColorCount() int { return len(o.Colors) / ColorStride }

// CornerCount returns the total number of face corners.
func (o *OBJ) CornerCount() int {
	n := 0
	for i := range o.Faces {
		n += len(o.Faces[i].Corners)
	}
	return n
}

// Triangles returns the number of triangles after fan triangulation.
func (o *OBJ) Triangles() int {
	n := 0
	for i := range o.Faces {
		if c := len(o.Faces[i].Corners); c >= 3 {
			n += c - 2
		}
	}
	return n
}

// Position returns position i, or false when i is out of range.
func (o *OBJ) Position(i int32) (mgl32.Vec3, bool) {
	if i < 0 || int(i) >= o.PositionCount() {
		return mgl32.Vec3{}, false
	}
	p := o.Positions[int(i)*PositionStride:]
	return mgl32.Vec3{p[0], p[1], p[2]}, true
}

// Normal returns normal i, or false when i is out of range.
func (o *OBJ) Normal(i int32) (mgl32.Vec3, bool) {
	if i < 0 || int(i) >= o.NormalCount() {
		return mgl32.Vec3{}, false
	}
	n := o.Normals[int(i)*NormalStride:]
	return mgl32.Vec3{n[0], n[1], n[2]}, true
}

// TexCoord returns texture coordinate i, or false when i is out of range.
func (o *OBJ) TexCoord(i int32) (mgl32.Vec2, bool) {
	if i < 0 || int(i) >= o.TexCoordCount() {
		return mgl32.Vec2{}, false
	}
	t := o.TexCoords[int(i)*TexCoordStride:]
	return mgl32.Vec2{t[0], t[1]}, true
}

// Color returns color i, or false when i is out of range.
func (o *OBJ) Color(i int32) (mgl32.Vec4, bool) {
	if i < 0 || int(i) >= o.ColorCount() {
		return mgl32.Vec4{}, false
	}
	c := o.Colors[int(i)*ColorStride:]
	return mgl32.Vec4{c[0], c[1], c[2], c[3]}, true
}

// Triangulate returns a copy whose faces are fan-split into triangles
// (0, i, i+1), keeping the winding of each polygon. Attribute arrays are shared.
func (o *OBJ) Triangulate() *OBJ {
	out := *o
	out.Faces = make([]OBJFace, 0, o.Triangles())
	for _, f := range o.Faces {
		if len(f.Corners) == 3 {
			out.Faces = append(out.Faces, f)
			continue
		}
		for i := 1; i+1 < len(f.Corners); i++ {
			tri := f
			tri.Corners = []OBJCorner{f.Corners[0], f.Corners[i], f.Corners[i+1]}
			out.Faces = append(out.Faces, tri)
		}
	}
	return &out
}

// objParser holds state while reading OBJ lines.
type objParser struct {
	obj      *OBJ
	line     int
	object   string
	group    string
	material string
	smooth   bool

	colors   []float32
	hasColor bool
}

// ParseOBJ parses Wavefront OBJ data.
//
// Supported statements: v (with optional rgb or rgba color), vt, vn, f,
// o, g, usemtl, mtllib and s. Other statements are recorded as warnings.
func ParseOBJ(data []byte) (*OBJ, error) {
	p := &objParser{obj: &OBJ{}}

	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		p.line++

		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(string(line))
		if len(fields) == 0 {
			continue
		}
		if err := p.parseLine(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}

	if p.hasColor {
		p.obj.Colors = p.colors
		for i := range p.obj.Faces {
			for j := range p.obj.Faces[i].Corners {
				c := &p.obj.Faces[i].Corners[j]
				c.Color = c.Position
			}
		}
	}

	return p.obj, nil
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading OBJ file %s", path)
	}
	return ParseOBJ(data)
}

func (p *objParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidOBJ, "line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) warnf(format string, args ...interface{}) {
	p.obj.Warnings = append(p.obj.Warnings, fmt.Sprintf("line %d: ", p.line)+fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(keyword string, args []string) error {
	switch keyword {
	case "v":
		return p.parseVertex(args)
	case "vn":
		if len(args) < 3 {
			return p.errorf("normal needs 3 components, got %d", len(args))
		}
		return p.appendFloats(&p.obj.Normals, args[:3], "normal")
	case "vt":
		return p.parseTexCoord(args)
	case "f":
		return p.parseFace(args)
	case "o":
		p.object = strings.Join(args, " ")
	case "g":
		p.group = strings.Join(args, " ")
	case "usemtl":
		p.material = strings.Join(args, " ")
	case "mtllib":
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, args...)
	case "s":
		p.smooth = len(args) > 0 && args[0] != "off" && args[0] != "0"
	default:
		p.warnf("unsupported statement %q ignored", keyword)
	}
	return nil
}

func (p *objParser) parseVertex(args []string) error {
	switch len(args) {
	case 3, 4: // x y z [w]
	case 6, 7: // x y z r g b [a]
	default:
		return p.errorf("vertex needs 3, 4, 6 or 7 components, got %d", len(args))
	}
	if err := p.appendFloats(&p.obj.Positions, args[:3], "vertex"); err != nil {
		return err
	}

	color := [4]float32{1, 1, 1, 1}
	if len(args) >= 6 {
		for i, s := range args[3:] {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return p.errorf("malformed vertex color %q", s)
			}
			color[i] = float32(f)
		}
		p.hasColor = true
	}
	p.colors = append(p.colors, color[:]...)
	return nil
}

func (p *objParser) parseTexCoord(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return p.errorf("texture coordinate needs 1 to 3 components, got %d", len(args))
	}
	// A missing v defaults to 0, w is dropped.
	uv := []string{args[0], "0"}
	if len(args) >= 2 {
		uv[1] = args[1]
	}
	return p.appendFloats(&p.obj.TexCoords, uv, "texture coordinate")
}

func (p *objParser) appendFloats(dst *[]float32, args []string, what string) error {
	for _, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return p.errorf("malformed %s component %q", what, s)
		}
		*dst = append(*dst, float32(f))
	}
	return nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 corners, got %d", len(args))
	}

	face := OBJFace{
		Corners:  make([]OBJCorner, len(args)),
		Object:   p.object,
		Group:    p.group,
		Material: p.material,
		Smooth:   p.smooth,
	}

	for i, tok := range args {
		parts := strings.Split(tok, "/")
		if len(parts) > 3 {
			return p.errorf("malformed face corner %q", tok)
		}

		c := OBJCorner{Position: NoIndex, Normal: NoIndex, TexCoord: NoIndex, Color: NoIndex}

		var err error
		if c.Position, err = p.resolveIndex(parts[0], p.obj.PositionCount()); err != nil {
			return err
		}
		if c.Position == NoIndex {
			return p.errorf("face corner %q has no position", tok)
		}
		if len(parts) > 1 {
			if c.TexCoord, err = p.resolveIndex(parts[1], p.obj.TexCoordCount()); err != nil {
				return err
			}
		}
		if len(parts) > 2 {
			if c.Normal, err = p.resolveIndex(parts[2], p.obj.NormalCount()); err != nil {
				return err
			}
		}
		face.Corners[i] = c
	}

	p.obj.Faces = append(p.obj.Faces, face)
	return nil
}

// resolveIndex converts a 1-based or negative relative OBJ index to 0-based.
// An empty token yields NoIndex.
func (p *objParser) resolveIndex(tok string, count int) (int32, error) {
	if tok == "" {
		return NoIndex, nil
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, p.errorf("malformed index %q", tok)
	}
	switch {
	case n > 0:
		return int32(n - 1), nil
	case n < 0:
		idx := int64(count) + n
		if idx < 0 {
			return 0, p.errorf("relative index %d reaches before the first element", n)
		}
		return int32(idx), nil
	default:
		return 0, p.errorf("index 0 is not valid")
	}
}
