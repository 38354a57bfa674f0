package model

import (
	"github.com/Faultbox/gxengine/pkg/formats"
)

// Unit cube corners shared by the shaded and textured cubes.
var cubeCorners = [8][3]float32{
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{-0.5, 0.5, -0.5},
	{0.5, 0.5, -0.5},
	{0.5, -0.5, -0.5},
	{-0.5, -0.5, -0.5},
}

var cubeNormals = [6][3]float32{
	{0, 0, 1},  // front
	{0, 1, 0},  // top
	{1, 0, 0},  // right
	{-1, 0, 0}, // left
	{0, -1, 0}, // bottom
	{0, 0, -1}, // back
}

// Texture corners: up-left, up-right, down-left, down-right.
var cubeUVs = [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// Each quad a,b,c,d is drawn as (a,b,c) (c,d,a) with uv
// up-right, up-left, down-left, down-left, down-right, up-right.
var cubeQuads = [6][4]int32{
	{0, 1, 2, 3},
	{5, 4, 1, 0},
	{5, 0, 3, 6},
	{1, 4, 7, 2},
	{3, 2, 7, 6},
	{4, 5, 6, 7},
}

var quadUVs = [6]int32{1, 0, 2, 2, 3, 1}

// ColorTestCube is an 8-vertex position-only cube with OpenGL winding.
func ColorTestCube() *formats.OBJ {
	return indexedSource(
		[][3]float32{
			{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5},
			{0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5},
		},
		[]int32{
			4, 5, 6, 6, 7, 4,
			1, 6, 5, 5, 2, 1,
			3, 2, 5, 5, 4, 3,
			7, 6, 1, 1, 0, 7,
			7, 0, 3, 3, 4, 7,
			0, 1, 2, 2, 3, 0,
		},
	)
}

// ColorTestCubeVulkan is ColorTestCube modeled left-handed with clockwise front faces.
func ColorTestCubeVulkan() *formats.OBJ {
	return indexedSource(
		[][3]float32{
			{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			{0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
		},
		[]int32{
			4, 5, 6, 6, 7, 4,
			3, 2, 7, 7, 6, 3,
			1, 4, 7, 7, 2, 1,
			5, 0, 3, 3, 6, 5,
			5, 4, 1, 1, 0, 5,
			0, 1, 2, 2, 3, 0,
		},
	)
}

// ShadedCube has 36 corners with per-face normals, 24 of them distinct.
func ShadedCube() *formats.OBJ {
	return faceSource(false)
}

// TexturedCube has 36 corners with per-face normals and texture coordinates.
func TexturedCube() *formats.OBJ {
	return faceSource(true)
}

func indexedSource(positions [][3]float32, indices []int32) *formats.OBJ {
	src := &formats.OBJ{}
	for _, p := range positions {
		src.Positions = append(src.Positions, p[:]...)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		face := formats.OBJFace{Corners: make([]formats.OBJCorner, 3)}
		for j := range face.Corners {
			face.Corners[j] = formats.OBJCorner{
				Position: indices[i+j],
				Normal:   formats.NoIndex,
				TexCoord: formats.NoIndex,
				Color:    formats.NoIndex,
			}
		}
		src.Faces = append(src.Faces, face)
	}
	return src
}

func faceSource(textured bool) *formats.OBJ {
	src := &formats.OBJ{}
	for _, p := range cubeCorners {
		src.Positions = append(src.Positions, p[:]...)
	}
	for _, n := range cubeNormals {
		src.Normals = append(src.Normals, n[:]...)
	}
	if textured {
		for _, uv := range cubeUVs {
			src.TexCoords = append(src.TexCoords, uv[:]...)
		}
	}

	for n, q := range cubeQuads {
		order := [6]int32{q[0], q[1], q[2], q[2], q[3], q[0]}
		for tri := 0; tri < 2; tri++ {
			face := formats.OBJFace{Corners: make([]formats.OBJCorner, 3)}
			for j := range face.Corners {
				k := tri*3 + j
				c := formats.OBJCorner{
					Position: order[k],
					Normal:   int32(n),
					TexCoord: formats.NoIndex,
					Color:    formats.NoIndex,
				}
				if textured {
					c.TexCoord = quadUVs[k]
				}
				face.Corners[j] = c
			}
			src.Faces = append(src.Faces, face)
		}
	}
	return src
}

// TestCube is a built-in source mesh with its draw settings.
type TestCube struct {
	Name      string
	Source    func() *formats.OBJ
	Textures  []string
	Customize Customize
}

// Cubes lists the built-in test cubes.
func Cubes() []TestCube {
	return []TestCube{
		{Name: "ColorTestCube", Source: ColorTestCube},
		{Name: "ColorTestCubeVulkan", Source: ColorTestCubeVulkan, Customize: ModeledForVulkan | FrontClockwise},
		{Name: "CubeSolidShaded", Source: ShadedCube},
		{Name: "CubeTextured", Source: TexturedCube, Textures: []string{"C4Crate.png"}},
	}
}

// Drawable deduplicates the cube through l and attaches matching shaders.
func (c TestCube) Drawable(l *Loader) (*Drawable, error) {
	mesh, err := l.Load(c.Source())
	if err != nil {
		return nil, err
	}
	shaders, _ := ShadersFor(mesh.Attrs)
	return &Drawable{
		Name:      c.Name,
		Mesh:      mesh,
		Shaders:   shaders,
		Textures:  c.Textures,
		Customize: c.Customize,
	}, nil
}
