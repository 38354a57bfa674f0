package model

import (
	"strings"

	"github.com/Faultbox/gxengine/pkg/vertex"
)

// Customize holds per-drawable rendering flags.
type Customize uint8

const (
	ShowBackfaces Customize = 1 << iota
	ModeledForVulkan
	FrontClockwise
)

// Has reports whether every flag in f is set.
func (c Customize) Has(f Customize) bool {
	return c&f == f
}

// String returns the set flags joined by "|".
func (c Customize) String() string {
	var names []string
	if c.Has(ShowBackfaces) {
		names = append(names, "SHOW_BACKFACES")
	}
	if c.Has(ModeledForVulkan) {
		names = append(names, "MODELED_FOR_VULKAN")
	}
	if c.Has(FrontClockwise) {
		names = append(names, "FRONT_CLOCKWISE")
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// ShaderStage is the pipeline stage a shader module runs in.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

// Shader names a compiled SPIR-V module.
type Shader struct {
	Stage ShaderStage
	File  string
}

// Drawable is a loaded mesh with what the renderer needs to draw it.
type Drawable struct {
	Name      string
	Mesh      *Mesh
	Shaders   []Shader
	Textures  []string
	Customize Customize
}

// Shader sets keyed by the vertex format they consume.
var (
	positionShaders = []Shader{
		{VertexStage, "mvp+xyz=xyz-vert.spv"},
		{FragmentStage, "xyz=color-frag.spv"},
	}
	normalShaders = []Shader{
		{VertexStage, "mvp+normal=diffuse-vert.spv"},
		{FragmentStage, "intensity=color-frag.spv"},
	}
	texturedShaders = []Shader{
		{VertexStage, "uv,mvp+norm=diffuv-vert.spv"},
		{FragmentStage, "textuv+intens-frag.spv"},
	}
)

// ShadersFor picks a shader pair whose vertex inputs match attrs.
// Color is ignored. It returns false for sets no built-in shader consumes.
func ShadersFor(attrs vertex.Attributes) ([]Shader, bool) {
	switch attrs &^ vertex.Color {
	case vertex.Position:
		return positionShaders, true
	case vertex.Position | vertex.Normal:
		return normalShaders, true
	case vertex.Position | vertex.Normal | vertex.TexCoord:
		return texturedShaders, true
	default:
		return nil, false
	}
}

// NewDrawable loads a model definition through l and selects shaders for
// the attributes it turned out to have.
func NewDrawable(l *Loader, def Def) (*Drawable, error) {
	mesh := &Mesh{}
	attrs, err := l.LoadSpec(def.Spec, mesh)
	if err != nil {
		return nil, err
	}
	shaders, _ := ShadersFor(attrs)
	return &Drawable{
		Name:      def.Spec.Filename,
		Mesh:      mesh,
		Shaders:   shaders,
		Textures:  def.Textures,
		Customize: def.Customize,
	}, nil
}
