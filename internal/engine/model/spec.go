package model

import "fmt"

// SpecType selects how a model definition is produced.
type SpecType int

const (
	Unspecified SpecType = iota
	Font3D
	OBJFileTiny
	OBJFileFast

	// OBJFile is the default OBJ reader.
	OBJFile = OBJFileTiny
)

// String returns a human-readable spec type name.
func (t SpecType) String() string {
	switch t {
	case Unspecified:
		return "Unspecified"
	case Font3D:
		return "Font3D"
	case OBJFileTiny:
		return "OBJFileTiny"
	case OBJFileFast:
		return "OBJFileFast"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Spec names a model file and how to read it.
type Spec struct {
	Filename string
	Type     SpecType
}

// IsRequested reports whether the spec asks for a model at all.
func (s Spec) IsRequested() bool {
	return s.Type != Unspecified
}

// Def is a model file plus the textures and draw flags that go with it.
type Def struct {
	Spec      Spec
	Textures  []string
	Customize Customize
}

// VikingRoom is the default textured test model.
func VikingRoom() Def {
	return Def{
		Spec:      Spec{Filename: "viking_room.obj", Type: OBJFile},
		Textures:  []string{"viking_room.png"},
		Customize: ShowBackfaces,
	}
}
