// Package vertex provides a vertex record whose shape is chosen at load time,
// plus the value-keyed deduplication table used to build indexed meshes.
package vertex

import "strings"

// Attributes is a bitmask of the fields a vertex carries.
type Attributes uint8

// Attribute flags.
const (
	Position Attributes = 1 << iota
	Normal
	TexCoord
	Color
)

// None is the empty attribute set, returned by a failed load.
const None Attributes = 0

// All has every attribute flag set.
const All = Position | Normal | TexCoord | Color

// Component counts (float32) per attribute.
const (
	PositionComponents = 3
	NormalComponents   = 3
	TexCoordComponents = 2
	ColorComponents    = 4
)

const floatSize = 4

// order is the fixed interleaving order used for packing and layouts.
var order = [...]Attributes{Position, Normal, TexCoord, Color}

// Has reports whether every flag in a is set.
func (s Attributes) Has(a Attributes) bool {
	return s&a == a
}

// Count returns the number of active attributes.
func (s Attributes) Count() int {
	n := 0
	for _, a := range order {
		if s.Has(a) {
			n++
		}
	}
	return n
}

// Components returns the float32 component count of a single attribute flag.
func (s Attributes) Components() int {
	switch s {
	case Position:
		return PositionComponents
	case Normal:
		return NormalComponents
	case TexCoord:
		return TexCoordComponents
	case Color:
		return ColorComponents
	default:
		return 0
	}
}

// Stride returns the size in bytes of one packed vertex.
func (s Attributes) Stride() int {
	stride := 0
	for _, a := range order {
		if s.Has(a) {
			stride += a.Components() * floatSize
		}
	}
	return stride
}

// Each calls fn for every active attribute in packing order.
func (s Attributes) Each(fn func(a Attributes)) {
	for _, a := range order {
		if s.Has(a) {
			fn(a)
		}
	}
}

// String returns names joined by "|", e.g. "POSITION|NORMAL".
func (s Attributes) String() string {
	if s == None {
		return "NONE"
	}
	var names []string
	s.Each(func(a Attributes) {
		switch a {
		case Position:
			names = append(names, "POSITION")
		case Normal:
			names = append(names, "NORMAL")
		case TexCoord:
			names = append(names, "TEXCOORD")
		case Color:
			names = append(names, "COLOR")
		}
	})
	return strings.Join(names, "|")
}
