package vertex

import (
	"github.com/go-gl/mathgl/mgl32"
)

// White is the default vertex color when a source carries no colors.
var White = mgl32.Vec4{1, 1, 1, 1}

// Record is a vertex carrying a superset of fields. Only the fields named
// in Attrs take part in equality and hashing.
type Record struct {
	Attrs    Attributes
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	Color    mgl32.Vec4
}

// New returns a zeroed record with the given active attribute set.
func New(attrs Attributes) Record {
	return Record{Attrs: attrs}
}

// Equal reports whether every field active in r compares exactly equal.
// Records with different attribute sets are never equal.
func (r Record) Equal(other Record) bool {
	return ActiveFields{}.Equal(r, other)
}

// Hash returns the active-field hash of r.
func (r Record) Hash() uint64 {
	return ActiveFields{}.Hash(r)
}
