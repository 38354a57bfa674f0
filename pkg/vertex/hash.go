package vertex

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// Hasher is the hashing strategy handed to a Table. Hash must agree with
// Equal: records that are Equal hash identically.
type Hasher interface {
	Hash(r Record) uint64
	Equal(a, b Record) bool
}

// ActiveFields compares and hashes only the fields named in a record's Attrs.
type ActiveFields struct{}

// Hash combines per-field hashes of the active fields.
func (ActiveFields) Hash(r Record) uint64 {
	return combine(r, r.Attrs)
}

// Equal reports whether a and b share an attribute set and agree on every active field.
func (ActiveFields) Equal(a, b Record) bool {
	if a.Attrs != b.Attrs {
		return false
	}
	return fieldsEqual(a, b, a.Attrs)
}

// AllFields compares and hashes all four fields, ignoring Attrs.
// Inactive fields are expected to hold their zero or default values.
type AllFields struct{}

// Hash combines per-field hashes of all fields.
func (AllFields) Hash(r Record) uint64 {
	return combine(r, All)
}

// Equal reports whether every field of a and b matches.
func (AllFields) Equal(a, b Record) bool {
	return fieldsEqual(a, b, All)
}

func fieldsEqual(a, b Record, attrs Attributes) bool {
	if attrs.Has(Position) && a.Position != b.Position {
		return false
	}
	if attrs.Has(Normal) && a.Normal != b.Normal {
		return false
	}
	if attrs.Has(TexCoord) && a.TexCoord != b.TexCoord {
		return false
	}
	if attrs.Has(Color) && a.Color != b.Color {
		return false
	}
	return true
}

// combine XORs each field hash after rotating it by the field's slot, so
// identical values in different fields do not cancel out.
func combine(r Record, attrs Attributes) uint64 {
	var h uint64
	if attrs.Has(Position) {
		h ^= hashFloats(r.Position[:])
	}
	if attrs.Has(Normal) {
		h ^= bits.RotateLeft64(hashFloats(r.Normal[:]), 1)
	}
	if attrs.Has(TexCoord) {
		h ^= bits.RotateLeft64(hashFloats(r.TexCoord[:]), 2)
	}
	if attrs.Has(Color) {
		h ^= bits.RotateLeft64(hashFloats(r.Color[:]), 3)
	}
	return h
}

func hashFloats(fs []float32) uint64 {
	var buf [ColorComponents * floatSize]byte
	n := 0
	for _, f := range fs {
		// -0 == +0, so both must hash the same.
		if f == 0 {
			f = 0
		}
		binary.LittleEndian.PutUint32(buf[n:], math.Float32bits(f))
		n += floatSize
	}
	return xxhash.Sum64(buf[:n])
}
