// Package model loads mesh sources into compact indexed vertex and index
// buffers whose vertex layout is chosen from the attributes present.
package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gxengine/pkg/vertex"
)

// IndexType is the width of the indices in an index buffer.
type IndexType uint8

const (
	SmallIndex IndexType = iota // 16-bit
	LargeIndex                  // 32-bit
)

// Size returns the index width in bytes.
func (t IndexType) Size() int {
	if t == SmallIndex {
		return 2
	}
	return 4
}

// String returns a human-readable index type name.
func (t IndexType) String() string {
	switch t {
	case SmallIndex:
		return "uint16"
	case LargeIndex:
		return "uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// MaterialGroup is a run of indices drawn with one material.
type MaterialGroup struct {
	Material   string
	StartIndex uint32
	IndexCount uint32
}

// Bounds holds the axis-aligned bounding box of the mesh positions.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Stats counts what the deduplication pass did.
type Stats struct {
	Corners   int // face corners visited
	Unique    int // vertices emitted
	Redundant int // corners that reused an earlier vertex
}

// Mesh holds a deduplicated vertex list and one index per face corner.
type Mesh struct {
	Attrs     vertex.Attributes
	Vertices  []vertex.Record
	Indices   []uint32
	IndexType IndexType
	Groups    []MaterialGroup
	Bounds    Bounds
	Stats     Stats
}

// VertexBytes returns the vertices packed for a vertex buffer.
func (m *Mesh) VertexBytes() []byte {
	return vertex.Pack(m.Vertices, m.Attrs)
}

// Triangles returns the number of triangles in the index list.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}
