package model

import (
	"github.com/Faultbox/gxengine/pkg/vertex"
)

// MeshSink receives a loaded mesh: first the attribute set, then the packed
// vertex bytes with their count, then the indices.
type MeshSink interface {
	SetAttributes(attrs vertex.Attributes)
	SetVertices(data []byte, count uint32)
	SetIndices(indices []uint32)
}

// Emit hands m to sink in MeshSink order.
func (m *Mesh) Emit(sink MeshSink) {
	sink.SetAttributes(m.Attrs)
	sink.SetVertices(m.VertexBytes(), uint32(len(m.Vertices)))
	sink.SetIndices(m.Indices)
}

// SetAttributes implements MeshSink.
func (m *Mesh) SetAttributes(attrs vertex.Attributes) {
	m.Attrs = attrs
}

// SetVertices implements MeshSink. data must use the layout of m.Attrs.
func (m *Mesh) SetVertices(data []byte, count uint32) {
	m.Vertices = vertex.Unpack(data, int(count), m.Attrs)
	m.Bounds = boundsOf(m.Vertices, m.Attrs)
}

// SetIndices implements MeshSink.
func (m *Mesh) SetIndices(indices []uint32) {
	m.Indices = indices
	m.IndexType = LargeIndex
}

func boundsOf(vertices []vertex.Record, attrs vertex.Attributes) Bounds {
	if len(vertices) == 0 || !attrs.Has(vertex.Position) {
		return Bounds{}
	}

	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}
