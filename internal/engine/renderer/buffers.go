package renderer

import (
	"encoding/binary"

	vk "github.com/vulkan-go/vulkan"

	"github.com/Faultbox/gxengine/internal/engine/model"
	"github.com/Faultbox/gxengine/pkg/vertex"
)

// Buffers receives a loaded mesh and keeps it in the byte form that is
// copied into staging buffers.
type Buffers struct {
	attrs       vertex.Attributes
	vertices    []byte
	vertexCount uint32
	indices     []uint32
	indexType   model.IndexType
}

var _ model.MeshSink = (*Buffers)(nil)

// SetAttributes implements model.MeshSink.
func (b *Buffers) SetAttributes(attrs vertex.Attributes) {
	b.attrs = attrs
}

// SetVertices implements model.MeshSink.
func (b *Buffers) SetVertices(data []byte, count uint32) {
	b.vertices = data
	b.vertexCount = count
}

// SetIndices implements model.MeshSink.
func (b *Buffers) SetIndices(indices []uint32) {
	b.indices = indices
	b.indexType = model.LargeIndex
}

// Attributes returns the vertex attribute set.
func (b *Buffers) Attributes() vertex.Attributes { return b.attrs }

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() uint32 { return b.vertexCount }

// IndexCount returns the number of indices.
func (b *Buffers) IndexCount() uint32 { return uint32(len(b.indices)) }

// VertexBytes returns the interleaved vertex data.
func (b *Buffers) VertexBytes() []byte { return b.vertices }

// Layout returns the vertex input layout for the stored vertices.
func (b *Buffers) Layout() Layout {
	return VertexLayout(b.attrs)
}

// IndexType returns the Vulkan index type of IndexBytes.
func (b *Buffers) IndexType() vk.IndexType {
	return IndexType(b.indexType)
}

// IndexBytes returns the indices as little-endian values of IndexType width.
func (b *Buffers) IndexBytes() []byte {
	size := b.indexType.Size()
	out := make([]byte, 0, len(b.indices)*size)
	for _, idx := range b.indices {
		if size == 2 {
			out = binary.LittleEndian.AppendUint16(out, uint16(idx))
		} else {
			out = binary.LittleEndian.AppendUint32(out, idx)
		}
	}
	return out
}

// Compact switches to 16-bit indices when every index fits.
// It reports whether the switch happened.
func (b *Buffers) Compact() bool {
	if b.vertexCount > 0xFFFF {
		return false
	}
	for _, idx := range b.indices {
		if idx > 0xFFFF {
			return false
		}
	}
	b.indexType = model.SmallIndex
	return true
}

// VertexBufferSize returns the vertex buffer size in bytes.
func (b *Buffers) VertexBufferSize() vk.DeviceSize {
	return vk.DeviceSize(len(b.vertices))
}

// IndexBufferSize returns the index buffer size in bytes.
func (b *Buffers) IndexBufferSize() vk.DeviceSize {
	return vk.DeviceSize(len(b.indices) * b.indexType.Size())
}
