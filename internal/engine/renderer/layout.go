// Package renderer maps loaded meshes onto Vulkan vertex input state and
// staging buffers.
package renderer

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/Faultbox/gxengine/internal/engine/model"
	"github.com/Faultbox/gxengine/pkg/vertex"
)

// Layout describes how one interleaved vertex buffer feeds a pipeline.
type Layout struct {
	Binding    vk.VertexInputBindingDescription
	Attributes []vk.VertexInputAttributeDescription
	Stride     uint32
}

// VertexLayout builds the layout for attrs on binding 0. Shader locations
// are assigned consecutively to the active attributes in packing order.
func VertexLayout(attrs vertex.Attributes) Layout {
	offsets := vertex.Offsets(attrs)
	stride := uint32(attrs.Stride())

	l := Layout{
		Binding: vk.VertexInputBindingDescription{
			Binding:   0,
			Stride:    stride,
			InputRate: vk.VertexInputRateVertex,
		},
		Stride: stride,
	}

	location := uint32(0)
	attrs.Each(func(a vertex.Attributes) {
		l.Attributes = append(l.Attributes, vk.VertexInputAttributeDescription{
			Binding:  0,
			Location: location,
			Format:   formatFor(a),
			Offset:   uint32(offsets[a]),
		})
		location++
	})
	return l
}

// PipelineVertexInput returns the pipeline vertex input state for l.
func (l Layout) PipelineVertexInput() vk.PipelineVertexInputStateCreateInfo {
	return vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{l.Binding},
		VertexAttributeDescriptionCount: uint32(len(l.Attributes)),
		PVertexAttributeDescriptions:    l.Attributes,
	}
}

func formatFor(a vertex.Attributes) vk.Format {
	switch a.Components() {
	case 2:
		return vk.FormatR32g32Sfloat
	case 3:
		return vk.FormatR32g32b32Sfloat
	case 4:
		return vk.FormatR32g32b32a32Sfloat
	default:
		return vk.FormatUndefined
	}
}

// IndexType converts a mesh index width to its Vulkan enum.
func IndexType(t model.IndexType) vk.IndexType {
	if t == model.SmallIndex {
		return vk.IndexTypeUint16
	}
	return vk.IndexTypeUint32
}
