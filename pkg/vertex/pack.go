package vertex

import (
	"encoding/binary"
	"math"
)

// Offsets returns the byte offset of each active attribute within a packed vertex.
func Offsets(attrs Attributes) map[Attributes]int {
	offsets := make(map[Attributes]int, attrs.Count())
	offset := 0
	attrs.Each(func(a Attributes) {
		offsets[a] = offset
		offset += a.Components() * floatSize
	})
	return offsets
}

// Pack interleaves the active fields of each record as little-endian
// float32 values, in the order position, normal, texcoord, color.
func Pack(records []Record, attrs Attributes) []byte {
	stride := attrs.Stride()
	out := make([]byte, 0, stride*len(records))
	for i := range records {
		out = appendRecord(out, &records[i], attrs)
	}
	return out
}

// Unpack is the inverse of Pack. Records without an active color get White.
func Unpack(data []byte, count int, attrs Attributes) []Record {
	stride := attrs.Stride()
	records := make([]Record, count)
	for i := range records {
		r := New(attrs)
		p := data[i*stride:]
		if attrs.Has(Position) {
			p = readFloats(p, r.Position[:])
		}
		if attrs.Has(Normal) {
			p = readFloats(p, r.Normal[:])
		}
		if attrs.Has(TexCoord) {
			p = readFloats(p, r.TexCoord[:])
		}
		if attrs.Has(Color) {
			readFloats(p, r.Color[:])
		} else {
			r.Color = White
		}
		records[i] = r
	}
	return records
}

func appendRecord(out []byte, r *Record, attrs Attributes) []byte {
	if attrs.Has(Position) {
		out = appendFloats(out, r.Position[:])
	}
	if attrs.Has(Normal) {
		out = appendFloats(out, r.Normal[:])
	}
	if attrs.Has(TexCoord) {
		out = appendFloats(out, r.TexCoord[:])
	}
	if attrs.Has(Color) {
		out = appendFloats(out, r.Color[:])
	}
	return out
}

func appendFloats(out []byte, fs []float32) []byte {
	for _, f := range fs {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
	}
	return out
}

func readFloats(p []byte, dst []float32) []byte {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(p))
		p = p[floatSize:]
	}
	return p
}
