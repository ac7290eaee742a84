package writer

import (
	"github.com/flamurey/quadtree/flattypes"
	"github.com/flamurey/quadtree/index"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Header is the writer responsible for writting the header of the flatpoints
// file to a given writer. It handles all the flatbuffer details.
type Header struct {
	builder *flatbuffers.Builder

	name        string
	envelope    []float64
	pointsCount uint64
	maxObjects  uint16
	maxLevels   uint16
	srid        int32
	title       string
	description string
	metadata    string
}

func NewHeader(builder *flatbuffers.Builder) *Header {
	return &Header{
		builder:    builder,
		maxObjects: index.DefaultMaxObjects,
		maxLevels:  index.DefaultMaxLevels,
	}
}

func (h *Header) SetName(name string) *Header {
	h.name = name
	return h
}

// SetEnvelope pins the root bounds of the index built over the file, in
// left, bottom, right, top order. When it is never called the writer fills
// the envelope with the extent of the generated points.
func (h *Header) SetEnvelope(envelope []float64) *Header {
	h.envelope = envelope
	return h
}

func (h *Header) SetPointsCount(pointsCount uint64) *Header {
	h.pointsCount = pointsCount
	return h
}

func (h *Header) SetMaxObjects(maxObjects uint16) *Header {
	h.maxObjects = maxObjects
	return h
}

func (h *Header) SetMaxLevels(maxLevels uint16) *Header {
	h.maxLevels = maxLevels
	return h
}

func (h *Header) SetSrid(srid int32) *Header {
	h.srid = srid
	return h
}

func (h *Header) SetTitle(title string) *Header {
	h.title = title
	return h
}

func (h *Header) SetDescription(description string) *Header {
	h.description = description
	return h
}

func (h *Header) SetMetadata(metadata string) *Header {
	h.metadata = metadata
	return h
}

func (h *Header) Build() flatbuffers.UOffsetT {
	if h.builder == nil {
		return 0
	}

	nameOffset := maybeCreateString(h.builder, h.name)

	flattypes.HeaderStartEnvelopeVector(h.builder, len(h.envelope))
	for i := len(h.envelope) - 1; i >= 0; i-- {
		h.builder.PrependFloat64(h.envelope[i])
	}
	envelopeOffset := h.builder.EndVector(len(h.envelope))

	titleOffset := maybeCreateString(h.builder, h.title)
	descriptionOffset := maybeCreateString(h.builder, h.description)
	metaDataOffset := maybeCreateString(h.builder, h.metadata)

	flattypes.HeaderStart(h.builder)

	flattypes.HeaderAddName(h.builder, nameOffset)
	flattypes.HeaderAddEnvelope(h.builder, envelopeOffset)
	flattypes.HeaderAddPointsCount(h.builder, h.pointsCount)
	flattypes.HeaderAddMaxObjects(h.builder, h.maxObjects)
	flattypes.HeaderAddMaxLevels(h.builder, h.maxLevels)
	flattypes.HeaderAddSrid(h.builder, h.srid)
	flattypes.HeaderAddTitle(h.builder, titleOffset)
	flattypes.HeaderAddDescription(h.builder, descriptionOffset)
	flattypes.HeaderAddMetadata(h.builder, metaDataOffset)

	return flattypes.HeaderEnd(h.builder)
}

func (h *Header) Builder() *flatbuffers.Builder {
	return h.builder
}
