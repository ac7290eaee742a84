package writer

import (
	"github.com/flamurey/quadtree/flattypes"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Point is a builder for a single flatpoints record. The tag is opaque
// payload carried along with the coordinates.
type Point struct {
	builder *flatbuffers.Builder

	lon float64
	lat float64
	tag string
}

func NewPoint(builder *flatbuffers.Builder) *Point {
	return &Point{
		builder: builder,
	}
}

func (p *Point) SetLon(lon float64) *Point {
	p.lon = lon
	return p
}

func (p *Point) SetLat(lat float64) *Point {
	p.lat = lat
	return p
}

func (p *Point) SetTag(tag string) *Point {
	p.tag = tag
	return p
}

func (p *Point) Build() flatbuffers.UOffsetT {
	tagOffset := maybeCreateString(p.builder, p.tag)

	flattypes.PointStart(p.builder)
	flattypes.PointAddLon(p.builder, p.lon)
	flattypes.PointAddLat(p.builder, p.lat)
	flattypes.PointAddTag(p.builder, tagOffset)

	return flattypes.PointEnd(p.builder)
}

func (p *Point) Builder() *flatbuffers.Builder {
	return p.builder
}
