package writer

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/flamurey/quadtree/index"
)

// MagicBytes is the identifier sequence for a flatpoints file.
var MagicBytes = []byte{0x66, 0x70, 0x73, 0x01, 0x66, 0x70, 0x73, 0x00}

// Writer is a type that allows constructing a valid flatpoints file that has
// a Header followed by a collection of point records.
type Writer struct {
	header *Header

	pointGenerator PointGenerator

	headerUpdater HeaderUpdater

	inMemory     bool
	hilbertOrder bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithMemory makes the Writer stage point records in memory instead of in a
// temporary file.
func WithMemory() Option {
	return func(w *Writer) {
		w.inMemory = true
	}
}

// WithHilbertOrder makes the Writer lay out the point records in Hilbert
// curve order so that spatially close points end up close together in the
// file. All records are collected in memory before writing.
func WithHilbertOrder() Option {
	return func(w *Writer) {
		w.hilbertOrder = true
	}
}

// NewWriter returns a new writer instance that will write a flatpoints file
// with the given Header, a PointGenerator that will provide the point records
// to be written and a HeaderUpdater that will be used to update the Header
// after all points have been generated.
func NewWriter(header *Header, pointGenerator PointGenerator,
	headerUpdater HeaderUpdater, opts ...Option) *Writer {
	w := &Writer{
		header:         header,
		pointGenerator: pointGenerator,
		headerUpdater:  headerUpdater,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func writePoint(point *Point, w io.Writer) (int, error) {
	pointOffset := point.Build()
	point.builder.FinishSizePrefixed(pointOffset)
	return w.Write(point.builder.FinishedBytes())
}

// Write writes the flatpoints file represented by the given io.Writer.
func (w *Writer) Write(ioWriter io.Writer) (int, error) {
	totalBytesWritten := 0

	// Write magic bytes to destination file.
	n, err := ioWriter.Write(MagicBytes)
	totalBytesWritten += n
	if err != nil {
		return totalBytesWritten, err
	}

	// The header carries the record count and possibly the envelope, both of
	// which are only known after generation, so the records are staged first.
	var stage io.Writer
	var memBuf bytes.Buffer
	var tmpFile *os.File
	if w.inMemory {
		stage = &memBuf
	} else {
		tmpFile, err = os.CreateTemp("", "flatpoints_records_")
		if err != nil {
			return totalBytesWritten, err
		}
		defer tmpFile.Close()
		defer os.Remove(tmpFile.Name())
		stage = tmpFile
	}

	pointsCount := uint64(0)
	extent := index.Bounds{
		Left:   math.Inf(1),
		Bottom: math.Inf(1),
		Right:  math.Inf(-1),
		Top:    math.Inf(-1),
	}

	stagePoint := func(point *Point) error {
		_, err := writePoint(point, stage)
		if err != nil {
			return err
		}

		extent.Left = math.Min(extent.Left, point.lon)
		extent.Bottom = math.Min(extent.Bottom, point.lat)
		extent.Right = math.Max(extent.Right, point.lon)
		extent.Top = math.Max(extent.Top, point.lat)
		pointsCount++

		return nil
	}

	if w.hilbertOrder {
		// Hilbert ordering needs every record up front.
		var points []*Point
		for point := w.pointGenerator.Generate(); point != nil; point =
			w.pointGenerator.Generate() {
			points = append(points, point)
		}

		coords := make([]index.Point, len(points))
		for i, point := range points {
			coords[i] = index.Point{Lon: point.lon, Lat: point.lat}
		}
		ext := index.CalcExtentForPoints(coords)

		sort.Slice(points, func(i, j int) bool {
			ha := index.HilbertForCoords(points[i].lon, points[i].lat,
				index.HilbertMax, ext.Left, ext.Bottom, ext.Width(), ext.Height())
			hb := index.HilbertForCoords(points[j].lon, points[j].lat,
				index.HilbertMax, ext.Left, ext.Bottom, ext.Width(), ext.Height())
			return ha > hb
		})

		for _, point := range points {
			if err = stagePoint(point); err != nil {
				return totalBytesWritten, err
			}
		}
	} else {
		for point := w.pointGenerator.Generate(); point != nil; point =
			w.pointGenerator.Generate() {
			if err = stagePoint(point); err != nil {
				return totalBytesWritten, err
			}
		}
	}

	// Adjust and write header. An envelope pinned by the caller wins over the
	// generated extent because it is the root bounds of the index built over
	// the file.
	if len(w.header.envelope) == 0 {
		if pointsCount == 0 {
			return totalBytesWritten, fmt.Errorf("no envelope was set and no " +
				"points were generated to derive one from")
		}
		w.header.SetEnvelope([]float64{extent.Left, extent.Bottom,
			extent.Right, extent.Top})
	}
	w.header.SetPointsCount(pointsCount)

	// Call our header updater if we have one.
	if w.headerUpdater != nil {
		w.headerUpdater.Update(w.header)
	}

	headerOffset := w.header.Build()
	w.header.builder.FinishSizePrefixed(headerOffset)
	n, err = ioWriter.Write(w.header.builder.FinishedBytes())
	totalBytesWritten += n
	if err != nil {
		return totalBytesWritten, err
	}

	// Copy point records from the staging area to the destination file.
	if w.inMemory {
		n, err = ioWriter.Write(memBuf.Bytes())
		totalBytesWritten += n
		if err != nil {
			return totalBytesWritten, err
		}
	} else {
		if err = tmpFile.Sync(); err != nil {
			return totalBytesWritten, err
		}
		if _, err = tmpFile.Seek(0, 0); err != nil {
			return totalBytesWritten, err
		}

		var written int64
		if written, err = io.Copy(ioWriter, tmpFile); err != nil {
			return totalBytesWritten, err
		}
		totalBytesWritten += int(written)
	}

	return totalBytesWritten, nil
}
