package quadtree

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"syscall"

	"github.com/flamurey/quadtree/flattypes"
	"github.com/flamurey/quadtree/index"
	"github.com/flamurey/quadtree/writer"

	flatbuffers "github.com/google/flatbuffers/go"
)

// PointSet allows read-only handling of a flatpoints file. The point records
// in the file are indexed by an in-memory quadtree built at load time from
// the bounds and policy stored in the file header.
type PointSet struct {
	data    []byte
	mmapped bool

	header *flattypes.Header
	tree   *index.QuadNode

	pointsOffset int
}

// New creates a new PointSet instance from a file path by memory mapping the
// file.
func New(path string) (*PointSet, error) {
	return NewWithBehavior(path, BehaviorMMapAll)
}

// NewWithBehavior creates a new PointSet instance from a file path with the
// given behavior.
func NewWithBehavior(path string, behavior Behavior) (*PointSet, error) {
	loadAll := behavior&BehaviorLoadAll != 0
	mmapAll := behavior&BehaviorMMapAll != 0
	if loadAll && mmapAll {
		return nil, fmt.Errorf("behaviors BehaviorLoadAll and BehaviorMMapAll " +
			"are incompatible")
	}

	if !loadAll && !mmapAll {
		return nil, fmt.Errorf("either BehaviorLoadAll or BehaviorMMapAll must " +
			"be set")
	}

	ps := &PointSet{
		mmapped: mmapAll,
	}

	err := ps.mmapOrLoadFile(path, behavior)
	if err != nil {
		return nil, fmt.Errorf("error obtaining data from file: %w", err)
	}

	err = ps.setup()
	if err != nil {
		return nil, fmt.Errorf("error setting up pointset: %w", err)
	}

	return ps, nil
}

// NewWithData creates a new PointSet from the given byte slice. The contents
// of the slice should be the same of a valid flatpoints file.
func NewWithData(data []byte) (*PointSet, error) {
	ps := &PointSet{
		data:    data,
		mmapped: false,
	}

	err := ps.setup()
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Header allows access to the underlying flatpoints header in flatbuffer
// format.
func (ps *PointSet) Header() *flattypes.Header {
	return ps.header
}

// Index allows access to the quadtree built over the point records. Note that
// mutating the tree through it desynchronizes the index from the file.
func (ps *PointSet) Index() *index.QuadNode {
	return ps.tree
}

// Search returns the point records that lie inside the given rectangle, in
// file order. The quadtree narrows the candidates down and the candidates are
// then filtered exactly, so unlike index.QuadNode.Retrieve this is not a
// superset.
func (ps *PointSet) Search(left, bottom, right, top float64) []*flattypes.Point {
	rect := index.Rect{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
	}

	hits := ps.tree.Retrieve(rect)

	offsets := make([]uint64, 0, len(hits))
	for _, hit := range hits {
		// Retrieve is broad-phase: candidates still need the exact test.
		if !rect.ContainsCoords(hit.Lon, hit.Lat) {
			continue
		}
		offsets = append(offsets, hit.Data.(uint64))
	}

	sort.Slice(offsets, func(i, j int) bool {
		return offsets[i] < offsets[j]
	})

	points := make([]*flattypes.Point, len(offsets))
	for i, offset := range offsets {
		points[i] = flattypes.GetSizePrefixedRootAsPoint(ps.data,
			flatbuffers.UOffsetT(offset))
	}

	return points
}

func (ps *PointSet) close() {
	if ps.data == nil {
		return
	}

	if ps.mmapped {
		// Data was mmaped. Some cleanup is needed.
		data := ps.data
		ps.data = nil

		runtime.SetFinalizer(ps, nil)
		syscall.Munmap(data)
	}
}

func (ps *PointSet) mmapOrLoadFile(path string, behavior Behavior) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return err
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory")
	}

	size := fileInfo.Size()

	if size == 0 {
		return fmt.Errorf("file is empty")
	}
	if size < 0 {
		return fmt.Errorf("file %q has negative size", path)
	}
	if int64(size) != int64(int(size)) {
		return fmt.Errorf("file %q is too large", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if behavior&BehaviorMMapAll != 0 {
		// File should be mmaped.
		ps.data, err = syscall.Mmap(int(f.Fd()), 0, int(size),
			syscall.PROT_READ, syscall.MAP_PRIVATE)
		if err != nil {
			return fmt.Errorf("error mmapping file: %w", err)
		}
		runtime.SetFinalizer(ps, (*PointSet).close)

		madvFlags := syscall.MADV_RANDOM
		if behavior&BehaviorPrefault != 0 {
			// And we want to prefault it.
			madvFlags |= syscall.MADV_WILLNEED
		}

		madvise(ps.data, madvFlags)
	} else {
		// File should be loaded.
		ps.data, err = io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("error loading file: %w", err)
		}
	}
	return nil
}

func (ps *PointSet) setup() error {
	// Check magic bytes.
	if len(ps.data) < len(writer.MagicBytes) ||
		!bytes.Equal(ps.data[:len(writer.MagicBytes)], writer.MagicBytes) {
		return fmt.Errorf("not a flatpoints file: invalid magic bytes")
	}

	// Increment offset past magic bytes.
	offset := len(writer.MagicBytes)

	// Read header size.
	headerSize := int(flatbuffers.GetUOffsetT(ps.data[offset:]))

	// Read header ignoring the size.
	ps.header = flattypes.GetSizePrefixedRootAsHeader(ps.data,
		flatbuffers.UOffsetT(offset))

	// Increment offset past header.
	offset += headerSize + flatbuffers.SizeUOffsetT

	if ps.header.EnvelopeLength() != 4 {
		return fmt.Errorf("invalid envelope: expected 4 values, got: %d",
			ps.header.EnvelopeLength())
	}

	// The envelope is the root bounds of the quadtree, in left, bottom,
	// right, top order.
	bounds := index.Bounds{
		Left:   ps.header.Envelope(0),
		Bottom: ps.header.Envelope(1),
		Right:  ps.header.Envelope(2),
		Top:    ps.header.Envelope(3),
	}

	tree, err := index.NewQuadNode(bounds,
		index.WithMaxObjects(int(ps.header.MaxObjects())),
		index.WithMaxLevels(int(ps.header.MaxLevels())))
	if err != nil {
		return fmt.Errorf("error creating index: %w", err)
	}
	ps.tree = tree

	ps.pointsOffset = offset

	// Walk the point records and index each one by its file offset.
	for i := uint64(0); i < ps.header.PointsCount(); i++ {
		if offset+flatbuffers.SizeUOffsetT > len(ps.data) {
			return fmt.Errorf("truncated point record %d at offset %d", i, offset)
		}

		recordSize := int(flatbuffers.GetUOffsetT(ps.data[offset:]))
		point := flattypes.GetSizePrefixedRootAsPoint(ps.data,
			flatbuffers.UOffsetT(offset))

		ps.tree.Insert(index.Point{
			Lon:  point.Lon(),
			Lat:  point.Lat(),
			Data: uint64(offset),
		})

		offset += recordSize + flatbuffers.SizeUOffsetT
	}

	return nil
}
