package index

import "fmt"

const (
	// DefaultMaxObjects is the number of points a node holds before it splits.
	DefaultMaxObjects = 10

	// DefaultMaxLevels is the depth below which a node never splits again.
	DefaultMaxLevels = 4
)

// Child quadrant indices. The convention is fixed: indexForPoint and
// indexesForRect both depend on it.
const (
	bottomRight = 0
	bottomLeft  = 1
	topLeft     = 2
	topRight    = 3
)

// policy is the capacity/depth configuration shared by every node of one
// tree. It is immutable after construction.
type policy struct {
	maxObjects int
	maxLevels  int
}

// Option configures a QuadNode at construction time.
type Option func(*policy)

// WithMaxObjects sets the number of points a node may hold before splitting.
func WithMaxObjects(maxObjects int) Option {
	return func(p *policy) {
		p.maxObjects = maxObjects
	}
}

// WithMaxLevels sets the maximum node depth. Nodes at that depth become
// unbounded leaves instead of splitting.
func WithMaxLevels(maxLevels int) Option {
	return func(p *policy) {
		p.maxLevels = maxLevels
	}
}

// QuadNode is a point-region quadtree node. The root node is the tree: every
// node owns its bounds, the points directly held at it and, once split,
// exactly four children that tile its bounds without gaps or overlaps.
type QuadNode struct {
	bounds Bounds
	width  float64
	height float64

	level  int
	policy *policy

	objects []Point

	// nodes is nil for a leaf. A split populates all four quadrants at once,
	// so there is no partial state.
	nodes *[4]*QuadNode
}

// NewQuadNode creates the root of a new quadtree covering the given bounds.
// The bounds must satisfy Right > Left and Top > Bottom, and the configured
// policy must have maxObjects > 0 and maxLevels >= 0.
func NewQuadNode(bounds Bounds, opts ...Option) (*QuadNode, error) {
	p := &policy{
		maxObjects: DefaultMaxObjects,
		maxLevels:  DefaultMaxLevels,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.maxObjects <= 0 {
		return nil, fmt.Errorf("maxObjects must be > 0")
	}
	if p.maxLevels < 0 {
		return nil, fmt.Errorf("maxLevels must be >= 0")
	}
	if bounds.Right <= bounds.Left || bounds.Top <= bounds.Bottom {
		return nil, fmt.Errorf("bounds must have Right > Left and Top > Bottom")
	}

	return newQuadNode(bounds, 0, p), nil
}

// newQuadNode creates a node at the given level. Width and height are
// derived here once and never recomputed.
func newQuadNode(bounds Bounds, level int, p *policy) *QuadNode {
	return &QuadNode{
		bounds: bounds,
		width:  bounds.Width(),
		height: bounds.Height(),
		level:  level,
		policy: p,
	}
}

// Bounds returns the region covered by this node.
func (qn *QuadNode) Bounds() Bounds {
	return qn.bounds
}

// Level returns the depth of this node. The root is at level 0.
func (qn *QuadNode) Level() int {
	return qn.level
}

// Len returns the number of points stored in this node's subtree.
func (qn *QuadNode) Len() int {
	n := len(qn.objects)
	if qn.nodes != nil {
		for _, child := range qn.nodes {
			n += child.Len()
		}
	}
	return n
}

// split turns a leaf into an internal node with four children, each covering
// one midpoint quadrant of the node's own bounds. Existing objects are not
// moved; redistribution is the caller's job.
func (qn *QuadNode) split() {
	horizontalMid := qn.bounds.Left + qn.width/2
	verticalMid := qn.bounds.Bottom + qn.height/2
	level := qn.level + 1

	qn.nodes = &[4]*QuadNode{
		bottomRight: newQuadNode(Bounds{
			Left:   horizontalMid,
			Right:  qn.bounds.Right,
			Top:    verticalMid,
			Bottom: qn.bounds.Bottom,
		}, level, qn.policy),
		bottomLeft: newQuadNode(Bounds{
			Left:   qn.bounds.Left,
			Right:  horizontalMid,
			Top:    verticalMid,
			Bottom: qn.bounds.Bottom,
		}, level, qn.policy),
		topLeft: newQuadNode(Bounds{
			Left:   qn.bounds.Left,
			Right:  horizontalMid,
			Top:    qn.bounds.Top,
			Bottom: verticalMid,
		}, level, qn.policy),
		topRight: newQuadNode(Bounds{
			Left:   horizontalMid,
			Right:  qn.bounds.Right,
			Top:    qn.bounds.Top,
			Bottom: verticalMid,
		}, level, qn.policy),
	}
}

// indexForPoint returns the child quadrant a point belongs to. It always
// returns a definite index: a point is treated as belonging to this node's
// quadrant scheme whether or not it actually lies inside the bounds.
func (qn *QuadNode) indexForPoint(p Point) int {
	horizontalMid := qn.bounds.Left + qn.width/2
	verticalMid := qn.bounds.Bottom + qn.height/2

	if p.Lon > horizontalMid {
		if p.Lat > verticalMid {
			return topRight
		}
		return bottomRight
	}
	if p.Lat > verticalMid {
		return topLeft
	}
	return bottomLeft
}

// Insert adds one point to the subtree rooted at this node, splitting and
// redistributing on the way down as capacity is exceeded. Once a node sits at
// the maximum level it never splits and simply accumulates points.
func (qn *QuadNode) Insert(p Point) {
	if qn.nodes != nil {
		qn.nodes[qn.indexForPoint(p)].Insert(p)
		return
	}

	qn.objects = append(qn.objects, p)

	if len(qn.objects) > qn.policy.maxObjects && qn.level < qn.policy.maxLevels {
		qn.split()

		// A redistributed point can trigger a nested split one level deeper
		// if it lands in a child that is already over capacity.
		for _, obj := range qn.objects {
			qn.nodes[qn.indexForPoint(obj)].Insert(obj)
		}
		qn.objects = nil
	}
}

// indexesForRect returns the child quadrants a query rectangle could have
// points in, in index order. Only valid on a split node.
func (qn *QuadNode) indexesForRect(r Rect) []int {
	if r.ContainsBounds(qn.bounds) {
		// The rectangle covers this whole node, so every child matches.
		return []int{bottomRight, bottomLeft, topLeft, topRight}
	}

	var indexes []int
	for i, child := range qn.nodes {
		if child.bounds.Intersects(r) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Retrieve returns every point that could intersect the given rectangle.
// This is a broad-phase superset: points held directly at a visited node are
// returned without being tested against the rectangle, so callers needing
// exact hits must post-filter the result.
func (qn *QuadNode) Retrieve(r Rect) []Point {
	var points []Point
	points = append(points, qn.objects...)

	if qn.nodes != nil {
		for _, i := range qn.indexesForRect(r) {
			points = append(points, qn.nodes[i].Retrieve(r)...)
		}
	}

	return points
}

// Clear resets the subtree rooted at this node to a single empty leaf,
// preserving its bounds, level and policy.
func (qn *QuadNode) Clear() {
	qn.objects = nil

	if qn.nodes != nil {
		for _, child := range qn.nodes {
			child.Clear()
		}
		qn.nodes = nil
	}
}
