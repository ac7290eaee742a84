package index

// Bounds is the axis-aligned rectangular region owned by a QuadNode. The
// convention throughout this package is that Top and Right hold the larger
// coordinate on their axis, so a well-formed Bounds has Top > Bottom and
// Right > Left.
type Bounds struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Width returns the width of the Bounds.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the height of the Bounds.
func (b Bounds) Height() float64 {
	return b.Top - b.Bottom
}

// Intersects returns true if this Bounds intersects with the given Rect.
// Touching edges count as intersecting.
func (b Bounds) Intersects(r Rect) bool {
	return !(r.Right < b.Left ||
		b.Right < r.Left ||
		r.Top < b.Bottom ||
		b.Top < r.Bottom)
}

// Rect is a query rectangle. It uses the same Top > Bottom, Right > Left
// convention as Bounds and is only ever used for retrieval, never insertion.
type Rect struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// ContainsBounds returns true if the given Bounds lies fully inside this Rect.
func (r Rect) ContainsBounds(b Bounds) bool {
	return b.Left >= r.Left &&
		b.Right <= r.Right &&
		b.Bottom >= r.Bottom &&
		b.Top <= r.Top
}

// ContainsCoords returns true if the given coordinates lie inside this Rect,
// edges included.
func (r Rect) ContainsCoords(lon, lat float64) bool {
	return lon >= r.Left && lon <= r.Right &&
		lat >= r.Bottom && lat <= r.Top
}

// Point is a single indexed entity. The Data field is opaque to the tree and
// is carried along unchanged.
type Point struct {
	Lon  float64
	Lat  float64
	Data any
}
