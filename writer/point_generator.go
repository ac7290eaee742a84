package writer

// PointGenerator is an interface for generating point records.
type PointGenerator interface {
	// Generate generates a point. Returns nil if there are no more points to
	// generate.
	Generate() *Point
}
