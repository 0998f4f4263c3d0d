package graph

import "math"

// Shape is the coarse classification of a component's outline.
type Shape string

const (
	ShapeRectangle Shape = "RECTANGLE"
	ShapeCircle    Shape = "CIRCLE"
	ShapeUnknown   Shape = "UNKNOWN"
)

// circleTolerance is the allowed relative deviation from the ideal disc area.
const circleTolerance = 0.35

// Bounds is the inclusive bounding box of a component.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

func newBounds(c Coord) Bounds {
	return Bounds{MinRow: c.Row, MaxRow: c.Row, MinCol: c.Col, MaxCol: c.Col}
}

func (b *Bounds) extend(c Coord) {
	b.MinRow = min(b.MinRow, c.Row)
	b.MaxRow = max(b.MaxRow, c.Row)
	b.MinCol = min(b.MinCol, c.Col)
	b.MaxCol = max(b.MaxCol, c.Col)
}

// Width returns the number of columns spanned.
func (b Bounds) Width() int {
	return b.MaxCol - b.MinCol + 1
}

// Height returns the number of rows spanned.
func (b Bounds) Height() int {
	return b.MaxRow - b.MinRow + 1
}

// Classify labels a component with the given pixel area and bounding box.
// A filled bounding box is a rectangle; a square box whose area is within
// circleTolerance of the inscribed disc is a circle.
func Classify(area int, b Bounds) Shape {
	w, h := b.Width(), b.Height()
	if area == w*h {
		return ShapeRectangle
	}
	if w != h {
		return ShapeUnknown
	}
	radius := float64(w) / 2
	expected := math.Pi * radius * radius
	if math.Abs(float64(area)-expected) < expected*circleTolerance {
		return ShapeCircle
	}
	return ShapeUnknown
}
