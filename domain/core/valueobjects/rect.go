package valueobjects

import (
	"math"

	pkgerrors "uiflow/pkg/errors"
)

// Rect is a value object describing a node's extent on the canvas
type Rect struct {
	x      float64
	y      float64
	width  float64
	height float64
}

// NewRect creates a rectangle with validation. Negative extents are
// accepted and describe a rectangle dragged towards the origin.
func NewRect(x, y, width, height float64) (Rect, error) {
	for _, v := range []float64{x, y, width, height} {
		if !isValidCoordinate(v) {
			return Rect{}, pkgerrors.NewValidationError("invalid rectangle: coordinates must be finite numbers")
		}
	}
	return Rect{x: x, y: y, width: width, height: height}, nil
}

// MustRect is NewRect for literals known to be valid
func MustRect(x, y, width, height float64) Rect {
	r, err := NewRect(x, y, width, height)
	if err != nil {
		panic(err)
	}
	return r
}

// X returns the X origin
func (r Rect) X() float64 { return r.x }

// Y returns the Y origin
func (r Rect) Y() float64 { return r.y }

// Width returns the width, possibly negative
func (r Rect) Width() float64 { return r.width }

// Height returns the height, possibly negative
func (r Rect) Height() float64 { return r.height }

// Normalized returns the same area with non-negative extents
func (r Rect) Normalized() Rect {
	n := r
	if n.width < 0 {
		n.x += n.width
		n.width = -n.width
	}
	if n.height < 0 {
		n.y += n.height
		n.height = -n.height
	}
	return n
}

// Min returns the normalized top-left corner
func (r Rect) Min() Vector2 {
	n := r.Normalized()
	return Vector2{X: n.x, Y: n.y}
}

// Max returns the normalized bottom-right corner
func (r Rect) Max() Vector2 {
	n := r.Normalized()
	return Vector2{X: n.x + n.width, Y: n.y + n.height}
}

// Overlaps reports whether the two rectangles share any point.
// Touching edges count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	aMin, aMax := r.Min(), r.Max()
	bMin, bMax := other.Min(), other.Max()
	return aMin.X <= bMax.X && aMax.X >= bMin.X &&
		aMin.Y <= bMax.Y && aMax.Y >= bMin.Y
}

// Translate moves the rectangle by the given offsets
func (r Rect) Translate(dx, dy float64) (Rect, error) {
	return NewRect(r.x+dx, r.y+dy, r.width, r.height)
}

// Equals checks if two rectangles are equal
func (r Rect) Equals(other Rect) bool {
	const epsilon = 1e-9
	return math.Abs(r.x-other.x) < epsilon &&
		math.Abs(r.y-other.y) < epsilon &&
		math.Abs(r.width-other.width) < epsilon &&
		math.Abs(r.height-other.height) < epsilon
}

// Vector2 is a plain canvas coordinate pair
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
