// Package geom holds the small rectangle and point types shared by the
// selection code, the glyph cache and the page engine.
//
// Glyph boxes are integer rectangles in page space (origin plus extent),
// engine coordinates are float rectangles. Conversions between the two
// follow the usual rounding rules: RectF.Round rounds every component to the
// nearest integer, PointF.Trunc truncates towards zero.
package geom

import "math"

// Point is an integer page-space point
type Point struct {
	X, Y int
}

// PointF is a float point in page or display space
type PointF struct {
	X, Y float64
}

// Trunc converts the point to integers by truncation
func (p PointF) Trunc() Point {
	return Point{X: int(p.X), Y: int(p.Y)}
}

// Rect is an integer rectangle given by its origin and extent
type Rect struct {
	X, Y   int
	Dx, Dy int
}

// RectF is a float rectangle given by its origin and extent
type RectF struct {
	X, Y   float64
	Dx, Dy float64
}

// NewRect builds a Rect from two corner points
func NewRect(x1, y1, x2, y2 int) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, Dx: x2 - x1, Dy: y2 - y1}
}

// IsEmpty reports whether the rectangle covers no area
func (r Rect) IsEmpty() bool {
	return r.Dx <= 0 || r.Dy <= 0
}

// IsLineBreak reports whether r is a line-break marker rather than a glyph.
// Markers have a zero origin x and a zero width.
func (r Rect) IsLineBreak() bool {
	return r.X == 0 && r.Dx == 0
}

// Contains reports whether pt lies inside r, edges included
func (r Rect) Contains(pt Point) bool {
	return r.X <= pt.X && pt.X <= r.X+r.Dx &&
		r.Y <= pt.Y && pt.Y <= r.Y+r.Dy
}

// Union returns the smallest rectangle covering r and o.
// An empty operand contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	x2 := max(r.X+r.Dx, o.X+o.Dx)
	y2 := max(r.Y+r.Dy, o.Y+o.Dy)
	return Rect{X: x, Y: y, Dx: x2 - x, Dy: y2 - y}
}

// Intersect returns the overlap of r and o, or the zero Rect when they
// do not overlap
func (r Rect) Intersect(o Rect) Rect {
	x := max(r.X, o.X)
	y := max(r.Y, o.Y)
	dx := min(r.X+r.Dx, o.X+o.Dx) - x
	dy := min(r.Y+r.Dy, o.Y+o.Dy) - y
	if dx <= 0 || dy <= 0 {
		return Rect{}
	}
	return Rect{X: x, Y: y, Dx: dx, Dy: dy}
}

// Center returns the integer center of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.Dx/2, Y: r.Y + r.Dy/2}
}

// ToF converts the rectangle to float coordinates
func (r Rect) ToF() RectF {
	return RectF{X: float64(r.X), Y: float64(r.Y), Dx: float64(r.Dx), Dy: float64(r.Dy)}
}

// IsEmpty reports whether the rectangle covers no area
func (r RectF) IsEmpty() bool {
	return r.Dx <= 0 || r.Dy <= 0
}

// Round rounds every component to the nearest integer
func (r RectF) Round() Rect {
	return Rect{X: round(r.X), Y: round(r.Y), Dx: round(r.Dx), Dy: round(r.Dy)}
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
