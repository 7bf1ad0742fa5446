// Package render maps page-space rectangles to display space for pages
// described only by their boxes, the way a viewer positions highlights over
// a page image that may be zoomed and rotated.
package render

import (
	"github.com/gardar/pdfselect/pkg/geom"
)

// Engine knows the mediabox of every page
type Engine struct {
	boxes []geom.RectF
}

// New creates an engine for pages with the given mediaboxes
func New(boxes ...geom.RectF) *Engine {
	return &Engine{boxes: boxes}
}

// PageCount returns the number of pages
func (e *Engine) PageCount() int { return len(e.boxes) }

// PageMediabox returns the box of a page, or an empty box for unknown pages
func (e *Engine) PageMediabox(pageNo int) geom.RectF {
	if pageNo < 0 || pageNo >= len(e.boxes) {
		return geom.RectF{}
	}
	return e.boxes[pageNo]
}

// Transform maps r from page space to display space. The page's top-left
// corner becomes the origin, the page is rotated clockwise by rotation
// degrees (rounded to a multiple of 90) and everything is scaled by zoom.
func (e *Engine) Transform(r geom.RectF, pageNo int, zoom float64, rotation int) geom.RectF {
	mb := e.PageMediabox(pageNo)
	x, y := r.X-mb.X, r.Y-mb.Y
	w, h := mb.Dx, mb.Dy

	var out geom.RectF
	switch normalizeRotation(rotation) {
	case 90:
		out = geom.RectF{X: h - (y + r.Dy), Y: x, Dx: r.Dy, Dy: r.Dx}
	case 180:
		out = geom.RectF{X: w - (x + r.Dx), Y: h - (y + r.Dy), Dx: r.Dx, Dy: r.Dy}
	case 270:
		out = geom.RectF{X: y, Y: w - (x + r.Dx), Dx: r.Dy, Dy: r.Dx}
	default:
		out = geom.RectF{X: x, Y: y, Dx: r.Dx, Dy: r.Dy}
	}

	return geom.RectF{X: out.X * zoom, Y: out.Y * zoom, Dx: out.Dx * zoom, Dy: out.Dy * zoom}
}

// normalizeRotation maps any angle onto 0, 90, 180 or 270
func normalizeRotation(rotation int) int {
	rotation %= 360
	if rotation < 0 {
		rotation += 360
	}
	return (rotation + 45) / 90 * 90 % 360
}
