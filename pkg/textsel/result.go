package textsel

import (
	"github.com/gardar/pdfselect/pkg/geom"
)

// run is one highlighted rectangle and the page it belongs to
type run struct {
	page int
	rect geom.Rect
}

// Result is an ordered list of (page, rectangle) pairs plus the metadata
// of one selection
type Result struct {
	runs  []run
	whole bool   // reserved for whole-page selections
	color uint32 // highlight color tag, 0 is the default
	text  *string
}

// Len returns the number of rectangles
func (r *Result) Len() int { return len(r.runs) }

// Page returns the page of the i-th rectangle
func (r *Result) Page(i int) int { return r.runs[i].page }

// Rect returns the i-th rectangle
func (r *Result) Rect(i int) geom.Rect { return r.runs[i].rect }

// Pages returns the page of every rectangle, parallel to Rects
func (r *Result) Pages() []int {
	pages := make([]int, len(r.runs))
	for i, ru := range r.runs {
		pages[i] = ru.page
	}
	return pages
}

// Rects returns every rectangle in insertion order
func (r *Result) Rects() []geom.Rect {
	rects := make([]geom.Rect, len(r.runs))
	for i, ru := range r.runs {
		rects[i] = ru.rect
	}
	return rects
}

// PageRects returns the rectangles that lie on pageNo
func (r *Result) PageRects(pageNo int) []geom.Rect {
	var rects []geom.Rect
	for _, ru := range r.runs {
		if ru.page == pageNo {
			rects = append(rects, ru.rect)
		}
	}
	return rects
}

// Color returns the opaque color tag, 0 when unset
func (r *Result) Color() uint32 { return r.color }

// SetColor sets the color tag
func (r *Result) SetColor(color uint32) { r.color = color }

// Whole reports whether the result stands for whole pages
func (r *Result) Whole() bool { return r.whole }

// SetWhole marks the result as covering whole pages
func (r *Result) SetWhole(whole bool) { r.whole = whole }

// Text returns the extracted text, if any was set
func (r *Result) Text() (string, bool) {
	if r.text == nil {
		return "", false
	}
	return *r.text, true
}

// SetText replaces the extracted text
func (r *Result) SetText(text string) {
	r.text = &text
}

// Reset drops all rectangles, the text and the flags
func (r *Result) Reset() {
	r.runs = nil
	r.whole = false
	r.color = 0
	r.text = nil
}

func (r *Result) add(pageNo int, rect geom.Rect) {
	r.runs = append(r.runs, run{page: pageNo, rect: rect})
}

// truncate drops every run after the first n
func (r *Result) truncate(n int) {
	if n < len(r.runs) {
		r.runs = r.runs[:n]
	}
}

func (r *Result) clone() *Result {
	c := &Result{
		runs:  append([]run(nil), r.runs...),
		whole: r.whole,
		color: r.color,
	}
	if r.text != nil {
		c.SetText(*r.text)
	}
	return c
}
