package textsel

import (
	"fmt"

	"github.com/gardar/pdfselect/pkg/geom"
)

// fillRuns groups glyphs [glyph, glyph+length) of a page into runs separated
// by line-break markers, clips each run to the page's visible boundary and
// either appends its text to lines or, when lines is nil, appends its
// rectangle to the active result.
func (s *Selection) fillRuns(pageNo, glyph, length int, lines *[]string) error {
	text, coords, err := s.cache.GlyphData(pageNo)
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNo, err)
	}
	textLen := len(coords)
	if glyph < 0 || length < 0 || glyph+length > textLen {
		return fmt.Errorf("%w: glyphs %d..%d on page %d with %d glyphs",
			ErrOutOfRange, glyph, glyph+length, pageNo, textLen)
	}
	if lines != nil && len(text) != textLen {
		return fmt.Errorf("%w: page %d has %d runes for %d glyph boxes",
			ErrGlyphData, pageNo, len(text), textLen)
	}

	mediabox := s.engine.PageMediabox(pageNo).Round()
	end := glyph + length
	c := glyph
	for c < end {
		// skip line breaks
		for c < end && coords[c].IsLineBreak() {
			c++
		}

		c0 := c
		var run geom.Rect
		for ; c < end && !coords[c].IsLineBreak(); c++ {
			run = run.Union(coords[c])
		}
		run = run.Intersect(mediabox)
		// text entirely outside the page's mediabox
		if run.IsEmpty() {
			continue
		}

		if lines != nil {
			*lines = append(*lines, string(text[c0:c]))
			continue
		}

		// cut the right edge if it overlaps the next glyph
		if c < textLen && !coords[c].IsLineBreak() && run.X < coords[c].X && run.X+run.Dx > coords[c].X {
			run.Dx = coords[c].X - run.X
		}
		s.result.add(pageNo, run)
	}
	return nil
}
