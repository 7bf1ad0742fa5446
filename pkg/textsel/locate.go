package textsel

import (
	"fmt"

	"github.com/gardar/pdfselect/pkg/geom"
)

// FindClosestGlyph returns the index of the glyph closest to the right of
// (x, y). Over the right half of a glyph the index of the following glyph is
// returned, which is the first glyph not to be selected in a forward drag.
// The result lies in [0, textLen]; an empty page yields 0.
func (s *Selection) FindClosestGlyph(pageNo int, x, y float64) (int, error) {
	_, coords, err := s.cache.GlyphData(pageNo)
	if err != nil {
		return 0, fmt.Errorf("page %d: %w", pageNo, err)
	}
	textLen := len(coords)
	pt := geom.PointF{X: x, Y: y}
	pti := pt.Trunc()

	maxDist := noDist
	overGlyph := false
	result := -1

	for i, c := range coords {
		if c.IsLineBreak() {
			continue
		}
		inside := c.Contains(pti)
		if overGlyph && !inside {
			continue
		}

		center := c.Center()
		dist := distSq(pti.X-center.X, pti.Y-center.Y)
		if dist < maxDist {
			result = i
			maxDist = dist
		}
		// prefer glyphs the point is actually over
		if !overGlyph && inside {
			overGlyph = true
			result = i
			maxDist = dist
		}
	}

	if result == -1 {
		return 0, nil
	}

	bbox := s.engine.Transform(coords[result].ToF(), pageNo, s.config.Zoom, s.config.Rotation)
	tpt := s.transformPoint(pt, pageNo)
	if tpt.X > bbox.X+0.5*bbox.Dx {
		result++
		// some documents give every glyph of a word the same box
		for result < textLen && coords[result-1] == coords[result] {
			result++
		}
	}
	return result, nil
}

// IsOverGlyph reports whether (x, y) lies inside a glyph's box
func (s *Selection) IsOverGlyph(pageNo int, x, y float64) (bool, error) {
	_, coords, err := s.cache.GlyphData(pageNo)
	if err != nil {
		return false, fmt.Errorf("page %d: %w", pageNo, err)
	}
	ix, err := s.FindClosestGlyph(pageNo, x, y)
	if err != nil {
		return false, err
	}
	pt := geom.PointF{X: x, Y: y}.Trunc()
	// over the right half of a glyph the following index comes back
	if ix == len(coords) || !coords[ix].Contains(pt) {
		ix--
	}
	if ix < 0 {
		return false, nil
	}
	return !coords[ix].IsLineBreak() && coords[ix].Contains(pt), nil
}
