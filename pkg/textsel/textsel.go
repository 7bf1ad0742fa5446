// Package textsel turns pointer drags over a rendered, paginated document into
// a glyph-accurate text selection.
//
// A Selection sits between a page engine (coordinate transforms and the
// visible page boundary) and a glyph cache (per-page text plus one bounding
// box per character). It borrows both for its whole lifetime and never
// outlives them.
//
// The interaction API is:
//
// - FindClosestGlyph: maps a page-space point to the glyph index under or
// nearest to it (right half of a glyph selects the insertion point after it)
// - StartAt / SelectUpTo: anchor a drag and extend it, possibly across pages
// - Reset: forget the anchor and clear the active result
//
// The outcome is an active Result: one rectangle per visually contiguous run
// of selected glyphs, in page order, optionally with the selected text.
// Finished selections can be committed into a Store so several highlight
// sets can be shown at once.
//
// SelectUpTo accumulates into the active result. Callers driving a drag
// gesture call Reset before replaying the drag from its anchor, typically
// once per pointer move.
package textsel

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/gardar/pdfselect/pkg/geom"
)

const invalid = -1

// Engine is the page engine the selection borrows for geometry
type Engine interface {
	// Transform maps a page-space rectangle to display space for the given
	// zoom level and rotation (in degrees).
	Transform(r geom.RectF, pageNo int, zoom float64, rotation int) geom.RectF
	// PageMediabox returns the visible boundary of a page in page space.
	PageMediabox(pageNo int) geom.RectF
}

// TextCache supplies the glyph layout of a page. The returned slices are
// parallel, one entry per glyph, and must stay unchanged while a selection
// operation runs.
type TextCache interface {
	GlyphData(pageNo int) (text []rune, coords []geom.Rect, err error)
}

// Span is the part of one page covered by a selection, glyphs [Start, End)
type Span struct {
	Page  int
	Start int
	End   int
}

// Selection tracks one interactive text selection
type Selection struct {
	engine Engine
	cache  TextCache
	config Config

	startPage, startGlyph int
	endPage, endGlyph     int

	result *Result
	store  *Store
}

// New creates a selection over the given engine and glyph cache
func New(engine Engine, cache TextCache, config Config) *Selection {
	if config.Zoom == 0 {
		config.Zoom = 1.0
	}
	return &Selection{
		engine:     engine,
		cache:      cache,
		config:     config,
		startPage:  invalid,
		startGlyph: invalid,
		endPage:    invalid,
		endGlyph:   invalid,
		result:     &Result{},
		store:      NewStore(),
	}
}

// Result returns the active result, the one StartAt and SelectUpTo extend
func (s *Selection) Result() *Result { return s.result }

// Store returns the collection of committed results
func (s *Selection) Store() *Store { return s.store }

// IsActive reports whether both anchor and endpoint are set
func (s *Selection) IsActive() bool {
	return s.startPage != invalid && s.startGlyph != invalid &&
		s.endPage != invalid && s.endGlyph != invalid
}

// Reset clears anchor and endpoint and empties the active result
func (s *Selection) Reset() {
	s.startPage, s.startGlyph = invalid, invalid
	s.endPage, s.endGlyph = invalid, invalid
	s.result.Reset()
}

// StartAt anchors the selection. A negative glyph counts from the end of the
// page: -1 is the insertion point after the last glyph.
func (s *Selection) StartAt(pageNo, glyph int) error {
	resolved, err := s.resolveGlyph(pageNo, glyph)
	if err != nil {
		return fmt.Errorf("start selection: %w", err)
	}
	s.startPage, s.startGlyph = pageNo, resolved
	s.logf("selection anchored at page %d glyph %d\n", pageNo, resolved)
	return nil
}

// SelectUpTo extends the selection from the anchor to the given glyph and
// appends the covered runs to the active result. It does not clear geometry
// from earlier calls.
func (s *Selection) SelectUpTo(pageNo, glyph int) error {
	if s.startPage == invalid || s.startGlyph == invalid {
		return ErrNoAnchor
	}
	resolved, err := s.resolveGlyph(pageNo, glyph)
	if err != nil {
		return fmt.Errorf("extend selection: %w", err)
	}

	prevPage, prevGlyph := s.endPage, s.endGlyph
	s.endPage, s.endGlyph = pageNo, resolved

	spans, err := s.Spans()
	if err != nil {
		s.endPage, s.endGlyph = prevPage, prevGlyph
		return fmt.Errorf("extend selection: %w", err)
	}
	kept := s.result.Len()
	for _, sp := range spans {
		if err := s.fillRuns(sp.Page, sp.Start, sp.End-sp.Start, nil); err != nil {
			s.result.truncate(kept)
			s.endPage, s.endGlyph = prevPage, prevGlyph
			return fmt.Errorf("extend selection: %w", err)
		}
	}
	s.logf("selection extended to page %d glyph %d: %d spans, %d rects\n",
		pageNo, resolved, len(spans), s.result.Len())
	return nil
}

// GlyphRange returns the selection normalized so that the from position
// precedes the to position. ok is false until the selection is active.
func (s *Selection) GlyphRange() (fromPage, fromGlyph, toPage, toGlyph int, ok bool) {
	if !s.IsActive() {
		return 0, 0, 0, 0, false
	}
	fromPage = min(s.startPage, s.endPage)
	toPage = max(s.startPage, s.endPage)
	fromGlyph, toGlyph = s.startGlyph, s.endGlyph
	if fromPage == s.endPage {
		fromGlyph, toGlyph = s.endGlyph, s.startGlyph
	}
	if fromPage == toPage && fromGlyph > toGlyph {
		fromGlyph, toGlyph = toGlyph, fromGlyph
	}
	return fromPage, fromGlyph, toPage, toGlyph, true
}

// Spans splits the active selection into per-page glyph ranges. Pages whose
// range would be empty are left out.
func (s *Selection) Spans() ([]Span, error) {
	fromPage, fromGlyph, toPage, toGlyph, ok := s.GlyphRange()
	if !ok {
		return nil, ErrNoAnchor
	}

	var spans []Span
	for page := fromPage; page <= toPage; page++ {
		textLen, err := s.textLen(page)
		if err != nil {
			return nil, err
		}
		start := 0
		if page == fromPage {
			start = fromGlyph
		}
		end := textLen
		if page == toPage {
			end = toGlyph
		}
		if end-start > 0 {
			spans = append(spans, Span{Page: page, Start: start, End: end})
		}
	}
	return spans, nil
}

// ExtractText returns the selected text, one entry per visible run joined by
// lineSep, and stores it on the active result.
func (s *Selection) ExtractText(lineSep string) (string, error) {
	spans, err := s.Spans()
	if err != nil {
		return "", err
	}
	var lines []string
	for _, sp := range spans {
		if err := s.fillRuns(sp.Page, sp.Start, sp.End-sp.Start, &lines); err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
	}
	text := strings.Join(lines, lineSep)
	s.result.SetText(text)
	return text, nil
}

// SelectWordAt replaces the selection with the word around the glyph closest
// to (x, y)
func (s *Selection) SelectWordAt(pageNo int, x, y float64) error {
	s.Reset()
	ix, err := s.FindClosestGlyph(pageNo, x, y)
	if err != nil {
		return err
	}
	text, coords, err := s.cache.GlyphData(pageNo)
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNo, err)
	}
	if len(text) != len(coords) {
		return fmt.Errorf("select word on page %d: %w", pageNo, ErrGlyphData)
	}

	for ; ix > 0; ix-- {
		if !isWordChar(text[ix-1]) {
			break
		}
	}
	if err := s.StartAt(pageNo, ix); err != nil {
		return err
	}
	for ; ix < len(text); ix++ {
		if !isWordChar(text[ix]) {
			break
		}
	}
	return s.SelectUpTo(pageNo, ix)
}

// CopySelection replaces this selection with the range of orig, recomputed
// against this selection's engine and cache
func (s *Selection) CopySelection(orig *Selection) error {
	s.Reset()
	if orig.startPage == invalid || orig.startGlyph == invalid {
		return nil
	}
	if err := s.StartAt(orig.startPage, orig.startGlyph); err != nil {
		return err
	}
	if orig.endPage == invalid || orig.endGlyph == invalid {
		return nil
	}
	return s.SelectUpTo(orig.endPage, orig.endGlyph)
}

// Commit moves a copy of the active result into the store under the given
// color tag, then resets the selection. It returns the stored result's id.
func (s *Selection) Commit(color uint32) (int, error) {
	kept := s.result.clone()
	kept.SetColor(color)
	id, err := s.store.Add(kept)
	if err != nil {
		return 0, err
	}
	s.Reset()
	return id, nil
}

// Close tears down the store. The selection must not be used afterwards.
func (s *Selection) Close() {
	s.store.Close()
	s.Reset()
}

func (s *Selection) resolveGlyph(pageNo, glyph int) (int, error) {
	textLen, err := s.textLen(pageNo)
	if err != nil {
		return 0, err
	}
	if glyph < 0 {
		glyph = textLen + glyph + 1
	}
	if glyph < 0 || glyph > textLen {
		return 0, fmt.Errorf("%w: glyph %d on page %d with %d glyphs",
			ErrOutOfRange, glyph, pageNo, textLen)
	}
	return glyph, nil
}

func (s *Selection) textLen(pageNo int) (int, error) {
	_, coords, err := s.cache.GlyphData(pageNo)
	if err != nil {
		return 0, fmt.Errorf("page %d: %w", pageNo, err)
	}
	return len(coords), nil
}

func (s *Selection) transformPoint(pt geom.PointF, pageNo int) geom.PointF {
	r := s.engine.Transform(geom.RectF{X: pt.X, Y: pt.Y}, pageNo, s.config.Zoom, s.config.Rotation)
	return geom.PointF{X: r.X, Y: r.Y}
}

func distSq(dx, dy int) int {
	return dx*dx + dy*dy
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// noDist is larger than any squared distance between two page points
const noDist = math.MaxInt
