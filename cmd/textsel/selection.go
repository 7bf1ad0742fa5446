package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gardar/pdfselect/pkg/textsel"
)

// position is a selection endpoint given on the command line. Pages are
// 1-based on the command line and 0-based once parsed.
type position struct {
	page    int
	glyph   int
	x, y    float64
	isPoint bool
	set     bool
}

type selectionPlan struct {
	word       position
	start, end position
}

// rect is the JSON shape of one highlight rectangle
type rect struct {
	Page   int `json:"page"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func parseSelection(start, end, from, to, word string) (*selectionPlan, error) {
	plan := &selectionPlan{}
	var err error

	if word != "" {
		if start != "" || end != "" || from != "" || to != "" {
			return nil, errors.New("-word cannot be combined with -start/-end/-from/-to")
		}
		if plan.word, err = parsePoint(word); err != nil {
			return nil, fmt.Errorf("-word: %w", err)
		}
		return plan, nil
	}

	switch {
	case start != "" && from != "":
		return nil, errors.New("only one of -start and -from can be provided")
	case start != "":
		plan.start, err = parseGlyph(start)
	case from != "":
		plan.start, err = parsePoint(from)
	default:
		return nil, errors.New("a selection is required (-start, -from or -word)")
	}
	if err != nil {
		return nil, fmt.Errorf("selection start: %w", err)
	}

	switch {
	case end != "" && to != "":
		return nil, errors.New("only one of -end and -to can be provided")
	case end != "":
		plan.end, err = parseGlyph(end)
	case to != "":
		plan.end, err = parsePoint(to)
	default:
		// select to the end of the anchor page
		plan.end = position{page: plan.start.page, glyph: -1, set: true}
	}
	if err != nil {
		return nil, fmt.Errorf("selection end: %w", err)
	}
	return plan, nil
}

// parseGlyph parses "page:glyph"
func parseGlyph(s string) (position, error) {
	pageStr, glyphStr, ok := strings.Cut(s, ":")
	if !ok {
		return position{}, fmt.Errorf("expected page:glyph, got %q", s)
	}
	page, err := parsePage(pageStr)
	if err != nil {
		return position{}, err
	}
	glyph, err := strconv.Atoi(strings.TrimSpace(glyphStr))
	if err != nil {
		return position{}, fmt.Errorf("invalid glyph %q", glyphStr)
	}
	return position{page: page, glyph: glyph, set: true}, nil
}

// parsePoint parses "page:x,y"
func parsePoint(s string) (position, error) {
	pageStr, xy, ok := strings.Cut(s, ":")
	if !ok {
		return position{}, fmt.Errorf("expected page:x,y, got %q", s)
	}
	page, err := parsePage(pageStr)
	if err != nil {
		return position{}, err
	}
	xStr, yStr, ok := strings.Cut(xy, ",")
	if !ok {
		return position{}, fmt.Errorf("expected page:x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xStr), 64)
	if err != nil {
		return position{}, fmt.Errorf("invalid x %q", xStr)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(yStr), 64)
	if err != nil {
		return position{}, fmt.Errorf("invalid y %q", yStr)
	}
	return position{page: page, x: x, y: y, isPoint: true, set: true}, nil
}

func parsePage(s string) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page %q (pages start at 1)", s)
	}
	return page - 1, nil
}

// parseColor parses RRGGBB (optionally prefixed with #), empty meaning the
// default highlight color
func parseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0, nil
	}
	if len(s) != 6 {
		return 0, fmt.Errorf("expected RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("expected RRGGBB, got %q", s)
	}
	return uint32(v), nil
}

func (p position) resolve(sel *textsel.Selection) (int, error) {
	if !p.isPoint {
		return p.glyph, nil
	}
	return sel.FindClosestGlyph(p.page, p.x, p.y)
}

func (p *selectionPlan) apply(sel *textsel.Selection) error {
	if p.word.set {
		return sel.SelectWordAt(p.word.page, p.word.x, p.word.y)
	}

	startGlyph, err := p.start.resolve(sel)
	if err != nil {
		return err
	}
	if err := sel.StartAt(p.start.page, startGlyph); err != nil {
		return err
	}
	endGlyph, err := p.end.resolve(sel)
	if err != nil {
		return err
	}
	return sel.SelectUpTo(p.end.page, endGlyph)
}

func rectsJSON(r *textsel.Result) []rect {
	out := make([]rect, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		rc := r.Rect(i)
		out = append(out, rect{
			Page:   r.Page(i) + 1,
			X:      rc.X,
			Y:      rc.Y,
			Width:  rc.Dx,
			Height: rc.Dy,
		})
	}
	return out
}
