package textsel

import "errors"

var (
	// ErrOutOfRange is returned for page or glyph indices outside a page's text
	ErrOutOfRange = errors.New("glyph index out of range")
	// ErrNoAnchor is returned when a selection is extended before StartAt
	ErrNoAnchor = errors.New("selection has no anchor")
	// ErrGlyphData is returned when a cache returns text and boxes of different lengths
	ErrGlyphData = errors.New("inconsistent glyph data")
	// ErrClosed is returned when adding to a store that was closed
	ErrClosed = errors.New("result store closed")
)
