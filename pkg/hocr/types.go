package hocr

import (
	"github.com/gardar/pdfselect/pkg/geom"
)

// Document represents a parsed hOCR file
type Document struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities and friends
	Pages    []Page            // Pages in document order
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // Physical page number (ppageno), 0 if absent
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates
	Lines      []Line      // Text lines in reading order
}

// Class assigns 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Line is a line of text
type Line struct {
	ID    string      // Unique identifier
	BBox  BoundingBox // Line coordinates
	Words []Word      // Words in this line
}

// Class assigns 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string      // Unique identifier
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // Recognition confidence (0-100)
}

// Class assigns 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// BoundingBox stores hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the top-left (x1, y1) and
// bottom-right (x2, y2) corners
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (b BoundingBox) Width() float64  { return b.X2 - b.X1 }
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Rect converts the box to an origin/extent rectangle
func (b BoundingBox) Rect() geom.RectF {
	return geom.RectF{X: b.X1, Y: b.Y1, Dx: b.Width(), Dy: b.Height()}
}
