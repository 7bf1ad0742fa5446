// Package glyphcache derives per-glyph positions from OCR word boxes and
// serves them to a text selection.
//
// OCR output only positions whole words, so each word's box is split evenly
// across its characters. The gap between two words of a line becomes a space
// glyph and consecutive lines are separated by a line-break marker: a '\n'
// whose box has zero origin x and zero width. Pages are addressed by their
// zero-based index in the document and laid out on first use.
package glyphcache

import (
	"errors"
	"fmt"
	"math"

	"github.com/gardar/pdfselect/pkg/geom"
	"github.com/gardar/pdfselect/pkg/hocr"
)

// ErrNoSuchPage is returned for page indices outside the document
var ErrNoSuchPage = errors.New("no such page")

type pageData struct {
	text   []rune
	coords []geom.Rect
}

// Cache holds the glyph layout of every page of an hOCR document
type Cache struct {
	doc   *hocr.Document
	pages []*pageData
}

// New creates a cache over doc. The document must not change afterwards.
func New(doc *hocr.Document) *Cache {
	return &Cache{
		doc:   doc,
		pages: make([]*pageData, len(doc.Pages)),
	}
}

// PageCount returns the number of pages
func (c *Cache) PageCount() int { return len(c.pages) }

// GlyphData returns the text of a page and one box per rune
func (c *Cache) GlyphData(pageNo int) ([]rune, []geom.Rect, error) {
	if pageNo < 0 || pageNo >= len(c.pages) {
		return nil, nil, fmt.Errorf("%w: %d of %d", ErrNoSuchPage, pageNo, len(c.pages))
	}
	if c.pages[pageNo] == nil {
		c.pages[pageNo] = layoutPage(c.doc.Pages[pageNo])
	}
	p := c.pages[pageNo]
	return p.text, p.coords, nil
}

// Text returns the whole text of a page
func (c *Cache) Text(pageNo int) (string, error) {
	text, _, err := c.GlyphData(pageNo)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// Mediaboxes returns the page boxes in page order
func (c *Cache) Mediaboxes() []geom.RectF {
	boxes := make([]geom.RectF, len(c.doc.Pages))
	for i, p := range c.doc.Pages {
		boxes[i] = p.BBox.Rect()
	}
	return boxes
}

func layoutPage(page hocr.Page) *pageData {
	p := &pageData{}
	for _, line := range page.Lines {
		first := true
		var prev geom.Rect
		for _, word := range line.Words {
			runes := []rune(word.Text)
			if len(runes) == 0 {
				continue
			}
			if first && len(p.text) > 0 {
				p.add('\n', geom.Rect{})
			}
			box := word.BBox
			if !first {
				p.add(' ', gapBox(prev, box))
			}
			first = false

			n := float64(len(runes))
			for i, r := range runes {
				x1 := round(box.X1 + box.Width()*float64(i)/n)
				x2 := round(box.X1 + box.Width()*float64(i+1)/n)
				// a zero-width box at x=0 would read as a line break
				x2 = max(x2, x1+1)
				p.add(r, geom.NewRect(x1, round(box.Y1), x2, round(box.Y2)))
			}
			prev = geom.NewRect(round(box.X1), round(box.Y1), round(box.X2), round(box.Y2))
		}
	}
	return p
}

// gapBox spans the horizontal space between two words of a line
func gapBox(prev geom.Rect, next hocr.BoundingBox) geom.Rect {
	x1 := prev.X + prev.Dx
	x2 := max(x1, round(next.X1))
	y1 := min(prev.Y, round(next.Y1))
	y2 := max(prev.Y+prev.Dy, round(next.Y2))
	return geom.Rect{X: x1, Y: y1, Dx: x2 - x1, Dy: y2 - y1}
}

func (p *pageData) add(r rune, box geom.Rect) {
	p.text = append(p.text, r)
	p.coords = append(p.coords, box)
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
