package textsel

import (
	"errors"

	"github.com/gardar/pdfselect/pkg/geom"
)

var errNoPage = errors.New("no such page")

type fakePage struct {
	text   []rune
	coords []geom.Rect
	box    geom.RectF
}

// fakeDoc serves as both engine and glyph cache. Transform is the identity.
type fakeDoc struct {
	pages map[int]fakePage
	calls int
	// failAfter makes every GlyphData call after that many fail when > 0
	failAfter int
}

func (d *fakeDoc) GlyphData(pageNo int) ([]rune, []geom.Rect, error) {
	d.calls++
	p, ok := d.pages[pageNo]
	if !ok || (d.failAfter > 0 && d.calls > d.failAfter) {
		return nil, nil, errNoPage
	}
	return p.text, p.coords, nil
}

func (d *fakeDoc) Transform(r geom.RectF, pageNo int, zoom float64, rotation int) geom.RectF {
	return r
}

func (d *fakeDoc) PageMediabox(pageNo int) geom.RectF {
	return d.pages[pageNo].box
}

var letterBox = geom.RectF{X: 0, Y: 0, Dx: 612, Dy: 792}

// lineBreak is the marker entry a cache emits between lines
var lineBreak = geom.Rect{}

// twoLinePage has "abcd" on y=0 and "ef" on y=20 separated by a marker
func twoLinePage() fakePage {
	return fakePage{
		text: []rune("abcd\nef"),
		coords: []geom.Rect{
			{X: 0, Y: 0, Dx: 10, Dy: 12},
			{X: 10, Y: 0, Dx: 10, Dy: 12},
			{X: 20, Y: 0, Dx: 10, Dy: 12},
			{X: 30, Y: 0, Dx: 10, Dy: 12},
			lineBreak,
			{X: 0, Y: 20, Dx: 15, Dy: 12},
			{X: 15, Y: 20, Dx: 10, Dy: 12},
		},
		box: letterBox,
	}
}

// linePage has n glyphs of width 10 on a single line
func linePage(n int) fakePage {
	p := fakePage{box: geom.RectF{Dx: float64(n*10 + 100), Dy: 100}}
	for i := 0; i < n; i++ {
		p.text = append(p.text, rune('a'+i%26))
		p.coords = append(p.coords, geom.Rect{X: i * 10, Y: 0, Dx: 10, Dy: 12})
	}
	return p
}

func newTestSelection(pages map[int]fakePage) (*Selection, *fakeDoc) {
	doc := &fakeDoc{pages: pages}
	return New(doc, doc, DefaultConfig()), doc
}

// recordingEngine forwards to a real engine and remembers the display
// parameters it was asked for
type recordingEngine struct {
	Engine
	zooms     []float64
	rotations []int
}

func (e *recordingEngine) Transform(r geom.RectF, pageNo int, zoom float64, rotation int) geom.RectF {
	e.zooms = append(e.zooms, zoom)
	e.rotations = append(e.rotations, rotation)
	return e.Engine.Transform(r, pageNo, zoom, rotation)
}
