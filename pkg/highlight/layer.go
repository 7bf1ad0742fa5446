package highlight

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/pdfselect/pkg/geom"
	"github.com/gardar/pdfselect/pkg/textsel"
)

// drawHighlightLayer fills the rectangles every result holds for pageNo on
// a layer of the current PDF page. The page's top-left corner is the
// mediabox origin. It returns the number of rectangles drawn.
func drawHighlightLayer(
	pdf *fpdf.Fpdf,
	pageNo int,
	mediabox geom.RectF,
	results []*textsel.Result,
	config Config,
) int {
	style := "F"
	if config.Debug {
		style = "FD"
	}

	drawn := 0
	layerOpen := false
	for _, res := range results {
		rects := res.PageRects(pageNo)
		if len(rects) == 0 {
			continue
		}
		if !layerOpen {
			// 1-based page number in the layer name, matching the PDF page
			layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", config.LayerName, pageNo+1), true)
			pdf.BeginLayer(layer)
			pdf.SetAlpha(config.Alpha, config.BlendMode)
			if config.Debug {
				pdf.SetDrawColor(255, 0, 0) // outline in red
			}
			layerOpen = true
		}

		c := ColorFromTag(res.Color())
		pdf.SetFillColor(c.R, c.G, c.B)
		for _, r := range rects {
			pdf.Rect(float64(r.X)-mediabox.X, float64(r.Y)-mediabox.Y, float64(r.Dx), float64(r.Dy), style)
			drawn++
		}
	}

	if layerOpen {
		pdf.SetAlpha(1.0, "Normal")
		pdf.EndLayer()
	}
	return drawn
}
