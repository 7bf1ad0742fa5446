package highlight

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/pdfselect/pkg/geom"
	"github.com/gardar/pdfselect/pkg/textsel"
)

// createHighlightPDF builds a new PDF with one blank page per mediabox and
// the highlights drawn on top. Inputs are validated by the caller.
func createHighlightPDF(boxes []geom.RectF, results []*textsel.Result, config Config) ([]byte, int, error) {
	pdf := fpdf.New("P", "pt", "A4", "")

	drawn := 0
	for i, mb := range boxes {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: mb.Dx, Ht: mb.Dy})
		drawn += drawHighlightLayer(pdf, i, mb, results, config)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), drawn, nil
}
