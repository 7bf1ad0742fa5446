package highlight

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/pdfselect/pkg/geom"
	"github.com/gardar/pdfselect/pkg/textsel"
)

// modifyExistingPDF imports one page of inputPDFData per mediabox, scales it
// onto a page of the mediabox size and overlays the highlights.
func modifyExistingPDF(
	inputPDFData []byte,
	boxes []geom.RectF,
	results []*textsel.Result,
	config Config,
) (out []byte, drawn int, err error) {
	// the importer panics on malformed input
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to import PDF pages: %v", r)
		}
	}()

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDFData))

	for i, mb := range boxes {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: mb.Dx, Ht: mb.Dy})

		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, mb.Dx, mb.Dy)

		drawn += drawHighlightLayer(pdf, i, mb, results, config)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), drawn, nil
}
