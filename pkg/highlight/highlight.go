// Package highlight draws text selection results into PDF documents.
//
// Each page that carries highlights gets its own optional content layer,
// named "<LayerName> (Page N)", so the highlights can be toggled in
// compatible PDF readers. Rectangles are filled with the color given by the
// result's color tag, translucently and with a multiply blend so the text
// underneath stays readable.
//
// Page geometry comes from the mediaboxes the selection was computed against:
// every output page has the size of its mediabox, and highlight rectangles
// are placed relative to the mediabox origin.
//
// Main Functions:
//
// - Render: creates a new PDF with blank pages and the highlights
// - Apply: overlays the highlights onto the pages of an existing PDF
// - CheckExistingLayers: detects highlight layers from an earlier run
package highlight

import (
	"errors"
	"fmt"

	"github.com/gardar/pdfselect/pkg/geom"
	"github.com/gardar/pdfselect/pkg/textsel"
)

// ErrLayerExists is returned by Apply when the input already carries a
// highlight layer and Config.Force is not set
var ErrLayerExists = errors.New("highlight layer already exists")

// Render creates a PDF with one blank page per mediabox and draws the
// rectangles of every result onto it
func Render(boxes []geom.RectF, config Config, results ...*textsel.Result) ([]byte, error) {
	if err := validate(boxes, config); err != nil {
		return nil, err
	}
	out, drawn, err := createHighlightPDF(boxes, results, config)
	if err != nil {
		return nil, fmt.Errorf("error creating highlight PDF: %w", err)
	}
	if config.Debug {
		fmt.Fprintf(getLogger(config), "Drew %d highlight rectangles on %d pages\n", drawn, len(boxes))
	}
	return out, nil
}

// Apply overlays the rectangles of every result onto the pages of an
// existing PDF. The first len(boxes) pages are imported.
func Apply(inputPDFData []byte, boxes []geom.RectF, config Config, results ...*textsel.Result) ([]byte, error) {
	if len(inputPDFData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if err := validate(boxes, config); err != nil {
		return nil, err
	}

	layerResult, err := CheckExistingLayers(inputPDFData, config.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	if config.Debug && len(layerResult.Layers) > 0 {
		fmt.Fprintln(getLogger(config), "Existing layers detected in PDF:")
		for i, layer := range layerResult.Layers {
			fmt.Fprintf(getLogger(config), "  %d. %q\n", i+1, layer)
		}
	}

	// Enforce safety check unless force override is requested
	if layerResult.HasLayer && !config.Force {
		return nil, fmt.Errorf("%w: '%s' (use -force to draw again)", ErrLayerExists, layerResult.LayerName)
	} else if layerResult.HasLayer {
		config.warnf("file already has highlights (layer '%s'); drawing them again due to -force", layerResult.LayerName)
	}

	out, drawn, err := modifyExistingPDF(inputPDFData, boxes, results, config)
	if err != nil {
		return nil, fmt.Errorf("error modifying existing PDF: %w", err)
	}
	if config.Debug {
		fmt.Fprintf(getLogger(config), "Drew %d highlight rectangles on %d pages\n", drawn, len(boxes))
	}
	return out, nil
}

func validate(boxes []geom.RectF, config Config) error {
	if len(boxes) == 0 {
		return fmt.Errorf("no pages to draw on")
	}
	for i, mb := range boxes {
		if mb.IsEmpty() {
			return fmt.Errorf("page %d has an empty mediabox", i+1)
		}
	}
	if config.Alpha < 0 || config.Alpha > 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %v", config.Alpha)
	}
	return nil
}
