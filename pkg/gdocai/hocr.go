package gdocai

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pdfselect/pkg/hocr"
)

// ToHOCR converts a Document AI response into an hOCR document with one
// line per Document AI line and one word per token
func ToHOCR(doc *documentaipb.Document) (*hocr.Document, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, ErrNoPages
	}
	runes := []rune(doc.Text)

	lang := getDocumentLanguage(doc)
	if lang == "" {
		lang = "unknown"
	}
	result := &hocr.Document{
		Title:    "Document OCR",
		Language: lang,
		Metadata: map[string]string{
			"ocr-system":          "Document AI OCR",
			"ocr-number-of-pages": fmt.Sprintf("%d", len(doc.Pages)),
			"ocr-capabilities":    "ocr_page ocr_line ocrx_word",
			"ocr-langs":           lang,
		},
		Pages: make([]hocr.Page, 0, len(doc.Pages)),
	}
	for i, page := range doc.Pages {
		pageNumber := int(page.PageNumber)
		if pageNumber == 0 {
			pageNumber = i + 1
		}
		result.Pages = append(result.Pages, convertPage(page, runes, pageNumber))
	}
	return result, nil
}

// convertPage builds an hOCR page whose box is the full page dimension
func convertPage(page *documentaipb.Document_Page, runes []rune, pageNumber int) hocr.Page {
	ocrPage := hocr.Page{
		ID:         fmt.Sprintf("page_%d", pageNumber),
		PageNumber: pageNumber,
	}
	if dim := page.Dimension; dim != nil {
		ocrPage.BBox = hocr.NewBoundingBox(0, 0, float64(dim.Width), float64(dim.Height))
	}

	for lidx, line := range page.Lines {
		ocrLine := hocr.Line{
			ID:   fmt.Sprintf("line_%d_%d", pageNumber, lidx),
			BBox: boundingBox(line.Layout, page.Dimension),
		}
		lineStart, lineEnd, ok := anchorRange(line.Layout)
		if !ok {
			continue
		}

		for tidx, token := range page.Tokens {
			start, end, ok := anchorRange(token.Layout)
			if !ok || start < lineStart || end > lineEnd {
				continue
			}
			text := strings.TrimSpace(textFromLayout(token.Layout, runes))
			if text == "" {
				continue
			}
			word := hocr.Word{
				ID:   fmt.Sprintf("word_%d_%d_%d", pageNumber, lidx, tidx),
				Text: text,
				BBox: boundingBox(token.Layout, page.Dimension),
			}
			if token.Layout != nil {
				word.Confidence = float64(token.Layout.Confidence * 100)
			}
			ocrLine.Words = append(ocrLine.Words, word)
		}

		if len(ocrLine.Words) > 0 {
			ocrPage.Lines = append(ocrPage.Lines, ocrLine)
		}
	}
	return ocrPage
}

// boundingBox converts a layout's polygon to a box in page pixels. Normalized
// vertices (0-1) are scaled by the page dimension, absolute vertices are used
// as they are.
func boundingBox(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) hocr.BoundingBox {
	if layout == nil || layout.BoundingPoly == nil {
		return hocr.BoundingBox{}
	}
	poly := layout.BoundingPoly

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	switch {
	case len(poly.NormalizedVertices) > 0 && dim != nil:
		for _, v := range poly.NormalizedVertices {
			extend(math.Round(float64(v.X*dim.Width)), math.Round(float64(v.Y*dim.Height)))
		}
	case len(poly.Vertices) > 0:
		for _, v := range poly.Vertices {
			extend(float64(v.X), float64(v.Y))
		}
	default:
		return hocr.BoundingBox{}
	}
	return hocr.NewBoundingBox(minX, minY, maxX, maxY)
}

// getDocumentLanguage finds the most common language in the document
// by counting language occurrences across pages and tokens
func getDocumentLanguage(doc *documentaipb.Document) string {
	langCount := make(map[string]int)
	for _, page := range doc.Pages {
		for _, lang := range page.DetectedLanguages {
			langCount[lang.LanguageCode]++
		}
		for _, token := range page.Tokens {
			for _, lang := range token.DetectedLanguages {
				langCount[lang.LanguageCode]++
			}
		}
	}

	var mostCommonLang string
	var highestCount int
	for lang, count := range langCount {
		if count > highestCount || (count == highestCount && lang < mostCommonLang) {
			highestCount = count
			mostCommonLang = lang
		}
	}
	return mostCommonLang
}
