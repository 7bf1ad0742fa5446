// Package gdocai turns Google Document AI OCR results into hOCR documents
// whose word boxes can back a text selection.
//
// A Document AI response carries the full document text once, and every
// page element (line, token) points into it through text anchors. Positions
// are normalized to the page (0-1) and scaled here by the page dimension, so
// the resulting boxes share the coordinate space of the page image.
//
// Main Functions:
//
// - ProcessDocument: sends a PDF to Google Document AI for processing
// - LoadDocument: reads a Document AI response saved as JSON
// - ToHOCR: converts a Document AI response into an hocr.Document
//
// Usage Requirements (ProcessDocument only):
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS or Config.CredentialsFile
package gdocai

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/gardar/pdfselect/pkg/hocr"
)

// ErrNoPages is returned for responses without pages
var ErrNoPages = errors.New("Document AI response contains no pages")

// LoadDocument parses a Document AI Document saved as JSON, as written by
// ToJSON or by the Document AI console
func LoadDocument(data []byte) (*documentaipb.Document, error) {
	doc := &documentaipb.Document{}
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := opts.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse Document AI JSON: %w", err)
	}
	return doc, nil
}

// ProcessToHOCR processes a PDF with Document AI and converts the result.
// It returns the raw response too, for callers that want to keep it.
func ProcessToHOCR(ctx context.Context, pdfBytes []byte, cfg *Config) (*hocr.Document, *documentaipb.Document, error) {
	raw, err := ProcessDocument(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, nil, err
	}
	doc, err := ToHOCR(raw)
	if err != nil {
		return nil, raw, err
	}
	return doc, raw, nil
}
