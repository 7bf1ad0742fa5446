// Package hocr parses hOCR, the HTML-based format OCR engines use to report
// recognized text together with its position on the page.
//
// Only the parts needed to rebuild a page's text layout are kept: pages,
// text lines and words, each with its bounding box. Content areas and
// paragraphs are flattened away, so a Page holds its lines in document
// order no matter how deeply the engine nested them.
//
// Key Types:
//
// - Document: a parsed hOCR file
// - Page: one element with class 'ocr_page'
// - Line: one text line ('ocr_line', 'ocr_caption', 'ocr_header', 'ocr_textfloat')
// - Word: one element with class 'ocrx_word'
// - BoundingBox: the 'bbox' property of an element
//
// Main Functions:
//
// - ParseHOCR: parses raw hOCR into a Document
// - ParseTitle / ParseBoundingBoxFromTitle: decode hOCR title properties
package hocr
