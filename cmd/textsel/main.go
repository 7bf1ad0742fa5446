// textsel is a command-line tool for selecting text on OCR'd document pages
// the way a viewer does with a mouse drag, and exporting the result.
//
// Glyph positions come from hOCR, from a saved Google Document AI response,
// or from processing a PDF with Document AI directly. The selection is given
// either as glyph positions or as page points (in page-image pixels), and
// can be written out as highlight rectangles (JSON), as text, or drawn into a
// PDF as a highlight layer.
//
// Usage:
//
//	textsel -hocr document.hocr -from 1:120,340 -to 2:400,90 [options]
//
// Input options (one required):
//
//	-hocr string         Path to an hOCR file
//	-docai-json string   Path to a saved Document AI response (JSON)
//	-pdf string          Path to a PDF; processed with Document AI when -config is set
//	-config string       Path to the Document AI YAML configuration
//
// Selection options (pages are 1-based):
//
//	-start page:glyph    Anchor at a glyph (negative counts from the end of the page)
//	-end page:glyph      Extend to a glyph
//	-from page:x,y       Anchor at the glyph closest to a point
//	-to page:x,y         Extend to the glyph closest to a point
//	-word page:x,y       Select the word at a point
//
// Output options (at least one required):
//
//	-rects string        Path to save the highlight rectangles as JSON
//	-text string         Path to save the selected text
//	-output string       Path to save a PDF with the highlights (drawn over -pdf when given)
//
// Examples:
//
//	textsel -hocr scan.hocr -start 1:0 -end 1:-1 -text page1.txt
//	textsel -hocr scan.hocr -pdf scan.pdf -from 1:100,200 -to 1:900,260 -output highlighted.pdf
//	textsel -config config.yml -pdf scan.pdf -word 1:300,410 -rects word.json -debug-api api.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gardar/pdfselect/pkg/gdocai"
	"github.com/gardar/pdfselect/pkg/glyphcache"
	"github.com/gardar/pdfselect/pkg/highlight"
	"github.com/gardar/pdfselect/pkg/hocr"
	"github.com/gardar/pdfselect/pkg/render"
	"github.com/gardar/pdfselect/pkg/textsel"
)

func main() {
	hocrPath := flag.String("hocr", "", "Path to an hOCR file")
	docaiJSONPath := flag.String("docai-json", "", "Path to a saved Document AI response (JSON)")
	pdfPath := flag.String("pdf", "", "Path to a PDF (processed with Document AI when -config is set, highlighted with -output)")
	configPath := flag.String("config", "", "Path to the Document AI config YAML file")

	start := flag.String("start", "", "Anchor glyph as page:glyph")
	end := flag.String("end", "", "End glyph as page:glyph")
	from := flag.String("from", "", "Anchor point as page:x,y")
	to := flag.String("to", "", "End point as page:x,y")
	word := flag.String("word", "", "Select the word at page:x,y")

	rectsPath := flag.String("rects", "", "Path to save highlight rectangles as JSON")
	textPath := flag.String("text", "", "Path to save the selected text")
	outputPath := flag.String("output", "", "Path to save the highlighted PDF")
	debugAPIPath := flag.String("debug-api", "", "Path to save the Document AI response as JSON")
	lineSep := flag.String("line-sep", "\n", "Separator between selected lines in -text output")
	color := flag.String("color", "", "Highlight color as RRGGBB (default yellow)")
	zoom := flag.Float64("zoom", 1.0, "Zoom level used for hit-testing")
	rotation := flag.Int("rotation", 0, "Page rotation in degrees used for hit-testing")
	force := flag.Bool("force", false, "Draw highlights even if the PDF already has a highlight layer")
	overwrite := flag.Bool("overwrite", false, "Overwrite output files if they exist")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	sources := 0
	for _, s := range []string{*hocrPath, *docaiJSONPath, *configPath} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		fmt.Fprintln(os.Stderr, "Error: Exactly one of -hocr, -docai-json or -config (with -pdf) must be provided")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *configPath != "" && *pdfPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config requires -pdf")
		os.Exit(1)
	}
	if *rectsPath == "" && *textPath == "" && *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: At least one output flag must be provided (-rects, -text or -output)")
		flag.PrintDefaults()
		os.Exit(1)
	}
	for _, p := range []string{*rectsPath, *textPath, *outputPath, *debugAPIPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil && !*overwrite {
			fmt.Printf("Output file %s already exists. Use -overwrite to overwrite.\n", p)
			os.Exit(1)
		}
	}

	colorTag, err := parseColor(*color)
	if err != nil {
		log.Fatalf("Invalid -color: %v", err)
	}
	plan, err := parseSelection(*start, *end, *from, *to, *word)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	var pdfBytes []byte
	if *pdfPath != "" {
		pdfBytes, err = os.ReadFile(*pdfPath)
		if err != nil {
			log.Fatalf("Failed to read PDF file: %v", err)
		}
	}

	// Load the glyph source
	var doc *hocr.Document
	switch {
	case *hocrPath != "":
		data, err := os.ReadFile(*hocrPath)
		if err != nil {
			log.Fatalf("Failed to read hOCR file: %v", err)
		}
		if doc, err = hocr.ParseHOCR(data); err != nil {
			log.Fatalf("Failed to parse hOCR: %v", err)
		}
	case *docaiJSONPath != "":
		data, err := os.ReadFile(*docaiJSONPath)
		if err != nil {
			log.Fatalf("Failed to read Document AI JSON: %v", err)
		}
		raw, err := gdocai.LoadDocument(data)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if doc, err = gdocai.ToHOCR(raw); err != nil {
			log.Fatalf("Failed to convert Document AI response: %v", err)
		}
	default:
		cfg, err := gdocai.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		fmt.Println("Processing PDF with Document AI:", *pdfPath)
		d, raw, err := gdocai.ProcessToHOCR(context.Background(), pdfBytes, cfg)
		if err != nil {
			log.Fatalf("Error processing document: %v", err)
		}
		doc = d
		if *debugAPIPath != "" {
			js, err := gdocai.ToJSON(raw)
			if err != nil {
				log.Fatalf("Failed to encode API response: %v", err)
			}
			writeFile(*debugAPIPath, []byte(js))
		}
	}

	cache := glyphcache.New(doc)
	boxes := cache.Mediaboxes()
	engine := render.New(boxes...)

	selCfg := textsel.DefaultConfig()
	selCfg.Debug = *debug
	selCfg.Zoom = *zoom
	selCfg.Rotation = *rotation
	sel := textsel.New(engine, cache, selCfg)
	defer sel.Close()

	if err := plan.apply(sel); err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	text, err := sel.ExtractText(*lineSep)
	if err != nil {
		log.Fatalf("Failed to extract text: %v", err)
	}
	fmt.Printf("Selected %d rectangles, %d characters\n", sel.Result().Len(), len([]rune(text)))

	id, err := sel.Commit(colorTag)
	if err != nil {
		log.Fatalf("Failed to keep selection: %v", err)
	}
	result, _ := sel.Store().Get(id)

	if *rectsPath != "" {
		js, err := gdocai.ToJSON(rectsJSON(result))
		if err != nil {
			log.Fatalf("Failed to encode rectangles: %v", err)
		}
		writeFile(*rectsPath, []byte(js))
	}
	if *textPath != "" {
		writeFile(*textPath, []byte(text))
	}
	if *outputPath != "" {
		hlCfg := highlight.DefaultConfig()
		hlCfg.Debug = *debug
		hlCfg.Force = *force

		var out []byte
		if pdfBytes != nil {
			out, err = highlight.Apply(pdfBytes, boxes, hlCfg, result)
		} else {
			out, err = highlight.Render(boxes, hlCfg, result)
		}
		if err != nil {
			log.Fatalf("Failed to draw highlights: %v", err)
		}
		writeFile(*outputPath, out)
	}
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0666); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Println("Saved:", path)
}
