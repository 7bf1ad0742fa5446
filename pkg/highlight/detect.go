package highlight

import (
	"fmt"
	"regexp"
	"strings"
)

// ocgNamePattern matches the name of an optional content group, allowing
// escaped parentheses inside the literal string
var ocgNamePattern = regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:[^\\)]|\\[\s\S])*)\)`)

// detectPDFLayers returns the names of all optional content groups in pdfData
func detectPDFLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	var layers []string
	seen := make(map[string]bool)
	for _, m := range ocgNamePattern.FindAllSubmatch(pdfData, -1) {
		name, err := decodeTextString(unescapePDFString(string(m[1])))
		if err != nil {
			continue
		}
		if !seen[name] {
			seen[name] = true
			layers = append(layers, name)
		}
	}
	return layers, nil
}

// LayerCheckResult contains the results of checking for highlight layers
type LayerCheckResult struct {
	Layers    []string // All detected layers
	HasLayer  bool     // True if a highlight layer with the configured name exists
	LayerName string   // Name of the detected highlight layer (if any)
}

// CheckExistingLayers checks pdfData for a layer named layerName, either
// exactly or with a "(Page N)" suffix
func CheckExistingLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := detectPDFLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayer := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+\)$`, regexp.QuoteMeta(layerName)))
	for _, layer := range layers {
		layer = strings.TrimSpace(layer)
		if layer == layerName || pageLayer.MatchString(layer) {
			result.HasLayer = true
			result.LayerName = layer
			break
		}
	}
	return result, nil
}
