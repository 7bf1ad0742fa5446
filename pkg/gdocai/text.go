package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments.
// Segment offsets index the runes of the document text.
func textFromLayout(layout *documentaipb.Document_Page_Layout, runes []rune) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	var sb strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start := clamp(int(seg.StartIndex), 0, len(runes))
		end := clamp(int(seg.EndIndex), start, len(runes))
		sb.WriteString(string(runes[start:end]))
	}
	return sb.String()
}

// anchorRange returns the span of the first text segment of a layout
func anchorRange(layout *documentaipb.Document_Page_Layout) (start, end int64, ok bool) {
	if layout == nil || layout.TextAnchor == nil || len(layout.TextAnchor.TextSegments) == 0 {
		return 0, 0, false
	}
	seg := layout.TextAnchor.TextSegments[0]
	return seg.StartIndex, seg.EndIndex, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
