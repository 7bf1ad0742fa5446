package highlight

import (
	"io"
)

// Config holds user options for drawing selection highlights into a PDF
type Config struct {
	Debug       bool      // Outline every highlight rectangle
	Force       bool      // Draw even if a highlight layer already exists
	LayerName   string    // Base name of the highlight layer (page number will be appended)
	Alpha       float64   // Fill opacity of the highlights (0-1)
	BlendMode   string    // PDF blend mode used for the fill
	LogWarnings bool      // Whether to print warnings
	Logger      io.Writer // Custom logger for warnings (nil = stdout)
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Debug:       false,
		Force:       false,
		LayerName:   "Selection", // Will be formatted as "Selection (Page X)" in the final PDF
		Alpha:       0.35,
		BlendMode:   "Multiply",
		LogWarnings: true,
		Logger:      nil, // stdout
	}
}

// DefaultColor is used for results whose color tag is 0
var DefaultColor = RGB{R: 255, G: 221, B: 0}

// RGB is a fill color
type RGB struct {
	R, G, B int
}

// ColorFromTag decodes a 0xRRGGBB color tag, 0 meaning DefaultColor
func ColorFromTag(tag uint32) RGB {
	if tag == 0 {
		return DefaultColor
	}
	return RGB{
		R: int(tag >> 16 & 0xff),
		G: int(tag >> 8 & 0xff),
		B: int(tag & 0xff),
	}
}
