package textsel

import (
	"fmt"
	"io"
	"os"
)

// Config holds the options of a Selection
type Config struct {
	Debug    bool      // Log selection steps
	Logger   io.Writer // Custom logger for debug output (nil = stdout)
	Zoom     float64   // Zoom level passed to Engine.Transform (0 = 1.0)
	Rotation int       // Rotation in degrees passed to Engine.Transform
}

// DefaultConfig returns a config for unzoomed, unrotated pages
func DefaultConfig() Config {
	return Config{
		Debug:    false,
		Logger:   nil, // stdout
		Zoom:     1.0,
		Rotation: 0,
	}
}

// getLogger returns the configured writer, defaulting to os.Stdout
func getLogger(config Config) io.Writer {
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

func (s *Selection) logf(format string, args ...interface{}) {
	if !s.config.Debug {
		return
	}
	fmt.Fprintf(getLogger(s.config), "textsel: "+format, args...)
}
