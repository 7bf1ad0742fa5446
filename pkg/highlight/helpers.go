package highlight

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// unescapePDFString resolves the backslash escapes of a PDF literal string
func unescapePDFString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// decodeTextString decodes a PDF text string, which is UTF-16BE when it
// starts with a byte order mark and PDFDocEncoding (close to Latin-1) otherwise
func decodeTextString(s string) (string, error) {
	if len(s) < 2 || s[0] != '\xfe' || s[1] != '\xff' {
		return s, nil
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.String(s)
	if err != nil {
		return "", fmt.Errorf("invalid UTF-16 text string: %w", err)
	}
	return out, nil
}

// getLogger returns the appropriate io.Writer to use for logging
// based on the configuration settings, defaulting to os.Stdout if nil.
func getLogger(config Config) io.Writer {
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

func (c Config) warnf(format string, args ...interface{}) {
	if !c.LogWarnings {
		return
	}
	fmt.Fprintf(getLogger(c), "Warning: "+format+"\n", args...)
}
