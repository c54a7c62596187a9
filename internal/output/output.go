// Package output renders command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format defines the output format for CLI commands.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// globalFormat is set by the root command's --output flag.
var globalFormat = FormatText

// SetFormat sets the global output format. Unknown values fall back to text.
func SetFormat(format string) {
	switch Format(format) {
	case FormatJSON, FormatYAML:
		globalFormat = Format(format)
	default:
		globalFormat = FormatText
	}
}

// GetFormat returns the current global output format.
func GetFormat() Format {
	return globalFormat
}

// IsStructured reports whether results should be printed as data
// instead of human-readable text.
func IsStructured() bool {
	return globalFormat == FormatJSON || globalFormat == FormatYAML
}

// Print writes data to stdout in the configured structured format.
func Print(data any) error {
	format := globalFormat
	if format == FormatText {
		format = FormatYAML
	}
	return To(os.Stdout, format, data)
}

// To writes data to the given writer in the specified format.
func To(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
