// Package ui renders command results in terminal, plain text or JSON form.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/arthur-debert/fileconv/pkg/ui/json"
	"github.com/arthur-debert/fileconv/pkg/ui/terminal"
	"github.com/arthur-debert/fileconv/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderConversion reports a finished conversion
	RenderConversion(c *display.Conversion) error

	// RenderDetection reports the outcome of format detection
	RenderDetection(d *display.Detection) error

	// RenderFormats lists the supported formats
	RenderFormats(list []display.FormatInfo) error

	// RenderDiff prints a unified diff between two documents
	RenderDiff(diff string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto is resolved with
// DetectFormat against output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown output format: %v", format)
	}
}
