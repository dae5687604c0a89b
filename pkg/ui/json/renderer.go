// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/tidwall/pretty"
)

// Renderer provides JSON output for machine consumption. Each call writes
// one indented JSON document.
type Renderer struct {
	output io.Writer
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.output.Write(pretty.PrettyOptions(data, &pretty.Options{Indent: "  ", Width: 80}))
	return err
}

// RenderConversion renders the conversion summary
func (r *Renderer) RenderConversion(c *display.Conversion) error {
	return r.write(c)
}

// RenderDetection renders the detection outcome
func (r *Renderer) RenderDetection(d *display.Detection) error {
	return r.write(d)
}

// RenderFormats renders the format list
func (r *Renderer) RenderFormats(list []display.FormatInfo) error {
	return r.write(map[string]any{"formats": list})
}

// RenderDiff renders the diff as a single string field
func (r *Renderer) RenderDiff(diff string) error {
	return r.write(map[string]any{"diff": diff, "identical": diff == ""})
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	obj := map[string]any{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.write(obj)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(map[string]string{"message": msg})
}
