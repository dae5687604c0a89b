// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/fileconv/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderConversion prints one line per conversion, plus the directive if any
func (r *Renderer) RenderConversion(c *display.Conversion) error {
	dest := c.Destination
	if dest == "" {
		dest = "<stdout>"
	}

	var verb string
	switch {
	case c.DryRun:
		verb = "would write"
	case c.Unchanged:
		verb = "unchanged,"
	case c.Written:
		verb = "wrote"
	default:
		verb = "converted"
	}

	if _, err := fmt.Fprintf(r.output, "%s (%s) -> %s (%s): %s %d bytes\n",
		c.Source, c.SourceFormat, dest, c.Dumper, verb, c.Bytes); err != nil {
		return err
	}
	if len(c.Directive) > 0 {
		if _, err := fmt.Fprintf(r.output, "  directive: %s\n", JoinOptions(c.Directive)); err != nil {
			return err
		}
	}
	return nil
}

// RenderDetection prints the detected format and the rule that matched
func (r *Renderer) RenderDetection(d *display.Detection) error {
	if !d.Found {
		_, err := fmt.Fprintf(r.output, "%s: format undetermined\n", d.Source)
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s: %s (by %s)\n", d.Source, d.Format, d.Rule)
	return err
}

// RenderFormats prints the supported formats as an aligned table
func (r *Renderer) RenderFormats(list []display.FormatInfo) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXTENSION\tCOMMENT\tDUMPERS")
	for _, f := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Extension, f.Comment, strings.Join(f.Dumpers, ", "))
	}
	return tw.Flush()
}

// RenderDiff prints the diff unchanged
func (r *Renderer) RenderDiff(diff string) error {
	if diff == "" {
		_, err := fmt.Fprintln(r.output, "No differences.")
		return err
	}
	_, err := fmt.Fprint(r.output, diff)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// JoinOptions renders directive options as sorted key=value pairs
func JoinOptions(options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + options[k]
	}
	return strings.Join(parts, " ")
}
