// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/output/styles"
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/arthur-debert/fileconv/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderConversion reports a conversion with the formats and paths highlighted
func (r *Renderer) RenderConversion(c *display.Conversion) error {
	dest := c.Destination
	if dest == "" {
		dest = "<stdout>"
	}

	status := styles.Render("Success", "✓")
	switch {
	case c.DryRun:
		status = styles.Render("Warning", "~")
	case c.Unchanged:
		status = styles.Render("Muted", "=")
	}

	line := fmt.Sprintf("%s %s %s → %s %s  %s",
		status,
		styles.Render("FilePath", c.Source),
		styles.Render("Format", c.SourceFormat),
		styles.Render("FilePath", dest),
		styles.Render("Format", c.Dumper),
		styles.Render("Muted", fmt.Sprintf("%d bytes", c.Bytes)),
	)
	if _, err := fmt.Fprintln(r.output, line); err != nil {
		return err
	}

	if len(c.Directive) > 0 {
		if _, err := fmt.Fprintln(r.output, styles.Render("Muted", "  directive: "+text.JoinOptions(c.Directive))); err != nil {
			return err
		}
	}
	if c.DryRun {
		if _, err := fmt.Fprintln(r.output, styles.Render("DryRunBanner", "DRY RUN - nothing was written")); err != nil {
			return err
		}
	}
	return nil
}

// RenderDetection reports the detected format and the rule that matched
func (r *Renderer) RenderDetection(d *display.Detection) error {
	if !d.Found {
		_, err := fmt.Fprintf(r.output, "%s %s\n",
			styles.Render("FilePath", d.Source),
			styles.Render("Warning", "format undetermined"))
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s %s %s\n",
		styles.Render("FilePath", d.Source),
		styles.Render("Format", d.Format),
		styles.Render("Rule", "by "+d.Rule))
	return err
}

// RenderFormats prints the supported formats as a table
func (r *Renderer) RenderFormats(list []display.FormatInfo) error {
	data := pterm.TableData{{"Name", "Extension", "Classifier", "Comment", "Dumpers"}}
	for _, f := range list {
		classifier := f.Classifier
		if classifier == "" {
			classifier = "-"
		}
		data = append(data, []string{f.Name, f.Extension, classifier, f.Comment, strings.Join(f.Dumpers, ", ")})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

// RenderDiff prints a unified diff with added and removed lines colored
func (r *Renderer) RenderDiff(diff string) error {
	if diff == "" {
		_, err := fmt.Fprintln(r.output, styles.Render("Muted", "No differences."))
		return err
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			body = styles.Render("Header", body)
		case strings.HasPrefix(line, "@@"):
			body = styles.Render("DiffHunk", body)
		case strings.HasPrefix(line, "+"):
			body = styles.Render("DiffAdded", body)
		case strings.HasPrefix(line, "-"):
			body = styles.Render("DiffRemoved", body)
		}
		if _, err := fmt.Fprintln(r.output, body); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}
