package topics

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "auto", a builtin style name ("dark", "light", "notty") or a style file path
	Width int    // word wrap column, 0 keeps glamour's default

	once sync.Once
	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a markdown renderer that picks its style from the terminal
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) termRenderer() *glamour.TermRenderer {
	r.once.Do(func() {
		var options []glamour.TermRendererOption
		switch r.Style {
		case "", "auto":
			options = append(options, glamour.WithAutoStyle())
		case "dark", "light", "notty", "ascii", "dracula", "pink":
			options = append(options, glamour.WithStandardStyle(r.Style))
		default:
			options = append(options, glamour.WithStylePath(r.Style))
		}
		if r.Width > 0 {
			options = append(options, glamour.WithWordWrap(r.Width))
		}

		term, err := glamour.NewTermRenderer(options...)
		if err == nil {
			r.term = term
		}
	})
	return r.term
}

// Render formats markdown content; other formats, and render failures, fall back to plain text
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	term := r.termRenderer()
	if term == nil {
		return content
	}

	rendered, err := term.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
