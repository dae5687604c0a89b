package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/ui"
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConversion() *display.Conversion {
	return &display.Conversion{
		Source:       "settings.json",
		SourceFormat: "JSON",
		TargetFormat: "YAML",
		Dumper:       "yaml",
		Destination:  "settings.yaml",
		Bytes:        42,
		Written:      true,
		Directive:    map[string]string{"target_format": "yaml", "indent": "4"},
	}
}

func TestNewRenderer(t *testing.T) {
	formats := []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON}
	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(f, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	t.Run("conversion", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, r.RenderConversion(sampleConversion()))
		assert.Equal(t,
			"settings.json (JSON) -> settings.yaml (yaml): wrote 42 bytes\n  directive: indent=4 target_format=yaml\n",
			buf.String())
	})

	t.Run("dry run to stdout", func(t *testing.T) {
		buf.Reset()
		c := sampleConversion()
		c.Destination, c.Written, c.DryRun, c.Directive = "", false, true, nil
		require.NoError(t, r.RenderConversion(c))
		assert.Equal(t, "settings.json (JSON) -> <stdout> (yaml): would write 42 bytes\n", buf.String())
	})

	t.Run("detection", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, r.RenderDetection(&display.Detection{Source: "a.yml", Format: "YAML", Rule: "extension", Found: true}))
		require.NoError(t, r.RenderDetection(&display.Detection{Source: "notes.txt", Rule: "none"}))
		assert.Equal(t, "a.yml: YAML (by extension)\nnotes.txt: format undetermined\n", buf.String())
	})

	t.Run("formats", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, r.RenderFormats(display.Formats()))
		out := buf.String()
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "yaml, yaml-omap")
		assert.Contains(t, out, "Property List")
	})

	t.Run("empty diff", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, r.RenderDiff(""))
		assert.Equal(t, "No differences.\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, r.RenderError(errors.New(errors.ErrIOFailure, "disk full")))
		assert.Equal(t, "Error: [IO_FAILURE] disk full\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderConversion(sampleConversion()))
	out := buf.String()
	assert.Contains(t, out, "settings.json")
	assert.Contains(t, out, "settings.yaml")
	assert.Contains(t, out, "directive: indent=4 target_format=yaml")

	buf.Reset()
	require.NoError(t, r.RenderFormats(display.Formats()))
	assert.Contains(t, buf.String(), "yaml-omap")

	buf.Reset()
	require.NoError(t, r.RenderDiff("--- a\n+++ b\n@@ -1 +1 @@\n-x\n+y\n"))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[4], "+y")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderConversion(sampleConversion()))
	var got display.Conversion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleConversion(), got)

	buf.Reset()
	perr := errors.ParseFailure("unexpected token", 3, 7)
	require.NoError(t, r.RenderError(perr))
	var obj map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	assert.Equal(t, "PARSE_FAILURE", obj["code"])
	details := obj["details"].(map[string]any)
	assert.Equal(t, float64(3), details["line"])
	assert.Equal(t, float64(7), details["column"])
}

func TestDiff(t *testing.T) {
	a := []byte("name: demo\nversion: 1\n")
	b := []byte("name: demo\nversion: 2\n")

	diff, err := ui.Diff(a, b, "old.yaml", "new.yaml")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- old.yaml\n")
	assert.Contains(t, diff, "+++ new.yaml\n")
	assert.Contains(t, diff, "-version: 1\n")
	assert.Contains(t, diff, "+version: 2\n")

	same, err := ui.Diff(a, a, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, same)
}
