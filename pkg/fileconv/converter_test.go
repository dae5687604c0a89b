// TEST TYPE: Integration
// DEPENDENCIES: afero in-memory filesystem
// PURPOSE: Exercise full conversions from source file to written destination
package fileconv_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/fileconv/pkg/config"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/fileconv"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `name: Example
scopeName: source.example
patterns:
  - match: '\bfoo\b'
    name: keyword.foo
  - include: '#strings'
`

func newConverter(t *testing.T, files map[string]string) (*fileconv.Converter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fileconv.New(fileconv.WithFS(fs), fileconv.WithConfig(config.Default())), fs
}

func TestConvertFileAppendixRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, fs := newConverter(t, map[string]string{"/work/example.yaml": exampleYAML})

	res, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/work/example.yaml", TargetFormat: "plist"})
	require.NoError(t, err)
	assert.Equal(t, "/work/example.PLIST-yaml", res.DestPath)
	assert.Equal(t, formats.YAML, res.SourceFormat.Kind)
	assert.Equal(t, formats.Plist, res.TargetFormat.Kind)

	written, err := afero.ReadFile(fs, "/work/example.PLIST-yaml")
	require.NoError(t, err)
	assert.Equal(t, res.Text, written)

	// the appendix identifies the file as a property list on the way back
	back, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/work/example.PLIST-yaml", TargetFormat: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, "/work/example.yaml", back.DestPath)

	original, err := fileconv.Load([]byte(exampleYAML), formats.YAML)
	require.NoError(t, err)
	final, err := afero.ReadFile(fs, "/work/example.yaml")
	require.NoError(t, err)
	reloaded, err := fileconv.Load(final, formats.YAML)
	require.NoError(t, err)
	if diff := cmp.Diff(original, reloaded); diff != "" {
		t.Errorf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestConvertKeepsKeyOrderAcrossFormats(t *testing.T) {
	ctx := context.Background()
	src := `{"zeta": 1, "alpha": {"b": true, "a": [1.5, "x"]}, "mid": "m"}`
	c, _ := newConverter(t, map[string]string{"/a.json": src})

	want, err := fileconv.Load([]byte(src), formats.JSON)
	require.NoError(t, err)

	text := []byte(src)
	kind := formats.JSON
	for _, next := range []formats.Kind{formats.YAML, formats.Plist, formats.JSON} {
		res, err := c.Convert(ctx, fileconv.Request{Source: text, SourceFormat: kind.String(), TargetFormat: next.String()})
		require.NoError(t, err, "%s -> %s", kind, next)
		text, kind = res.Text, next
	}

	got, err := fileconv.Load(text, formats.JSON)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("key order or values changed (-want +got):\n%s", diff)
	}
}

func TestConvertNonFiniteFloatsRoundTrip(t *testing.T) {
	c, _ := newConverter(t, nil)
	ctx := context.Background()
	src := []byte("x: .nan\ny: .inf\nz: -.inf\n")

	toJSON, err := c.Convert(ctx, fileconv.Request{Source: src, SourceFormat: "yaml", TargetFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"x\": NaN,\n    \"y\": Infinity,\n    \"z\": -Infinity\n}\n", string(toJSON.Text))

	back, err := c.Convert(ctx, fileconv.Request{Source: toJSON.Text, SourceFormat: "json", TargetFormat: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, string(src), string(back.Text))
}

func TestConvertTargetDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("directive", func(t *testing.T) {
		c, _ := newConverter(t, map[string]string{
			"/s.yaml": "# [fileconv] target_format: json, ext: sublime-settings, indent: 2\na: 1\n",
		})
		res, err := c.Convert(ctx, fileconv.Request{SourcePath: "/s.yaml"})
		require.NoError(t, err)
		assert.Equal(t, formats.JSON, res.TargetFormat.Kind)
		assert.Equal(t, "/s.sublime-settings", res.DestPath)
		assert.Equal(t, "{\n  \"a\": 1\n}\n", string(res.Text))
		require.NotNil(t, res.Directive)
	})

	t.Run("request beats directive", func(t *testing.T) {
		c, _ := newConverter(t, map[string]string{
			"/s.yaml": "# [fileconv] target_format: json, indent: 2\na: 1\n",
		})
		res, err := c.Convert(ctx, fileconv.Request{
			SourcePath:   "/s.yaml",
			TargetFormat: "yaml-omap",
			Params:       params.Params{"indent": 4},
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrIdenticalFormats))
		assert.Nil(t, res)

		res, err = c.Convert(ctx, fileconv.Request{
			SourcePath:   "/s.yaml",
			TargetFormat: "json",
			Params:       params.Params{"indent": 0},
		})
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":1}\n", string(res.Text))
	})

	t.Run("configured default", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/a.json", []byte(`{"a": 1}`), 0644))
		cfg := config.Default()
		cfg.TargetFormat = "yaml"
		c := fileconv.New(fileconv.WithFS(fs), fileconv.WithConfig(cfg))

		res, err := c.Convert(ctx, fileconv.Request{SourcePath: "/a.json"})
		require.NoError(t, err)
		assert.Equal(t, "a: 1\n", string(res.Text))
		assert.Equal(t, "/a.YAML-json", res.DestPath)

		cfg.TargetFormat = "json"
		_, err = c.Convert(ctx, fileconv.Request{SourcePath: "/a.json"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrIdenticalFormats))
	})

	t.Run("undetermined", func(t *testing.T) {
		c, _ := newConverter(t, map[string]string{"/a.json": `{"a": 1}`})
		_, err := c.Convert(ctx, fileconv.Request{SourcePath: "/a.json"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrTargetUndetermined, errors.GetErrorCode(err))
		assert.Equal(t, []string{"yaml", "plist"}, errors.GetErrorDetails(err)[errors.DetailChoices])
	})
}

func TestConvertErrors(t *testing.T) {
	ctx := context.Background()
	c, fs := newConverter(t, map[string]string{
		"/bad.json":  "{\n  \"a\": \n}\n",
		"/notes.txt": "hello",
		"/null.json": `{"a": null, "b": [null]}`,
	})

	tests := []struct {
		name string
		req  fileconv.Request
		code errors.ErrorCode
	}{
		{name: "identical explicit formats", req: fileconv.Request{SourcePath: "/missing.json", SourceFormat: "json", TargetFormat: "j"}, code: errors.ErrIdenticalFormats},
		{name: "unsupported target", req: fileconv.Request{SourcePath: "/bad.json", TargetFormat: "toml"}, code: errors.ErrUnsupportedFormat},
		{name: "unsupported source", req: fileconv.Request{SourcePath: "/bad.json", SourceFormat: "ini", TargetFormat: "yaml"}, code: errors.ErrUnsupportedFormat},
		{name: "missing file", req: fileconv.Request{SourcePath: "/missing.json", TargetFormat: "yaml"}, code: errors.ErrIOFailure},
		{name: "no source", req: fileconv.Request{TargetFormat: "yaml"}, code: errors.ErrInvalidInput},
		{name: "undetectable", req: fileconv.Request{SourcePath: "/notes.txt", TargetFormat: "yaml"}, code: errors.ErrFormatUndetermined},
		{name: "parse failure", req: fileconv.Request{SourcePath: "/bad.json", TargetFormat: "yaml"}, code: errors.ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Convert(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), err.Error())
		})
	}

	t.Run("parse failure carries location", func(t *testing.T) {
		_, err := c.Convert(ctx, fileconv.Request{SourcePath: "/bad.json", TargetFormat: "yaml"})
		line, _, ok := errors.Position(err)
		require.True(t, ok)
		assert.Equal(t, 3, line)
		assert.Equal(t, "/bad.json", errors.GetErrorDetails(err)[errors.DetailPath])
	})

	t.Run("null becomes false in property lists", func(t *testing.T) {
		res, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/null.json", TargetFormat: "plist"})
		require.NoError(t, err)
		doc, err := fileconv.Load(res.Text, formats.Plist)
		require.NoError(t, err)
		want := tree.FromPairs(tree.Pair{Key: "a", Value: false}, tree.Pair{Key: "b", Value: []any{false}})
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("normalized document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nothing written on failure", func(t *testing.T) {
		_, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/bad.json", TargetFormat: "yaml"})
		require.Error(t, err)
		exists, _ := afero.Exists(fs, "/bad.YAML-json")
		assert.False(t, exists)
	})
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newConverter(t, map[string]string{"/a.json": `{}`})
	_, err := c.Convert(ctx, fileconv.Request{SourcePath: "/a.json", TargetFormat: "yaml"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteWithoutDestination(t *testing.T) {
	c, _ := newConverter(t, nil)
	res, err := c.Convert(context.Background(), fileconv.Request{Source: []byte("a: 1\n"), SourceFormat: "yaml", TargetFormat: "json"})
	require.NoError(t, err)
	assert.Empty(t, res.DestPath)

	err = c.Write(context.Background(), res)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestWriteSkipsUnchangedDestination(t *testing.T) {
	c, fs := newConverter(t, map[string]string{"/a.json": `{"a": 1}`})
	ctx := context.Background()

	res, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/a.json", TargetFormat: "yaml"})
	require.NoError(t, err)
	assert.False(t, res.Unchanged)

	info, err := fs.Stat(res.DestPath)
	require.NoError(t, err)

	again, err := c.ConvertFile(ctx, fileconv.Request{SourcePath: "/a.json", TargetFormat: "yaml"})
	require.NoError(t, err)
	assert.True(t, again.Unchanged)

	after, err := fs.Stat(res.DestPath)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestLoadAndDumpHelpers(t *testing.T) {
	when := time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)
	doc := tree.FromPairs(
		tree.Pair{Key: "when", Value: when},
		tree.Pair{Key: "blob", Value: tree.Data("raw")},
		tree.Pair{Key: "ratio", Value: 1.0},
	)

	out, err := fileconv.Dump(doc, formats.JSON, params.Params{"indent": 0})
	require.NoError(t, err)
	assert.Equal(t, `{"when":"2024-02-29T10:30:00Z","blob":"raw","ratio":1.0}`+"\n", string(out))

	back, err := fileconv.Load(out, formats.JSON)
	require.NoError(t, err)
	ratio, _ := back.(*tree.Map).Get("ratio")
	assert.Equal(t, 1.0, ratio)

	out, err = fileconv.Dump(doc, formats.Plist, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<date>2024-02-29T10:30:00Z</date>")
}
