package detect_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/fileconv/pkg/detect"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plistHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
	"<!DOCTYPE plist PUBLIC \"-//Apple//DTD PLIST 1.0//EN\" \"http://www.apple.com/DTDs/PropertyList-1.0.dtd\">\n" +
	"<plist version=\"1.0\"><dict/></plist>\n"

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		in   detect.Input
		kind formats.Kind
		rule detect.Rule
	}{
		{name: "appendix", in: detect.Input{Path: "x/example.PLIST-yaml"}, kind: formats.Plist, rule: detect.RuleAppendix},
		{name: "appendix beats extension", in: detect.Input{Path: "example.yaml-json", Classifier: "source.json"}, kind: formats.YAML, rule: detect.RuleAppendix},
		{name: "extension", in: detect.Input{Path: "a/b/settings.JSON"}, kind: formats.JSON, rule: detect.RuleExtension},
		{name: "extension beats content", in: detect.Input{Path: "odd.yaml", Content: []byte(plistHeader)}, kind: formats.YAML, rule: detect.RuleExtension},
		{name: "plist doctype", in: detect.Input{Path: "Theme.tmTheme", Content: []byte(plistHeader)}, kind: formats.Plist, rule: detect.RuleContent},
		{name: "plist doctype after bom", in: detect.Input{Content: append([]byte{0xEF, 0xBB, 0xBF}, plistHeader...)}, kind: formats.Plist, rule: detect.RuleContent},
		{name: "classifier", in: detect.Input{Path: "x.sublime-settings", Classifier: "source.json"}, kind: formats.JSON, rule: detect.RuleClassifier},
		{name: "classifier prefix", in: detect.Input{Classifier: "source.yaml.sublime.syntax"}, kind: formats.YAML, rule: detect.RuleClassifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rule, ok := detect.Explain(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestDetectMisses(t *testing.T) {
	tests := []detect.Input{
		{},
		{Path: "notes.txt", Content: []byte("hello")},
		{Classifier: "source.jsonx"},
		{Content: []byte("<?xml version=\"1.0\"?>\n<!-- one -->\n<!-- two -->\n<!DOCTYPE plist>")},
	}
	for _, in := range tests {
		_, ok := detect.Detect(in)
		assert.False(t, ok, "%+v", in)
	}

	_, err := detect.Require(detect.Input{Path: "notes.txt"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormatUndetermined))
}

func TestCheckPreference(t *testing.T) {
	yaml, _ := formats.ByKind(formats.YAML)
	json, _ := formats.ByKind(formats.JSON)

	assert.NoError(t, detect.CheckPreference(yaml, json))
	assert.NoError(t, detect.CheckPreference(yaml, nil))
	assert.True(t, errors.IsErrorCode(detect.CheckPreference(yaml, yaml), errors.ErrIdenticalFormats))
}

func TestExplainLogsRule(t *testing.T) {
	var buf bytes.Buffer
	saved, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(level)
	})

	_, _, ok := detect.Explain(detect.Input{Path: "settings.json"})
	require.True(t, ok)
	assert.Contains(t, buf.String(), `"component":"detect"`)
	assert.Contains(t, buf.String(), `"rule":"extension"`)

	buf.Reset()
	_, _, ok = detect.Explain(detect.Input{Path: "notes.txt"})
	require.False(t, ok)
	assert.Contains(t, buf.String(), "Source format not detected")
}
