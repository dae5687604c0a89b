package dumpers

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"gopkg.in/yaml.v3"
)

// YAMLDumper writes YAML block style by default. With OrderedMaps set it
// is registered as "yaml-omap" and writes mappings as !!omap sequences.
type YAMLDumper struct {
	OrderedMaps bool
}

func (d YAMLDumper) Name() string {
	if d.OrderedMaps {
		return "yaml-omap"
	}
	return "yaml"
}

func (YAMLDumper) Kind() formats.Kind { return formats.YAML }

func (d YAMLDumper) Params() params.Spec {
	return params.Spec{Defaults: params.Params{
		"indent":             2,
		"default_flow_style": false,
		"default_style":      "",
		"explicit_start":     false,
		"explicit_end":       false,
		"omap":               d.OrderedMaps,
		"check_circular":     false,
	}}
}

func (d YAMLDumper) Dump(v any, p params.Params) ([]byte, error) {
	p = d.Params().Validate(p)

	style, err := scalarStyle(p.String("default_style", ""))
	if err != nil {
		return nil, err
	}
	b := &yamlBuilder{
		omap:  p.Bool("omap", d.OrderedMaps),
		flow:  p.Bool("default_flow_style", false),
		style: style,
		guard: newGuard(p.Bool("check_circular", false)),
	}
	node, err := b.node(v, "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if p.Bool("explicit_start", false) {
		buf.WriteString("---\n")
	}
	enc := yaml.NewEncoder(&buf)
	indent := p.Int("indent", 2)
	if indent < 2 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, errors.ErrDumpFailure, "cannot encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrDumpFailure, "cannot encode YAML")
	}
	if p.Bool("explicit_end", false) {
		buf.WriteString("...\n")
	}

	logger := logging.GetLogger("dumpers")
	logger.Trace().Int("bytes", buf.Len()).Bool("omap", b.omap).Msg("YAML document dumped")
	return withNewline(buf.Bytes()), nil
}

// scalarStyle maps the single character style names to yaml.v3 styles.
func scalarStyle(name string) (yaml.Style, error) {
	switch name {
	case "":
		return 0, nil
	case "'":
		return yaml.SingleQuotedStyle, nil
	case `"`:
		return yaml.DoubleQuotedStyle, nil
	case "|":
		return yaml.LiteralStyle, nil
	case ">":
		return yaml.FoldedStyle, nil
	}
	return 0, errors.Newf(errors.ErrDumpFailure, "invalid default_style %q", name)
}

type yamlBuilder struct {
	omap  bool
	flow  bool
	style yaml.Style
	guard *guard
}

func (b *yamlBuilder) collectionStyle() yaml.Style {
	if b.flow {
		return yaml.FlowStyle
	}
	return 0
}

func (b *yamlBuilder) node(v any, path string) (*yaml.Node, error) {
	switch tv := v.(type) {
	case nil:
		return scalarNode("!!null", "null", 0), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(tv), 0), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(tv, 10), 0), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(tv), 0), nil
	case float64:
		return scalarNode("!!float", yamlFloat(tv), 0), nil
	case string:
		return b.stringNode(tv), nil
	case time.Time:
		return scalarNode("!!timestamp", tv.Format(time.RFC3339Nano), 0), nil
	case tree.Data:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(tv), 0), nil
	case *tree.Map:
		if tv == nil {
			return scalarNode("!!null", "null", 0), nil
		}
		return b.mapping(tv, path)
	case []any:
		return b.sequence(tv, path)
	}
	return nil, unsupported("YAML", path, v)
}

func scalarNode(tag, value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Style: style}
}

// stringNode leaves the tag of invalid UTF-8 strings empty so that the
// encoder falls back to !!binary.
func (b *yamlBuilder) stringNode(s string) *yaml.Node {
	if !utf8.ValidString(s) {
		return scalarNode("", s, 0)
	}
	return scalarNode("!!str", s, b.style)
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return tree.FormatFloat(f)
}

func (b *yamlBuilder) mapping(m *tree.Map, path string) (*yaml.Node, error) {
	leave, err := b.guard.enter(m, path)
	if err != nil {
		return nil, err
	}
	defer leave()

	if b.omap {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!omap", Style: b.collectionStyle()}
		for _, p := range m.Pairs() {
			value, err := b.node(p.Value, childPath(path, p.Key))
			if err != nil {
				return nil, err
			}
			pair := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: b.collectionStyle()}
			pair.Content = append(pair.Content, b.stringNode(p.Key), value)
			seq.Content = append(seq.Content, pair)
		}
		return seq, nil
	}

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: b.collectionStyle()}
	for _, p := range m.Pairs() {
		value, err := b.node(p.Value, childPath(path, p.Key))
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, b.stringNode(p.Key), value)
	}
	return out, nil
}

func (b *yamlBuilder) sequence(s []any, path string) (*yaml.Node, error) {
	leave, err := b.guard.enter(s, path)
	if err != nil {
		return nil, err
	}
	defer leave()

	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: b.collectionStyle()}
	for i, item := range s {
		n, err := b.node(item, childPath(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, n)
	}
	return out, nil
}
