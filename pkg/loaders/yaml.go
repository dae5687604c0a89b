package loaders

import (
	"bytes"
	"encoding/base64"
	stderrors "errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"gopkg.in/yaml.v3"
)

// Tags handled by the YAML loader. Anything else is rejected.
const (
	tagNull      = "!!null"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagFloat     = "!!float"
	tagStr       = "!!str"
	tagTimestamp = "!!timestamp"
	tagBinary    = "!!binary"
	tagMap       = "!!map"
	tagSeq       = "!!seq"
	tagOmap      = "!!omap"
	tagMerge     = "!!merge"
)

// YAMLLoader loads the safe subset of YAML: plain data, no language
// specific object tags. Mappings and !!omap sequences both load as
// *tree.Map in document order.
type YAMLLoader struct{}

func (YAMLLoader) Descriptor() *formats.Descriptor { return descriptor(formats.YAML) }

func (YAMLLoader) Params() params.Spec {
	return params.Spec{Defaults: params.Params{}}
}

func (l YAMLLoader) Load(src []byte, p params.Params) (any, error) {
	_ = l.Params().Validate(p)

	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(trimBOM(src)))
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, yamlFailure(err)
	}

	c := &yamlConverter{anchors: make(map[*yaml.Node]*anchorState)}
	v, err := c.convert(&doc)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("loaders")
	logger.Trace().Str("type", tree.TypeName(v)).Msg("YAML document loaded")
	return v, nil
}

var yamlLineRe = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

func yamlFailure(err error) error {
	msg := err.Error()
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return errors.ParseFailure(m[2]+" (line "+m[1]+")", line, 0)
	}
	return errors.Wrap(err, errors.ErrParseFailure, "invalid YAML")
}

func nodeFailure(n *yaml.Node, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrParseFailure, format, args...).WithPosition(n.Line, n.Column)
}

type anchorState struct {
	done bool
	out  any
}

type yamlConverter struct {
	anchors map[*yaml.Node]*anchorState
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	if n.Anchor != "" {
		if st, ok := c.anchors[n]; ok && !st.done {
			return nil, nodeFailure(n, "anchor %q refers to itself", n.Anchor)
		}
		st := &anchorState{}
		c.anchors[n] = st
		v, err := c.convertNode(n)
		if err != nil {
			return nil, err
		}
		st.done, st.out = true, v
		return v, nil
	}
	return c.convertNode(n)
}

func (c *yamlConverter) convertNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if st, ok := c.anchors[n.Alias]; ok {
			if !st.done {
				return nil, nodeFailure(n, "alias %q refers to its own anchor", n.Value)
			}
			return st.out, nil
		}
		return c.convert(n.Alias)
	case yaml.MappingNode:
		if err := checkTag(n, tagMap); err != nil {
			return nil, err
		}
		return c.mapping(n)
	case yaml.SequenceNode:
		if n.Tag == tagOmap {
			return c.omap(n)
		}
		if err := checkTag(n, tagSeq); err != nil {
			return nil, err
		}
		s := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, nodeFailure(n, "unexpected YAML node kind %d", n.Kind)
}

// checkTag rejects explicit tags other than want. Plain nodes and the
// non-specific "!" tag resolve to want.
func checkTag(n *yaml.Node, want string) error {
	tag := n.ShortTag()
	if tag == want || n.Tag == "" || n.Tag == "!" {
		return nil
	}
	return nodeFailure(n, "could not determine a constructor for the tag %q", n.Tag)
}

func (c *yamlConverter) mapping(n *yaml.Node) (*tree.Map, error) {
	m := tree.NewMapCap(len(n.Content) / 2)
	var merged []*tree.Map

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == tagMerge {
			sources, err := c.mergeSources(valueNode)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)
			continue
		}

		key, err := mapKey(keyNode)
		if err != nil {
			return nil, err
		}
		v, err := c.convert(valueNode)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}

	if len(merged) == 0 {
		return m, nil
	}

	// merged keys come first, explicit keys override them
	out := tree.NewMapCap(m.Len())
	for _, src := range merged {
		src.Range(func(k string, v any) bool {
			if !out.Has(k) {
				out.Set(k, v)
			}
			return true
		})
	}
	m.Range(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	return out, nil
}

func (c *yamlConverter) mergeSources(n *yaml.Node) ([]*tree.Map, error) {
	target := n
	if target.Kind == yaml.AliasNode {
		target = target.Alias
	}
	if target.Kind == yaml.SequenceNode {
		var out []*tree.Map
		for _, item := range target.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			m, ok := v.(*tree.Map)
			if !ok {
				return nil, nodeFailure(item, "merge key expects mappings, found %s", tree.TypeName(v))
			}
			out = append(out, m)
		}
		return out, nil
	}

	v, err := c.convert(n)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*tree.Map)
	if !ok {
		return nil, nodeFailure(n, "merge key expects a mapping, found %s", tree.TypeName(v))
	}
	return []*tree.Map{m}, nil
}

func (c *yamlConverter) omap(n *yaml.Node) (*tree.Map, error) {
	m := tree.NewMapCap(len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nil, nodeFailure(item, "!!omap expects single-pair mappings")
		}
		key, err := mapKey(item.Content[0])
		if err != nil {
			return nil, err
		}
		if m.Has(key) {
			return nil, nodeFailure(item, "duplicate key %q in !!omap", key)
		}
		v, err := c.convert(item.Content[1])
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, nil
}

func mapKey(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", nodeFailure(n, "mapping keys must be scalars")
	}
	return n.Value, nil
}

func scalar(n *yaml.Node) (any, error) {
	switch tag := n.ShortTag(); tag {
	case tagNull:
		return nil, nil
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, nodeFailure(n, "invalid boolean %q", n.Value)
		}
		return b, nil
	case tagInt:
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return f, nil
		}
		return nil, nodeFailure(n, "invalid integer %q", n.Value)
	case tagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeFailure(n, "invalid float %q", n.Value)
		}
		return f, nil
	case tagTimestamp:
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, nodeFailure(n, "invalid timestamp %q", n.Value)
		}
		return t, nil
	case tagBinary:
		clean := strings.Join(strings.Fields(n.Value), "")
		b, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, nodeFailure(n, "invalid base64 data: %v", err)
		}
		return tree.Data(b), nil
	case tagStr:
		return n.Value, nil
	default:
		if n.Tag == "!" {
			return n.Value, nil
		}
		return nil, nodeFailure(n, "could not determine a constructor for the tag %q", tag)
	}
}
