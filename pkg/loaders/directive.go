package loaders

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"gopkg.in/yaml.v3"
)

const (
	// DirectiveName is the marker that opens an inline directive.
	DirectiveName = "fileconv"

	// DefaultDirectiveLines is how many leading lines are searched.
	DefaultDirectiveLines = 5

	OptionTargetFormat = "target_format"
	OptionExt          = "ext"
)

// Directive holds the options declared by an inline directive such as
//
//	# [fileconv] target_format: plist, ext: tmLanguage
type Directive struct {
	// Line is the 1-based line the directive was found on.
	Line    int
	Options *tree.Map
}

// TargetFormat returns the declared target format, if any.
func (d *Directive) TargetFormat() string {
	return d.option(OptionTargetFormat)
}

// Ext returns the declared output extension, if any.
func (d *Directive) Ext() string {
	return d.option(OptionExt)
}

// Params returns every option other than target_format and ext, to be
// forwarded to the dumper.
func (d *Directive) Params() params.Params {
	out := params.Params{}
	if d == nil {
		return out
	}
	d.Options.Range(func(k string, v any) bool {
		if k != OptionTargetFormat && k != OptionExt {
			out[k] = v
		}
		return true
	})
	return out
}

func (d *Directive) option(name string) string {
	if d == nil {
		return ""
	}
	v, ok := d.Options.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func directivePattern(desc *formats.Descriptor) *regexp.Regexp {
	expr := `^\s*` + regexp.QuoteMeta(desc.Comment.Open) + `\s*\[` + DirectiveName + `\]\s*(.*?)\s*`
	if desc.Comment.Close != "" {
		expr += `(?:` + regexp.QuoteMeta(desc.Comment.Close) + `\s*)?`
	}
	return regexp.MustCompile(expr + `$`)
}

// FindDirective looks for a directive in the first window lines of src,
// written in desc's comment syntax. It returns nil when there is none. A
// directive whose options do not parse is a PARSE_FAILURE.
func FindDirective(src []byte, desc *formats.Descriptor, window int) (*Directive, error) {
	if window <= 0 {
		window = DefaultDirectiveLines
	}
	re := directivePattern(desc)

	lines := bytes.SplitN(trimBOM(src), []byte{'\n'}, window+1)
	if len(lines) > window {
		lines = lines[:window]
	}
	for i, line := range lines {
		m := re.FindSubmatch(bytes.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		opts, err := parseDirectiveOptions(m[1])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParseFailure, "invalid %s directive", DirectiveName).
				WithPosition(i+1, 0)
		}
		logger := logging.GetLogger("loaders")
		logger.Debug().Int("line", i+1).Strs("options", opts.Keys()).Msg("Found inline directive")
		return &Directive{Line: i + 1, Options: opts}, nil
	}
	return nil, nil
}

// parseDirectiveOptions reads "key: value, key2: value2" as a YAML flow
// mapping so that values get the usual scalar typing. Options already
// wrapped in braces are read as they are.
func parseDirectiveOptions(text []byte) (*tree.Map, error) {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return tree.NewMap(), nil
	}

	var doc yaml.Node
	src := text
	if text[0] != '{' || text[len(text)-1] != '}' {
		src = append(append([]byte{'{'}, text...), '}')
	}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}

	c := &yamlConverter{anchors: make(map[*yaml.Node]*anchorState)}
	v, err := c.convert(&doc)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*tree.Map)
	if !ok {
		return nil, errors.Newf(errors.ErrParseFailure, "expected key: value pairs, found %s", tree.TypeName(v))
	}
	return m, nil
}
