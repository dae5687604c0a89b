package loaders

import (
	"encoding/base64"
	"encoding/xml"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/beevik/etree"
)

// PlistDateLayout is the layout of <date> elements.
const PlistDateLayout = "2006-01-02T15:04:05Z"

// PlistLoader loads XML property lists.
type PlistLoader struct{}

func (PlistLoader) Descriptor() *formats.Descriptor { return descriptor(formats.Plist) }

func (PlistLoader) Params() params.Spec {
	return params.Spec{Defaults: params.Params{}}
}

func (l PlistLoader) Load(src []byte, p params.Params) (any, error) {
	_ = l.Params().Validate(p)

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(trimBOM(src)); err != nil {
		return nil, plistFailure(err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.ParseFailure("no root element found (line 1)", 1, 0)
	}
	if root.Tag != "plist" {
		return nil, errors.Newf(errors.ErrParseFailure, "expected <plist> root element, found <%s>", root.Tag)
	}

	children := root.ChildElements()
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, errors.Newf(errors.ErrParseFailure, "<plist> must hold a single value, found %d", len(children))
	}

	v, err := plistValue(children[0])
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("loaders")
	logger.Trace().Str("type", tree.TypeName(v)).Msg("Property list loaded")
	return v, nil
}

// plistFailure maps the XML decoder's error into a located parse failure.
func plistFailure(err error) error {
	var syntaxErr *xml.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.ParseFailure(
			syntaxErr.Msg+" (line "+strconv.Itoa(syntaxErr.Line)+")",
			syntaxErr.Line, 0,
		)
	}
	return errors.Wrap(err, errors.ErrParseFailure, "invalid property list")
}

func plistValue(el *etree.Element) (any, error) {
	text := el.Text()
	switch el.Tag {
	case "dict":
		return plistDict(el)
	case "array":
		children := el.ChildElements()
		s := make([]any, 0, len(children))
		for _, child := range children {
			v, err := plistValue(child)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case "string":
		return text, nil
	case "integer":
		return plistInteger(strings.TrimSpace(text))
	case "real":
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, errors.Newf(errors.ErrParseFailure, "invalid <real> %q", text)
		}
		return f, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "date":
		t, err := time.Parse(PlistDateLayout, strings.TrimSpace(text))
		if err != nil {
			return nil, errors.Newf(errors.ErrParseFailure, "invalid <date> %q", text)
		}
		return t, nil
	case "data":
		clean := strings.Join(strings.Fields(text), "")
		b, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParseFailure, "invalid <data> content")
		}
		return tree.Data(b), nil
	}
	return nil, errors.Newf(errors.ErrParseFailure, "unknown property list element <%s>", el.Tag)
}

func plistDict(el *etree.Element) (*tree.Map, error) {
	children := el.ChildElements()
	m := tree.NewMapCap(len(children) / 2)
	for i := 0; i < len(children); i += 2 {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, errors.Newf(errors.ErrParseFailure, "expected <key> in <dict>, found <%s>", keyEl.Tag)
		}
		if i+1 >= len(children) {
			return nil, errors.Newf(errors.ErrParseFailure, "missing value for key %q", keyEl.Text())
		}
		v, err := plistValue(children[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(keyEl.Text(), v)
	}
	return m, nil
}

func plistInteger(s string) (any, error) {
	base := 10
	if strings.HasPrefix(strings.ToLower(strings.TrimLeft(s, "+-")), "0x") {
		base = 0
	}
	if i, err := strconv.ParseInt(s, base, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(s, base, 64); err == nil {
		return float64(u), nil
	}
	return nil, errors.Newf(errors.ErrParseFailure, "invalid <integer> %q", s)
}
