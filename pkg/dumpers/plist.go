package dumpers

import (
	"encoding/base64"
	"math"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/beevik/etree"
)

const plistDoctype = `DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`

// PlistDumper writes XML property lists in the layout Apple tools use.
type PlistDumper struct{}

func (PlistDumper) Name() string       { return "plist" }
func (PlistDumper) Kind() formats.Kind { return formats.Plist }

func (PlistDumper) Params() params.Spec {
	return params.Spec{Defaults: params.Params{
		"sort_keys":      false,
		"skipkeys":       false,
		"check_circular": false,
	}}
}

func (d PlistDumper) Dump(v any, p params.Params) ([]byte, error) {
	p = d.Params().Validate(p)

	w := &plistWriter{
		sortKeys: p.Bool("sort_keys", false),
		skipKeys: p.Bool("skipkeys", false),
		guard:    newGuard(p.Bool("check_circular", false)),
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(plistDoctype)
	root := doc.CreateElement("plist")
	root.CreateAttr("version", "1.0")
	if err := w.value(root, v, ""); err != nil {
		return nil, err
	}
	doc.IndentTabs()

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDumpFailure, "cannot write property list")
	}
	logger := logging.GetLogger("dumpers")
	logger.Trace().Int("bytes", len(out)).Msg("Property list dumped")
	return withNewline(out), nil
}

type plistWriter struct {
	sortKeys bool
	skipKeys bool
	guard    *guard
}

func plistEncodable(v any) bool {
	switch v.(type) {
	case *tree.Map, []any, string, int64, int, float64, bool, time.Time, tree.Data:
		return true
	}
	return false
}

func (w *plistWriter) value(parent *etree.Element, v any, path string) error {
	switch tv := v.(type) {
	case nil:
		return errors.Newf(errors.ErrDumpFailure, "property lists cannot represent null at %s", displayPath(path)).
			WithDetail(errors.DetailPath, displayPath(path))
	case string:
		if err := xmlText(tv, path); err != nil {
			return err
		}
		parent.CreateElement("string").SetText(tv)
	case int64:
		parent.CreateElement("integer").SetText(strconv.FormatInt(tv, 10))
	case int:
		parent.CreateElement("integer").SetText(strconv.Itoa(tv))
	case float64:
		parent.CreateElement("real").SetText(plistReal(tv))
	case bool:
		if tv {
			parent.CreateElement("true")
		} else {
			parent.CreateElement("false")
		}
	case time.Time:
		parent.CreateElement("date").SetText(tv.UTC().Format(loaders.PlistDateLayout))
	case tree.Data:
		parent.CreateElement("data").SetText(base64.StdEncoding.EncodeToString(tv))
	case *tree.Map:
		if tv == nil {
			return w.value(parent, nil, path)
		}
		return w.dict(parent, tv, path)
	case []any:
		return w.array(parent, tv, path)
	default:
		return unsupported("property lists", path, v)
	}
	return nil
}

// xmlText rejects text XML 1.0 cannot carry: control characters other than
// tab, newline and carriage return, U+FFFE, U+FFFF and invalid UTF-8.
func xmlText(s, path string) error {
	for i, r := range s {
		ok := r == '\t' || r == '\n' || r == '\r' ||
			(r >= 0x20 && r <= 0xD7FF) ||
			(r >= 0xE000 && r <= 0xFFFD) ||
			(r >= 0x10000 && r <= 0x10FFFF)
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			ok = size > 1
		}
		if !ok {
			return errors.Newf(errors.ErrDumpFailure, "property lists cannot represent character %U at %s", r, displayPath(path)).
				WithDetail(errors.DetailPath, displayPath(path))
		}
	}
	return nil
}

func plistReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return tree.FormatFloat(f)
}

func (w *plistWriter) dict(parent *etree.Element, m *tree.Map, path string) error {
	leave, err := w.guard.enter(m, path)
	if err != nil {
		return err
	}
	defer leave()

	pairs := m.Pairs()
	if w.sortKeys {
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	}

	el := parent.CreateElement("dict")
	for _, p := range pairs {
		if w.skipKeys && !plistEncodable(p.Value) {
			logger := logging.GetLogger("dumpers")
			logger.Debug().Str("path", childPath(path, p.Key)).Str("type", tree.TypeName(p.Value)).
				Msg("Skipping value a property list cannot represent")
			continue
		}
		if err := xmlText(p.Key, childPath(path, p.Key)); err != nil {
			return err
		}
		el.CreateElement("key").SetText(p.Key)
		if err := w.value(el, p.Value, childPath(path, p.Key)); err != nil {
			return err
		}
	}
	return nil
}

func (w *plistWriter) array(parent *etree.Element, s []any, path string) error {
	leave, err := w.guard.enter(s, path)
	if err != nil {
		return err
	}
	defer leave()

	el := parent.CreateElement("array")
	for i, item := range s {
		if err := w.value(el, item, childPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}
