package dumpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/tidwall/pretty"
)

// JSONDumper writes JSON, keeping mapping order unless sort_keys is set.
type JSONDumper struct{}

func (JSONDumper) Name() string       { return "json" }
func (JSONDumper) Kind() formats.Kind { return formats.JSON }

func (JSONDumper) Params() params.Spec {
	return params.Spec{Defaults: params.Params{
		"indent":         4,
		"skipkeys":       true,
		"sort_keys":      false,
		"ensure_ascii":   false,
		"allow_nan":      true,
		"check_circular": false,
	}}
}

func (d JSONDumper) Dump(v any, p params.Params) ([]byte, error) {
	p = d.Params().Validate(p)

	e := &jsonEncoder{
		skipKeys:    p.Bool("skipkeys", true),
		ensureASCII: p.Bool("ensure_ascii", false),
		allowNaN:    p.Bool("allow_nan", true),
		guard:       newGuard(p.Bool("check_circular", false)),
	}
	if err := e.encode(v, ""); err != nil {
		return nil, err
	}

	out := e.buf.Bytes()
	indent := p.Int("indent", 4)
	sortKeys := p.Bool("sort_keys", false)
	switch {
	case indent > 0:
		out = pretty.PrettyOptions(out, &pretty.Options{
			Indent:   strings.Repeat(" ", indent),
			SortKeys: sortKeys,
		})
	case sortKeys:
		out = pretty.Ugly(pretty.PrettyOptions(out, &pretty.Options{SortKeys: true}))
	}

	logger := logging.GetLogger("dumpers")
	logger.Trace().Int("bytes", len(out)).Int("indent", indent).Msg("JSON document dumped")
	return withNewline(out), nil
}

type jsonEncoder struct {
	buf     bytes.Buffer
	scratch bytes.Buffer

	skipKeys    bool
	ensureASCII bool
	allowNaN    bool
	guard       *guard
}

func jsonEncodable(v any) bool {
	switch v.(type) {
	case nil, *tree.Map, []any, string, int64, int, float64, bool:
		return true
	}
	return false
}

func (e *jsonEncoder) encode(v any, path string) error {
	switch tv := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(tv))
	case int64:
		e.buf.WriteString(strconv.FormatInt(tv, 10))
	case int:
		e.buf.WriteString(strconv.Itoa(tv))
	case float64:
		if !e.allowNaN && (math.IsNaN(tv) || math.IsInf(tv, 0)) {
			return errors.Newf(errors.ErrDumpFailure, "out of range float value %s at %s", tree.FormatFloat(tv), displayPath(path)).
				WithDetail(errors.DetailPath, displayPath(path))
		}
		e.buf.WriteString(tree.FormatFloat(tv))
	case string:
		return e.string(tv)
	case *tree.Map:
		if tv == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.object(tv, path)
	case []any:
		return e.array(tv, path)
	default:
		return unsupported("JSON", path, v)
	}
	return nil
}

func (e *jsonEncoder) object(m *tree.Map, path string) error {
	leave, err := e.guard.enter(m, path)
	if err != nil {
		return err
	}
	defer leave()

	e.buf.WriteByte('{')
	first := true
	for _, p := range m.Pairs() {
		if !jsonEncodable(p.Value) && e.skipKeys {
			logger := logging.GetLogger("dumpers")
			logger.Debug().Str("path", childPath(path, p.Key)).Str("type", tree.TypeName(p.Value)).
				Msg("Skipping value JSON cannot represent")
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		if err := e.string(p.Key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.encode(p.Value, childPath(path, p.Key)); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) array(s []any, path string) error {
	leave, err := e.guard.enter(s, path)
	if err != nil {
		return err
	}
	defer leave()

	e.buf.WriteByte('[')
	for i, item := range s {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encode(item, childPath(path, strconv.Itoa(i))); err != nil {
			return err
		}
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) string(s string) error {
	e.scratch.Reset()
	enc := json.NewEncoder(&e.scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, errors.ErrDumpFailure, "cannot encode string")
	}
	quoted := bytes.TrimSuffix(e.scratch.Bytes(), []byte{'\n'})
	if !e.ensureASCII {
		e.buf.Write(quoted)
		return nil
	}
	for _, r := range string(quoted) {
		switch {
		case r < 0x80:
			e.buf.WriteByte(byte(r))
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&e.buf, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&e.buf, `\u%04x`, r)
		}
	}
	return nil
}
