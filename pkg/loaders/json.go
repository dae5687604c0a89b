package loaders

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
	"github.com/tidwall/gjson"
)

// JSONLoader loads JSON, accepting // and /* */ comments.
type JSONLoader struct{}

func (JSONLoader) Descriptor() *formats.Descriptor { return descriptor(formats.JSON) }

func (JSONLoader) Params() params.Spec {
	return params.Spec{Defaults: params.Params{"allow_comments": true, "allow_nan": true}}
}

func (l JSONLoader) Load(src []byte, p params.Params) (any, error) {
	p = l.Params().Validate(p)

	src = trimBOM(src)
	if p.Bool("allow_comments", true) {
		src = StripComments(src)
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, errors.ParseFailure("no JSON value found (line 1, column 1)", 1, 1)
	}

	checked := src
	if p.Bool("allow_nan", true) {
		checked = maskNonFinite(src)
	}
	var raw json.RawMessage
	if err := json.Unmarshal(checked, &raw); err != nil {
		return nil, jsonFailure(src, err)
	}

	// gjson reads NaN and Infinity as numbers itself
	v, err := fromGJSON(gjson.ParseBytes(src))
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("loaders")
	logger.Trace().Str("type", tree.TypeName(v)).Msg("JSON document loaded")
	return v, nil
}

var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// maskNonFinite returns a copy of src where bare NaN, Infinity and -Infinity
// tokens outside string literals read as 0 followed by padding, keeping
// every offset in place.
func maskNonFinite(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	inString, escaped := false, false
	for i := 0; i < len(out); i++ {
		c := out[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"' || c == '\n':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		if i > 0 && isWordByte(out[i-1]) {
			continue
		}
		for _, tok := range nonFinite {
			end := i + len(tok)
			if !bytes.HasPrefix(out[i:], tok) || (end < len(out) && isWordByte(out[end])) {
				continue
			}
			out[i] = '0'
			for j := i + 1; j < end; j++ {
				out[j] = ' '
			}
			i = end - 1
			break
		}
	}
	return out
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' || c == '+' || c == '-' ||
		('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func jsonFailure(src []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		line, col := position(src, int(syntaxErr.Offset)-1)
		return errors.ParseFailure(
			syntaxErr.Error()+" (line "+strconv.Itoa(line)+", column "+strconv.Itoa(col)+")",
			line, col,
		)
	}
	return errors.Wrap(err, errors.ErrParseFailure, "invalid JSON")
}

func fromGJSON(r gjson.Result) (any, error) {
	switch r.Type {
	case gjson.Null:
		return nil, nil
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	case gjson.String:
		return r.String(), nil
	case gjson.Number:
		return jsonNumber(r.Raw)
	}

	var err error
	if r.IsObject() {
		m := tree.NewMap()
		r.ForEach(func(key, value gjson.Result) bool {
			var v any
			v, err = fromGJSON(value)
			if err != nil {
				return false
			}
			m.Set(key.String(), v)
			return true
		})
		return m, err
	}
	if r.IsArray() {
		s := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			var v any
			v, err = fromGJSON(value)
			if err != nil {
				return false
			}
			s = append(s, v)
			return true
		})
		return s, err
	}
	return nil, errors.Newf(errors.ErrParseFailure, "unexpected JSON value %q", r.Raw)
}

// jsonNumber keeps integers as int64 when they fit and falls back to float64.
func jsonNumber(raw string) (any, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if stderrors.As(err, &numErr) && stderrors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return nil, errors.Wrapf(err, errors.ErrParseFailure, "invalid number %q", raw)
	}
	return f, nil
}
