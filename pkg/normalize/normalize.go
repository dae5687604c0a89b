// Package normalize rewrites document values that a target format cannot
// represent.
//
// Each format has an ordered list of rules. For every scalar leaf the first
// rule whose predicate matches replaces the value; composites are walked and
// copied, so the input tree is never modified.
package normalize

import (
	"strconv"
	"time"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/tree"
)

// Rule replaces scalar values matching Match.
type Rule struct {
	Name    string
	Match   func(v any) bool
	Replace func(v any) any
}

// DateLayout is the layout dates are stringified with.
const DateLayout = time.RFC3339

var (
	dateToString = Rule{
		Name:    "date-to-string",
		Match:   func(v any) bool { _, ok := v.(time.Time); return ok },
		Replace: func(v any) any { return v.(time.Time).Format(DateLayout) },
	}
	dataToBytes = Rule{
		Name:    "data-to-bytes",
		Match:   func(v any) bool { _, ok := v.(tree.Data); return ok },
		Replace: func(v any) any { return string(v.(tree.Data)) },
	}
	nullToFalse = Rule{
		Name:    "null-to-false",
		Match:   func(v any) bool { return v == nil },
		Replace: func(any) any { return false },
	}
)

var rules = map[formats.Kind][]Rule{
	formats.JSON:  {dateToString, dataToBytes},
	formats.YAML:  {dateToString, dataToBytes},
	formats.Plist: {nullToFalse},
}

// Rules returns the rules applied for target k.
func Rules(k formats.Kind) []Rule {
	out := make([]Rule, len(rules[k]))
	copy(out, rules[k])
	return out
}

// Normalize returns a copy of v conditioned for target k.
func Normalize(v any, k formats.Kind) (any, error) {
	return Apply(v, rules[k])
}

// Apply walks v and applies rs to every scalar leaf. Shared composites are
// converted once and shared in the result; a composite reached again while
// it is still being converted is a cycle and yields DUMP_FAILURE.
func Apply(v any, rs []Rule) (any, error) {
	w := &walker{
		rules: rs,
		maps:  make(map[*tree.Map]*visit),
		seqs:  make(map[seqID]*visit),
	}
	return w.walk(v, "")
}

type visit struct {
	done bool
	out  any
}

type walker struct {
	rules []Rule
	maps  map[*tree.Map]*visit
	seqs  map[seqID]*visit
}

// seqID identifies a slice by its backing array and length.
type seqID struct {
	first *any
	n     int
}

func (w *walker) walk(v any, path string) (any, error) {
	switch tv := v.(type) {
	case *tree.Map:
		if tv == nil {
			return w.leaf(nil), nil
		}
		if seen, ok := w.maps[tv]; ok {
			return w.revisit(seen, path)
		}
		out := tree.NewMapCap(tv.Len())
		state := &visit{out: out}
		w.maps[tv] = state
		for _, p := range tv.Pairs() {
			item, err := w.walk(p.Value, path+"/"+p.Key)
			if err != nil {
				return nil, err
			}
			out.Set(p.Key, item)
		}
		state.done = true
		return out, nil
	case []any:
		if len(tv) == 0 {
			return []any{}, nil
		}
		id := seqID{first: &tv[0], n: len(tv)}
		if seen, ok := w.seqs[id]; ok {
			return w.revisit(seen, path)
		}
		out := make([]any, len(tv))
		state := &visit{out: out}
		w.seqs[id] = state
		for i, item := range tv {
			conv, err := w.walk(item, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		state.done = true
		return out, nil
	default:
		return w.leaf(v), nil
	}
}

func (w *walker) revisit(seen *visit, path string) (any, error) {
	if !seen.done {
		if path == "" {
			path = "/"
		}
		return nil, errors.Newf(errors.ErrDumpFailure, "cyclic document at %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return seen.out, nil
}

func (w *walker) leaf(v any) any {
	for _, r := range w.rules {
		if r.Match(v) {
			return r.Replace(v)
		}
	}
	return v
}
