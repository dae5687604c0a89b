package dumpers

import (
	"strings"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/tree"
)

// Dumper renders a Document Tree in one format.
type Dumper interface {
	Name() string
	Kind() formats.Kind
	Params() params.Spec
	Dump(v any, p params.Params) ([]byte, error)
}

var registry = []Dumper{
	JSONDumper{},
	YAMLDumper{},
	YAMLDumper{OrderedMaps: true},
	PlistDumper{},
}

// All returns every registered dumper.
func All() []Dumper {
	out := make([]Dumper, len(registry))
	copy(out, registry)
	return out
}

// For returns the default dumper of k.
func For(k formats.Kind) (Dumper, error) {
	for _, d := range registry {
		if d.Kind() == k {
			return d, nil
		}
	}
	return nil, errors.Newf(errors.ErrUnsupportedFormat, "no dumper for %s", k).
		WithDetail(errors.DetailFormat, k.String())
}

// ByName returns the dumper registered under name, such as "yaml-omap".
func ByName(name string) (Dumper, error) {
	for _, d := range registry {
		if strings.EqualFold(d.Name(), name) {
			return d, nil
		}
	}
	if k, err := formats.ParseKind(name); err == nil {
		return For(k)
	}
	return nil, errors.Newf(errors.ErrUnsupportedFormat, "unknown output format %q", name).
		WithDetail(errors.DetailFormat, name)
}

// unsupported is the error for values outside the dumper's vocabulary.
func unsupported(format, path string, v any) error {
	return errors.Newf(errors.ErrDumpFailure, "%s cannot represent %s at %s", format, tree.TypeName(v), displayPath(path)).
		WithDetail(errors.DetailPath, displayPath(path))
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func childPath(path, key string) string {
	return path + "/" + key
}

func withNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}

// maxDepth bounds recursion when circular checks are off.
const maxDepth = 10000

type seqKey struct {
	first *any
	n     int
}

// guard tracks the composites currently being written.
type guard struct {
	check  bool
	active map[any]struct{}
	depth  int
}

func newGuard(check bool) *guard {
	return &guard{check: check, active: make(map[any]struct{})}
}

// enter marks v as being written. The returned func must be called once v
// is done.
func (g *guard) enter(v any, path string) (func(), error) {
	g.depth++
	if g.depth > maxDepth {
		return nil, errors.Newf(errors.ErrDumpFailure, "document nested too deeply at %s", displayPath(path)).
			WithDetail(errors.DetailPath, displayPath(path))
	}

	var key any
	switch tv := v.(type) {
	case *tree.Map:
		key = tv
	case []any:
		if len(tv) > 0 {
			key = seqKey{first: &tv[0], n: len(tv)}
		}
	}
	if !g.check || key == nil {
		return func() { g.depth-- }, nil
	}
	if _, ok := g.active[key]; ok {
		return nil, errors.Newf(errors.ErrDumpFailure, "circular reference detected at %s", displayPath(path)).
			WithDetail(errors.DetailPath, displayPath(path))
	}
	g.active[key] = struct{}{}
	return func() {
		delete(g.active, key)
		g.depth--
	}, nil
}
