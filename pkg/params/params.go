// Package params validates the option bags passed to loaders and dumpers.
//
// Every loader and dumper declares a Spec: default values plus the names it
// accepts. Validate merges caller overrides onto the defaults and silently
// drops names the Spec does not know; dropped names are logged at debug
// level so a misspelt option can still be traced.
package params

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/logging"
)

// Params maps option names to values.
type Params map[string]any

// Spec declares the defaults and allow-list of one loader or dumper.
type Spec struct {
	// Defaults holds the accepted options that have a default value.
	Defaults Params
	// Extra lists accepted options without a default.
	Extra []string
}

// Allowed reports whether name is accepted by the spec.
func (s Spec) Allowed(name string) bool {
	if _, ok := s.Defaults[name]; ok {
		return true
	}
	for _, e := range s.Extra {
		if e == name {
			return true
		}
	}
	return false
}

// Names returns the accepted option names, sorted.
func (s Spec) Names() []string {
	names := make([]string, 0, len(s.Defaults)+len(s.Extra))
	for k := range s.Defaults {
		names = append(names, k)
	}
	names = append(names, s.Extra...)
	sort.Strings(names)
	return names
}

// Validate returns the defaults overlaid with each override in turn.
// Unknown names are dropped without error.
func (s Spec) Validate(overrides ...Params) Params {
	logger := logging.GetLogger("params")

	out := make(Params, len(s.Defaults))
	for k, v := range s.Defaults {
		out[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			if !s.Allowed(k) {
				logger.Debug().Str("param", k).Msg("Ignoring unknown parameter")
				continue
			}
			out[k] = v
		}
	}
	return out
}

// Merge returns a new Params holding a overlaid with b.
func Merge(a, b Params) Params {
	out := make(Params, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Int returns the integer value of name, accepting numeric strings.
func (p Params) Int(name string, fallback int) int {
	switch v := p[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// Bool returns the boolean value of name, accepting "true"/"false" strings.
func (p Params) Bool(name string, fallback bool) bool {
	switch v := p[name].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

// String returns the string value of name.
func (p Params) String(name string, fallback string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return fallback
}

// Has reports whether name is set, even to nil.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// ParseAssignments turns "key=value" strings into Params. Values are kept as
// strings; typed accessors convert them on use.
func ParseAssignments(items []string) (Params, []string) {
	out := Params{}
	var bad []string
	for _, item := range items {
		k, v, ok := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			bad = append(bad, item)
			continue
		}
		out[k] = v
	}
	return out, bad
}
