package tree

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Data is an opaque byte blob, as found in property list <data> elements.
type Data []byte

// Equal reports deep, order-sensitive equality of two document values.
// NaN equals NaN so that round-trips of non-finite floats compare equal.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case *Map:
		bv, ok := b.(*Map)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		return av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case Data:
		bv, ok := b.(Data)
		return ok && bytes.Equal(av, bv)
	case int:
		return intEqual(int64(av), b)
	case int64:
		return intEqual(av, b)
	case string, bool:
		return a == b
	default:
		return false
	}
}

// intEqual compares integers regardless of whether they are int or int64.
func intEqual(a int64, b any) bool {
	switch bv := b.(type) {
	case int:
		return a == int64(bv)
	case int64:
		return a == bv
	}
	return false
}

// Clone returns a deep copy of v. Scalars are returned as is.
func Clone(v any) any {
	switch tv := v.(type) {
	case *Map:
		m := NewMapCap(tv.Len())
		tv.Range(func(k string, item any) bool {
			m.Set(k, Clone(item))
			return true
		})
		return m
	case []any:
		s := make([]any, len(tv))
		for i, item := range tv {
			s[i] = Clone(item)
		}
		return s
	case Data:
		return append(Data(nil), tv...)
	default:
		return v
	}
}

// TypeName names the document type of v for messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Map:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case int, int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case time.Time:
		return "date"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("unsupported %T", v)
	}
}

// IsValue reports whether v belongs to the document vocabulary at its top
// level. Children of composites are not inspected.
func IsValue(v any) bool {
	switch v.(type) {
	case nil, *Map, []any, string, int64, float64, bool, time.Time, Data:
		return true
	}
	return false
}

// FormatFloat renders f in its shortest form while keeping a decimal point
// or exponent, so that 1.0 reads back as a float and not as an integer.
// Non-finite values are rendered as NaN, Infinity and -Infinity.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
