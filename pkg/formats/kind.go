package formats

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of document formats fileconv understands.
type Kind int

const (
	Unknown Kind = iota
	JSON
	YAML
	Plist
)

var ErrBadKind = errors.New("unsupported format")

var kindNames = map[string]Kind{
	"j":     JSON,
	"json":  JSON,
	"y":     YAML,
	"yml":   YAML,
	"yaml":  YAML,
	"p":     Plist,
	"plist": Plist,
	"xml":   Plist,
}

// ParseKind resolves a format name, alias or extension, ignoring case and a
// leading dot.
func ParseKind(v string) (Kind, error) {
	k, ok := kindNames[strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), ".")]
	if ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrBadKind, v)
}

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case JSON:
		return []byte("json"), nil
	case YAML:
		return []byte("yaml"), nil
	case Plist:
		return []byte("plist"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", int(k))
	}
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// Kinds returns all supported kinds in preference order.
func Kinds() []Kind {
	return []Kind{JSON, YAML, Plist}
}
