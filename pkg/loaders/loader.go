package loaders

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/params"
)

// Loader parses one format into a Document Tree.
type Loader interface {
	Descriptor() *formats.Descriptor
	Params() params.Spec
	Load(src []byte, p params.Params) (any, error)
}

// For returns the loader of k.
func For(k formats.Kind) (Loader, error) {
	switch k {
	case formats.JSON:
		return JSONLoader{}, nil
	case formats.YAML:
		return YAMLLoader{}, nil
	case formats.Plist:
		return PlistLoader{}, nil
	}
	return nil, errors.Newf(errors.ErrUnsupportedFormat, "no loader for %s", k).
		WithDetail(errors.DetailFormat, k.String())
}

func descriptor(k formats.Kind) *formats.Descriptor {
	d, ok := formats.ByKind(k)
	if !ok {
		panic(fmt.Sprintf("loaders: missing descriptor for %d", int(k)))
	}
	return d
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func trimBOM(src []byte) []byte {
	return bytes.TrimPrefix(src, utf8BOM)
}

// position converts the 0-based index of a byte into its 1-based line and
// column.
func position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	col = offset - bytes.LastIndexByte(src[:offset], '\n')
	return line, col
}
