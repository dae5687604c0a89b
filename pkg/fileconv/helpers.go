package fileconv

import (
	"github.com/arthur-debert/fileconv/pkg/dumpers"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/normalize"
	"github.com/arthur-debert/fileconv/pkg/params"
)

// Load parses text as kind with default options.
func Load(text []byte, kind formats.Kind) (any, error) {
	l, err := loaders.For(kind)
	if err != nil {
		return nil, err
	}
	return l.Load(text, nil)
}

// Dump normalizes v for kind and renders it with p.
func Dump(v any, kind formats.Kind, p params.Params) ([]byte, error) {
	d, err := dumpers.For(kind)
	if err != nil {
		return nil, err
	}
	v, err = normalize.Normalize(v, kind)
	if err != nil {
		return nil, err
	}
	return d.Dump(v, p)
}
