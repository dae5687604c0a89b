// Package appendix derives output file names so that a conversion can be
// reversed by name alone.
//
// A file converted from its own format gets a double extension recording
// where it came from: example.yaml becomes example.PLIST-yaml. Converting
// example.PLIST-yaml back consumes the appendix and restores example.yaml.
package appendix

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
)

// Split matches name against desc's extension. It returns the name without
// the extension, the extension as written and the appendix, if any. ok is
// false when name does not end in desc's extension.
func Split(name string, desc *formats.Descriptor) (stem, ext, appendix string, ok bool) {
	m := desc.AppendixPattern().FindStringSubmatchIndex(name)
	if m == nil {
		return name, "", "", false
	}
	stem = name[:m[0]]
	ext = name[m[2]:m[3]]
	if m[4] >= 0 {
		appendix = name[m[4]:m[5]]
	}
	return stem, ext, appendix, true
}

// Resolve returns the destination name for converting name from src to dst.
// A non-empty override replaces whatever extension would be chosen.
func Resolve(name string, src, dst *formats.Descriptor, override string) string {
	log := logging.GetLogger("appendix")

	stem, ext, appx, matched := Split(name, src)

	var out string
	switch {
	case override != "":
		if !matched {
			stem = strings.TrimSuffix(name, filepath.Ext(name))
		}
		out = stem + "." + strings.TrimPrefix(override, ".")
	case matched && appx != "":
		out = stem + "." + appx
	case matched && strings.EqualFold(ext, dst.Ext):
		out = name
	case matched:
		out = stem + "." + strings.ToUpper(dst.Ext) + "-" + ext
	default:
		out = name + "." + dst.Ext
	}

	log.Debug().Str("name", name).Str("from", src.Ext).Str("to", dst.Ext).Str("result", out).Msg("Resolved destination name")
	return out
}
