// Package detect works out the format of a source document from its name,
// its first lines and the classifier a caller may have assigned to it.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/appendix"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
)

// Rule names the detection rule that identified a format.
type Rule string

const (
	RuleNone       Rule = ""
	RuleAppendix   Rule = "appendix"
	RuleExtension  Rule = "extension"
	RuleContent    Rule = "content"
	RuleClassifier Rule = "classifier"
)

// SniffLines is how many leading lines the content rule inspects.
const SniffLines = 3

const plistDoctype = "<!DOCTYPE plist"

// Input is what detection can look at. Every field is optional.
type Input struct {
	Path       string
	Content    []byte
	Classifier string
}

type rule struct {
	name  Rule
	match func(in Input, d *formats.Descriptor) bool
}

// Rules run in order. Each is tried against every descriptor before the
// next one is considered.
var rules = []rule{
	{RuleAppendix, matchAppendix},
	{RuleExtension, matchExtension},
	{RuleContent, matchContent},
	{RuleClassifier, matchClassifier},
}

// Detect returns the format of in, or false if no rule matches.
func Detect(in Input) (*formats.Descriptor, bool) {
	d, _, ok := Explain(in)
	return d, ok
}

// Explain is Detect that also reports which rule matched.
func Explain(in Input) (*formats.Descriptor, Rule, bool) {
	for _, r := range rules {
		for _, d := range formats.All() {
			if r.match(in, d) {
				logger := logging.GetLogger("detect")
				logger.Debug().Str("path", in.Path).Str("format", d.Ext).Str("rule", string(r.name)).Msg("Detected source format")
				return d, r.name, true
			}
		}
	}
	logger := logging.GetLogger("detect")
	logger.Debug().Str("path", in.Path).Str("classifier", in.Classifier).Msg("Source format not detected")
	return nil, RuleNone, false
}

// Require is Detect returning FORMAT_UNDETERMINED when nothing matches.
func Require(in Input) (*formats.Descriptor, error) {
	if d, ok := Detect(in); ok {
		return d, nil
	}
	name := in.Path
	if name == "" {
		name = "input"
	}
	return nil, errors.Newf(errors.ErrFormatUndetermined, "cannot determine the format of %s", name).
		WithDetail(errors.DetailPath, in.Path)
}

// CheckPreference fails with IDENTICAL_FORMATS when the detected source
// format is the stored preferred target.
func CheckPreference(src, preferred *formats.Descriptor) error {
	if src == nil || preferred == nil || src.Kind != preferred.Kind {
		return nil
	}
	return errors.Newf(errors.ErrIdenticalFormats, "source is already %s, the preferred target format", src.Name).
		WithDetail(errors.DetailFormat, src.Ext)
}

func matchAppendix(in Input, d *formats.Descriptor) bool {
	if in.Path == "" {
		return false
	}
	_, _, appx, ok := appendix.Split(filepath.Base(in.Path), d)
	return ok && appx != ""
}

func matchExtension(in Input, d *formats.Descriptor) bool {
	ext := filepath.Ext(in.Path)
	return ext != "" && strings.EqualFold(ext[1:], d.Ext)
}

func matchContent(in Input, d *formats.Descriptor) bool {
	if d.Kind != formats.Plist || len(in.Content) == 0 {
		return false
	}
	return SniffPlist(in.Content)
}

func matchClassifier(in Input, d *formats.Descriptor) bool {
	if d.Scope == "" || in.Classifier == "" {
		return false
	}
	return in.Classifier == d.Scope || strings.HasPrefix(in.Classifier, d.Scope+".")
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SniffPlist reports whether the plist doctype appears within the first
// SniffLines lines of content, ignoring a BOM and leading blank space.
func SniffPlist(content []byte) bool {
	content = bytes.TrimLeft(bytes.TrimPrefix(content, utf8BOM), " \t\r\n")
	lines := bytes.SplitN(content, []byte{'\n'}, SniffLines+1)
	if len(lines) > SniffLines {
		lines = lines[:SniffLines]
	}
	for _, line := range lines {
		if bytes.Contains(line, []byte(plistDoctype)) {
			return true
		}
	}
	return false
}
