package formats

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/errors"
)

// Comment is the comment syntax a format uses for inline directives.
type Comment struct {
	Open  string
	Close string
}

// Descriptor is the static metadata of one format.
type Descriptor struct {
	Kind Kind
	// Name is the human readable name used in messages.
	Name string
	// Ext is the canonical file extension, without the dot.
	Ext string
	// Scope is the content classifier a host assigns to documents of this
	// format. Empty when the format has none.
	Scope   string
	Comment Comment
	// ErrorPattern matches messages rendered by FormatFailure and captures
	// file, line and column.
	ErrorPattern *regexp.Regexp

	appendixPattern *regexp.Regexp
}

var descriptors = []*Descriptor{
	newDescriptor(JSON, "JSON", "json", "source.json", Comment{Open: "//"}),
	newDescriptor(YAML, "YAML", "yaml", "source.yaml", Comment{Open: "#"}),
	newDescriptor(Plist, "Property List", "plist", "", Comment{Open: "<!--", Close: "-->"}),
}

func newDescriptor(k Kind, name, ext, scope string, c Comment) *Descriptor {
	return &Descriptor{
		Kind:            k,
		Name:            name,
		Ext:             ext,
		Scope:           scope,
		Comment:         c,
		ErrorPattern:    regexp.MustCompile(`^(.+?):(\d+):(\d+): ` + regexp.QuoteMeta(name) + ` error: `),
		appendixPattern: regexp.MustCompile(`(?i)\.(` + regexp.QuoteMeta(ext) + `)(?:-([^./\\]+))?$`),
	}
}

// All returns every descriptor in preference order.
func All() []*Descriptor {
	out := make([]*Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// ByKind returns the descriptor of k.
func ByKind(k Kind) (*Descriptor, bool) {
	for _, d := range descriptors {
		if d.Kind == k {
			return d, true
		}
	}
	return nil, false
}

// ByExt returns the descriptor whose canonical extension is ext.
func ByExt(ext string) (*Descriptor, bool) {
	ext = strings.TrimPrefix(ext, ".")
	for _, d := range descriptors {
		if strings.EqualFold(d.Ext, ext) {
			return d, true
		}
	}
	return nil, false
}

// ByName resolves a name, alias or extension to a descriptor. It returns an
// UNSUPPORTED_FORMAT error for anything else.
func ByName(name string) (*Descriptor, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnsupportedFormat, "no loader or dumper for %q", name).
			WithDetail(errors.DetailFormat, name)
	}
	d, _ := ByKind(k)
	return d, nil
}

// AppendixPattern matches "<name>.<ext>" and "<name>.<ext>-<appendix>",
// ignoring case. Group 1 is the extension, group 2 the optional appendix.
func (d *Descriptor) AppendixPattern() *regexp.Regexp {
	return d.appendixPattern
}

func (d *Descriptor) String() string {
	return d.Name
}

// FormatFailure renders err so that ErrorPattern can locate it again.
// Errors without a position are reported at line 1, column 0.
func (d *Descriptor) FormatFailure(path string, err error) string {
	if path == "" {
		path = "<input>"
	}
	line, col, ok := errors.Position(err)
	if !ok {
		line, col = 1, 0
	}
	msg := err.Error()
	var fcErr *errors.FileconvError
	if stderrors.As(err, &fcErr) {
		msg = fcErr.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s error: %s", path, line, col, d.Name, msg)
}

// Location is an error position recovered from a rendered failure.
type Location struct {
	Format *Descriptor
	File   string
	Line   int
	Column int
}

// LocateError finds the file, line and column in a message produced by
// FormatFailure.
func LocateError(msg string) (Location, bool) {
	for _, d := range descriptors {
		m := d.ErrorPattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		loc := Location{Format: d, File: m[1]}
		loc.Line, _ = strconv.Atoi(m[2])
		loc.Column, _ = strconv.Atoi(m[3])
		return loc, true
	}
	return Location{}, false
}
