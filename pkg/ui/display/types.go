// Package display holds the plain data the renderers print. Every type
// marshals to JSON for the machine-readable output format.
package display

import (
	"fmt"

	"github.com/arthur-debert/fileconv/pkg/detect"
	"github.com/arthur-debert/fileconv/pkg/dumpers"
	"github.com/arthur-debert/fileconv/pkg/fileconv"
	"github.com/arthur-debert/fileconv/pkg/formats"
)

// Conversion summarizes one finished conversion.
type Conversion struct {
	Source       string            `json:"source"`
	SourceFormat string            `json:"sourceFormat"`
	TargetFormat string            `json:"targetFormat"`
	Dumper       string            `json:"dumper"`
	Destination  string            `json:"destination,omitempty"`
	Bytes        int               `json:"bytes"`
	Written      bool              `json:"written"`
	Unchanged    bool              `json:"unchanged"`
	DryRun       bool              `json:"dryRun"`
	Directive    map[string]string `json:"directive,omitempty"`
}

// Detection reports which format a file resolved to, and by which rule.
type Detection struct {
	Source string `json:"source"`
	Format string `json:"format,omitempty"`
	Rule   string `json:"rule"`
	Found  bool   `json:"found"`
}

// FormatInfo describes one supported format.
type FormatInfo struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Extension  string   `json:"extension"`
	Classifier string   `json:"classifier,omitempty"`
	Comment    string   `json:"comment"`
	Dumpers    []string `json:"dumpers"`
}

// NewConversion builds a Conversion from a converter result.
func NewConversion(res *fileconv.Result, written, dryRun bool) *Conversion {
	c := &Conversion{
		Source:       res.SourcePath,
		SourceFormat: res.SourceFormat.Name,
		TargetFormat: res.TargetFormat.Name,
		Dumper:       res.Dumper,
		Destination:  res.DestPath,
		Bytes:        len(res.Text),
		Written:      written && !res.Unchanged,
		Unchanged:    res.Unchanged,
		DryRun:       dryRun,
	}
	if c.Source == "" || c.Source == fileconv.StdinPath {
		c.Source = "<stdin>"
	}
	if res.Directive != nil && res.Directive.Options != nil {
		c.Directive = make(map[string]string)
		for _, key := range res.Directive.Options.Keys() {
			v, _ := res.Directive.Options.Get(key)
			c.Directive[key] = fmt.Sprint(v)
		}
	}
	return c
}

// NewDetection builds a Detection from the outcome of detect.Explain.
func NewDetection(source string, d *formats.Descriptor, rule detect.Rule, ok bool) *Detection {
	det := &Detection{Source: source, Rule: string(rule), Found: ok}
	if det.Rule == "" {
		det.Rule = "none"
	}
	if ok {
		det.Format = d.Name
	}
	return det
}

// Formats lists every supported format with the dumpers that write it.
func Formats() []FormatInfo {
	var out []FormatInfo
	for _, d := range formats.All() {
		info := FormatInfo{
			Name:       d.Name,
			Kind:       d.Kind.String(),
			Extension:  "." + d.Ext,
			Classifier: d.Scope,
			Comment:    d.Comment.Open,
		}
		if d.Comment.Close != "" {
			info.Comment += " " + d.Comment.Close
		}
		for _, dm := range dumpers.All() {
			if dm.Kind() == d.Kind {
				info.Dumpers = append(info.Dumpers, dm.Name())
			}
		}
		out = append(out, info)
	}
	return out
}
