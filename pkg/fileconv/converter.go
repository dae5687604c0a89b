package fileconv

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/arthur-debert/fileconv/pkg/appendix"
	"github.com/arthur-debert/fileconv/pkg/config"
	"github.com/arthur-debert/fileconv/pkg/detect"
	"github.com/arthur-debert/fileconv/pkg/dumpers"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/filesystem"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/internal/hashutil"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/normalize"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// StdinPath names standard input in a Request.
const StdinPath = "-"

// Request describes one conversion. Only SourcePath or Source is required.
type Request struct {
	// SourcePath is read unless Source is set. It also drives format
	// detection and the destination name.
	SourcePath string
	// Source holds the document text when it does not come from a file.
	Source []byte
	// SourceFormat skips detection when set.
	SourceFormat string
	// TargetFormat is a format name or a dumper name such as "yaml-omap".
	TargetFormat string
	// Classifier is the content type a host assigned to the source.
	Classifier string
	// Ext replaces the extension of the destination name.
	Ext    string
	Params params.Params
}

// Result is a finished conversion, not yet written.
type Result struct {
	SourcePath   string
	SourceFormat *formats.Descriptor
	TargetFormat *formats.Descriptor
	// Dumper is the name of the dumper used, e.g. "yaml-omap".
	Dumper string
	// DestPath is empty when the source had no path.
	DestPath  string
	Text      []byte
	Directive *loaders.Directive
	// Unchanged is set by Write when the destination already held Text.
	Unchanged bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithFS makes the converter read and write through fs.
func WithFS(fs afero.Fs) Option {
	return func(c *Converter) { c.fs = filesystem.NewAferoFS(fs) }
}

// WithConfig replaces the global configuration.
func WithConfig(cfg *config.Config) Option {
	return func(c *Converter) { c.cfg = cfg }
}

// WithLogger replaces the converter's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// Converter runs conversions. It holds no mutable state and may be shared
// between goroutines.
type Converter struct {
	fs  filesystem.FS
	cfg *config.Config
	log zerolog.Logger
}

// New returns a converter on the OS filesystem and the global configuration.
func New(opts ...Option) *Converter {
	c := &Converter{
		fs:  filesystem.NewOS(),
		cfg: config.Get(),
		log: logging.GetLogger("fileconv"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c
}

// Convert performs req without writing anything.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	done := logging.LogOperationStart(c.log, "convert")
	defer done()

	// explicit formats are checked before touching the filesystem
	var src *formats.Descriptor
	if req.SourceFormat != "" {
		d, err := formats.ByName(req.SourceFormat)
		if err != nil {
			return nil, err
		}
		src = d
	}
	var dumper dumpers.Dumper
	if req.TargetFormat != "" {
		d, err := dumpers.ByName(req.TargetFormat)
		if err != nil {
			return nil, err
		}
		dumper = d
	}
	if src != nil && dumper != nil && src.Kind == dumper.Kind() {
		return nil, identical(src)
	}

	content, err := c.read(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if src == nil {
		src, err = detect.Require(detect.Input{Path: req.SourcePath, Content: content, Classifier: req.Classifier})
		if err != nil {
			return nil, err
		}
	}

	directive, err := loaders.FindDirective(content, src, c.cfg.DirectiveLines)
	if err != nil {
		return nil, parsing(err, req.SourcePath, src)
	}

	if dumper == nil {
		dumper, err = c.decideTarget(src, directive)
		if err != nil {
			return nil, err
		}
	}
	dst, _ := formats.ByKind(dumper.Kind())
	if dst.Kind == src.Kind {
		return nil, identical(src)
	}
	c.log.Debug().Str("path", req.SourcePath).Str("from", src.Ext).Str("to", dumper.Name()).Msg("Converting")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader, err := loaders.For(src.Kind)
	if err != nil {
		return nil, err
	}
	doc, err := loader.Load(content, params.Merge(c.cfg.LoadParams(src.Kind), req.Params))
	if err != nil {
		return nil, parsing(err, req.SourcePath, src)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err = normalize.Normalize(doc, dst.Kind)
	if err != nil {
		return nil, located(err, req.SourcePath)
	}

	dumpParams := c.cfg.DumpParams(dst.Kind)
	if directive != nil {
		dumpParams = params.Merge(dumpParams, directive.Params())
	}
	dumpParams = params.Merge(dumpParams, req.Params)
	text, err := dumper.Dump(doc, dumpParams)
	if err != nil {
		return nil, located(err, req.SourcePath)
	}

	res := &Result{
		SourcePath:   req.SourcePath,
		SourceFormat: src,
		TargetFormat: dst,
		Dumper:       dumper.Name(),
		Text:         text,
		Directive:    directive,
	}
	if req.SourcePath != "" && req.SourcePath != StdinPath {
		ext := req.Ext
		if ext == "" && directive != nil {
			ext = directive.Ext()
		}
		res.DestPath = appendix.Resolve(req.SourcePath, src, dst, ext)
	}
	return res, nil
}

// Write stores res.Text at res.DestPath, replacing it atomically.
func (c *Converter) Write(ctx context.Context, res *Result) error {
	if res == nil || res.DestPath == "" {
		return errors.New(errors.ErrInvalidInput, "conversion has no destination path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if existing, err := c.fs.ReadFile(res.DestPath); err == nil {
		sum := hashutil.Checksum(res.Text)
		if hashutil.Checksum(existing) == sum {
			res.Unchanged = true
			c.log.Info().Str("path", res.DestPath).Str("checksum", sum).Msg("Destination unchanged, skipping write")
			return nil
		}
	}

	dir := filepath.Dir(res.DestPath)
	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot create directory %s", dir).
			WithDetail(errors.DetailPath, dir)
	}
	if err := c.fs.WriteFile(res.DestPath, res.Text, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot write %s", res.DestPath).
			WithDetail(errors.DetailPath, res.DestPath)
	}
	c.log.Info().Str("path", res.DestPath).Int("bytes", len(res.Text)).Msg("Wrote conversion")
	return nil
}

// ConvertFile converts req and writes the result.
func (c *Converter) ConvertFile(ctx context.Context, req Request) (*Result, error) {
	res, err := c.Convert(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.Write(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Converter) read(req Request) ([]byte, error) {
	if req.Source != nil {
		return req.Source, nil
	}
	if req.SourcePath == "" || req.SourcePath == StdinPath {
		return nil, errors.New(errors.ErrInvalidInput, "no source path or content given")
	}
	content, err := c.fs.ReadFile(req.SourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", req.SourcePath).
			WithDetail(errors.DetailPath, req.SourcePath)
	}
	return content, nil
}

// decideTarget picks the target from the directive, then the configured
// preference.
func (c *Converter) decideTarget(src *formats.Descriptor, directive *loaders.Directive) (dumpers.Dumper, error) {
	if name := directive.TargetFormat(); name != "" {
		return dumpers.ByName(name)
	}
	if preferred, ok := c.cfg.Target(); ok {
		if err := detect.CheckPreference(src, preferred); err != nil {
			return nil, err
		}
		return dumpers.For(preferred.Kind)
	}
	return nil, undetermined(src)
}

// Choices lists the formats a source of kind src can be converted to.
func Choices(src *formats.Descriptor) []string {
	var out []string
	for _, d := range formats.All() {
		if src == nil || d.Kind != src.Kind {
			out = append(out, d.Ext)
		}
	}
	return out
}

func undetermined(src *formats.Descriptor) error {
	return errors.Newf(errors.ErrTargetUndetermined, "no target format given for %s source", src.Name).
		WithDetail(errors.DetailFormat, src.Ext).
		WithDetail(errors.DetailChoices, Choices(src))
}

func identical(src *formats.Descriptor) error {
	return errors.Newf(errors.ErrIdenticalFormats, "source and target are both %s", src.Name).
		WithDetail(errors.DetailFormat, src.Ext)
}

// located records path on coded errors.
func located(err error, path string) error {
	var fe *errors.FileconvError
	if !stderrors.As(err, &fe) {
		return errors.Wrap(err, errors.ErrInternal, "unexpected failure")
	}
	if path != "" {
		fe.WithDetail(errors.DetailPath, path)
	}
	return err
}

// parsing records path and the source format on a parse error.
func parsing(err error, path string, src *formats.Descriptor) error {
	err = located(err, path)
	var fe *errors.FileconvError
	if stderrors.As(err, &fe) {
		fe.WithDetail(errors.DetailFormat, src.Ext)
	}
	return err
}
