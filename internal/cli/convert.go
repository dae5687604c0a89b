package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/dumpers"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/fileconv"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/ui"
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	from       string
	to         string
	ext        string
	classifier string
	params     []string
	stdout     bool
	diff       bool
	dryRun     bool
}

func (a *app) newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:     "convert <file>...",
		Short:   MsgConvertShort,
		Long:    MsgConvertLong,
		Example: MsgConvertExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.from, "from", "f", "", MsgFlagFrom)
	f.StringVarP(&opts.to, "to", "t", "", MsgFlagTo)
	f.StringVar(&opts.ext, "ext", "", MsgFlagExt)
	f.StringVar(&opts.classifier, "classifier", "", MsgFlagClassifier)
	f.StringArrayVarP(&opts.params, "param", "p", nil, MsgFlagParam)
	f.BoolVar(&opts.stdout, "stdout", false, MsgFlagStdout)
	f.BoolVar(&opts.diff, "diff", false, MsgFlagDiff)
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.MarkFlagsMutuallyExclusive("stdout", "diff")

	_ = cmd.RegisterFlagCompletionFunc("from", completeFormats(false))
	_ = cmd.RegisterFlagCompletionFunc("to", completeFormats(true))

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, files []string, opts *convertOptions) error {
	log := logging.GetLogger("cli.convert")

	p, bad := params.ParseAssignments(opts.params)
	if len(bad) > 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrBadParams, strings.Join(bad, ", "))
	}
	if len(files) > 1 {
		for _, file := range files {
			if file == fileconv.StdinPath {
				return errors.New(errors.ErrInvalidInput, MsgErrStdinMultiple)
			}
		}
	}

	conv := fileconv.New(fileconv.WithFS(a.fs), fileconv.WithConfig(a.cfg), fileconv.WithLogger(log))
	for _, file := range files {
		if err := a.convertOne(cmd, conv, file, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) convertOne(cmd *cobra.Command, conv *fileconv.Converter, file string, opts *convertOptions, p params.Params) error {
	req := fileconv.Request{
		SourcePath:   file,
		SourceFormat: opts.from,
		TargetFormat: opts.to,
		Classifier:   opts.classifier,
		Ext:          opts.ext,
		Params:       p,
	}

	toStdout := opts.stdout
	if file == fileconv.StdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, errors.ErrIOFailure, MsgErrReadStdin)
		}
		req.Source = data
		toStdout = !opts.diff
	}

	res, err := conv.Convert(cmd.Context(), req)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrTargetUndetermined) {
			choices, _ := errors.GetErrorDetails(err)[errors.DetailChoices].([]string)
			fmt.Fprintf(cmd.ErrOrStderr(), MsgTargetChoices, strings.Join(choices, ", "))
		}
		return err
	}

	switch {
	case opts.diff:
		return a.showDiff(res)
	case toStdout:
		_, err := cmd.OutOrStdout().Write(res.Text)
		return err
	case opts.dryRun:
		return a.renderer.RenderConversion(display.NewConversion(res, false, true))
	}

	if err := conv.Write(cmd.Context(), res); err != nil {
		return err
	}
	return a.renderer.RenderConversion(display.NewConversion(res, true, false))
}

// showDiff compares the converted text with what is currently at the
// destination. A missing destination diffs against an empty document.
func (a *app) showDiff(res *fileconv.Result) error {
	if res.DestPath == "" {
		return errors.Newf(errors.ErrInvalidInput, MsgErrNoDestination, MsgStdinSourceName)
	}

	existing, err := afero.ReadFile(a.fs, res.DestPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", res.DestPath).
			WithDetail(errors.DetailPath, res.DestPath)
	}

	diff, err := ui.Diff(existing, res.Text, res.DestPath, res.DestPath+" (converted)")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot compute diff")
	}
	return a.renderer.RenderDiff(diff)
}

// completeFormats offers format names, and dumper names when withDumpers is set.
func completeFormats(withDumpers bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		if withDumpers {
			for _, d := range dumpers.All() {
				names = append(names, d.Name())
			}
		} else {
			for _, d := range formats.All() {
				names = append(names, d.Ext)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
