package cli

import (
	"io"

	"github.com/arthur-debert/fileconv/pkg/detect"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/fileconv"
	"github.com/arthur-debert/fileconv/pkg/formats"
	"github.com/arthur-debert/fileconv/pkg/loaders"
	"github.com/arthur-debert/fileconv/pkg/normalize"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// treeDumper prints document trees without addresses so the output is stable.
var treeDumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func (a *app) newInspectCmd() *cobra.Command {
	var from, target, classifier string

	cmd := &cobra.Command{
		Use:     "inspect <file>",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]

			var content []byte
			var err error
			if file == fileconv.StdinPath {
				content, err = io.ReadAll(cmd.InOrStdin())
			} else {
				content, err = afero.ReadFile(a.fs, file)
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", file).
					WithDetail(errors.DetailPath, file)
			}

			var src *formats.Descriptor
			if from != "" {
				src, err = formats.ByName(from)
			} else {
				src, err = detect.Require(detect.Input{Path: file, Content: content, Classifier: classifier})
			}
			if err != nil {
				return err
			}

			loader, err := loaders.For(src.Kind)
			if err != nil {
				return err
			}
			doc, err := loader.Load(content, a.cfg.LoadParams(src.Kind))
			if err != nil {
				return withSource(err, file, src)
			}

			if target != "" {
				dst, err := formats.ByName(target)
				if err != nil {
					return err
				}
				if doc, err = normalize.Normalize(doc, dst.Kind); err != nil {
					return withSource(err, file, src)
				}
			}

			treeDumper.Fdump(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", MsgFlagFrom)
	cmd.Flags().StringVar(&target, "for", "", MsgFlagFor)
	cmd.Flags().StringVar(&classifier, "classifier", "", MsgFlagClassifier)
	_ = cmd.RegisterFlagCompletionFunc("from", completeFormats(false))
	_ = cmd.RegisterFlagCompletionFunc("for", completeFormats(false))
	return cmd
}

// withSource records the file and its format on a coded error.
func withSource(err error, path string, src *formats.Descriptor) error {
	details := errors.GetErrorDetails(err)
	if details == nil {
		return err
	}
	if path != fileconv.StdinPath {
		details[errors.DetailPath] = path
	}
	details[errors.DetailFormat] = src.Ext
	return err
}
