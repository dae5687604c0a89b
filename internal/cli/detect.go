package cli

import (
	"os"

	"github.com/arthur-debert/fileconv/pkg/detect"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) newDetectCmd() *cobra.Command {
	var classifier string

	cmd := &cobra.Command{
		Use:     "detect <file>...",
		Short:   MsgDetectShort,
		Long:    MsgDetectLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				in := detect.Input{Path: file, Classifier: classifier}

				// a missing file can still be detected by its name
				content, err := afero.ReadFile(a.fs, file)
				switch {
				case err == nil:
					in.Content = content
				case !os.IsNotExist(err):
					return errors.Wrapf(err, errors.ErrIOFailure, "cannot read %s", file).
						WithDetail(errors.DetailPath, file)
				}

				d, rule, ok := detect.Explain(in)
				if err := a.renderer.RenderDetection(display.NewDetection(file, d, rule, ok)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&classifier, "classifier", "", MsgFlagClassifier)
	return cmd
}
