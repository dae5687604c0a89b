package cli

import (
	"github.com/arthur-debert/fileconv/pkg/ui/display"
	"github.com/spf13/cobra"
)

func (a *app) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderer.RenderFormats(display.Formats())
		},
	}
}
