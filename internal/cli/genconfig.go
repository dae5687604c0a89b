package cli

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/fileconv/pkg/config"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/filesystem"
	"github.com/arthur-debert/fileconv/pkg/paths"
	"github.com/spf13/cobra"
)

type genConfigOptions struct {
	write   bool
	user    bool
	current bool
	force   bool
}

func (a *app) newGenConfigCmd() *cobra.Command {
	opts := &genConfigOptions{}

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := []byte(config.GenerateConfigContent())
			if opts.current {
				var err error
				if content, err = config.Generate(a.cfg); err != nil {
					return err
				}
			}

			if !opts.write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}
			return a.writeConfig(content, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.write, "write", "w", false, MsgFlagWrite)
	f.BoolVar(&opts.user, "user", false, MsgFlagUser)
	f.BoolVar(&opts.current, "current", false, MsgFlagCurrent)
	f.BoolVar(&opts.force, "force", false, MsgFlagForce)

	return cmd
}

func (a *app) writeConfig(content []byte, opts *genConfigOptions) error {
	target := paths.LocalConfigFile
	if opts.user {
		target = paths.ConfigFilePath()
		if a.configFile != "" {
			target = a.configFile
		}
	}

	fsys := filesystem.NewAferoFS(a.fs)
	if _, err := fsys.Stat(target); err == nil && !opts.force {
		return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target).
			WithDetail(errors.DetailPath, target)
	}

	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot create %s", filepath.Dir(target))
	}
	if err := fsys.WriteFile(target, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "cannot write %s", target).
			WithDetail(errors.DetailPath, target)
	}
	return a.renderer.RenderMessage(fmt.Sprintf(MsgConfigWritten, target))
}
