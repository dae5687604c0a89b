package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/fileconv/internal/version"
	"github.com/arthur-debert/fileconv/pkg/cobrax/topics"
	"github.com/arthur-debert/fileconv/pkg/config"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/params"
	"github.com/arthur-debert/fileconv/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// app carries the state shared by all commands of one invocation.
type app struct {
	fs afero.Fs

	verbosity  int
	configFile string
	sets       []string
	output     string

	cfg      *config.Config
	renderer ui.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "fileconv",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	pf.StringArrayVar(&a.sets, "set", nil, MsgFlagSet)
	pf.StringVarP(&a.output, "output", "o", "auto", MsgFlagOutput)
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newConvertCmd())
	rootCmd.AddCommand(a.newDetectCmd())
	rootCmd.AddCommand(a.newInspectCmd())
	rootCmd.AddCommand(a.newFormatsCmd())
	rootCmd.AddCommand(a.newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			logger := logging.GetLogger("cli")
			logger.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// setup configures logging, loads the configuration and picks the renderer.
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLoggerWithOutput(a.verbosity, cmd.ErrOrStderr())
	log := logging.GetLogger("cli")

	overrides, bad := params.ParseAssignments(a.sets)
	if len(bad) > 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrBadOverrides, strings.Join(bad, ", "))
	}

	if a.configFile != "" {
		if _, err := os.Stat(a.configFile); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", a.configFile).
				WithDetail(errors.DetailPath, a.configFile)
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		UserFile:  a.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	if !cfg.Logging.File {
		logging.SetupConsoleLogger(a.verbosity, cmd.ErrOrStderr())
	}
	config.Initialize(cfg)
	a.cfg = cfg

	format, err := ui.ParseFormat(a.output)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid --output")
	}
	a.renderer, err = ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot create renderer")
	}

	log.Debug().
		Str("command", cmd.Name()).
		Str("output", format.String()).
		Str("target_format", cfg.TargetFormat).
		Msg("Command started")
	return nil
}
