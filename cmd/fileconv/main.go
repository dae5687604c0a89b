package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fileconv/internal/cli"
	"github.com/arthur-debert/fileconv/pkg/output/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", cli.ErrorMessage(err)))

		// Show usage only when the command line itself was wrong
		if cli.IsUsageError(err) {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Usage()
		}

		os.Exit(cli.ExitCode(err))
	}
}
