package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fincast-dev/fincast/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "fincast",
		Short:   "Company financial forecasting without plugs or circularity",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newForecastCommand(&verbose))
	rootCmd.AddCommand(newBacktestCommand(&verbose))
	rootCmd.AddCommand(newRunsCommand())

	return rootCmd
}

// newLogger builds the CLI logger. Debug level when verbose, errors to stderr
// either way so statement output on stdout stays clean.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
	}
	return cfg.Build()
}
