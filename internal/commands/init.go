package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var company string
	var ticker string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new forecast workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, company, ticker)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker symbol")

	return cmd
}

func runInit(dir, company, ticker string) error {
	dirs := []string{
		"data",
		"forecasts",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(company, ticker)
	if err := config.Save(filepath.Join(dir, "fincast.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := ".fincast/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "data", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: "+company, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized forecast workspace at %s (%s)\n", dir, hash)
	return nil
}
