// Package cli wires the usecases to the command surface. Commands open
// the store, run one operation, and close it; all state lives in the
// embedded database.
package cli

import (
	"github.com/spf13/cobra"

	"gitcircles.github/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath string
	Token  string
}

// NewRootCommand creates the root command for the gitcircles CLI.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gitcircles",
		Short: "GitCircles GitHub adapter for collecting merged pull requests",
		Long: "Tracks merged pull requests per repository, groups repositories into\n" +
			"projects, and synchronizes contributor wallet addresses with a\n" +
			"permanent audit trail.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", cfg.Database.Path, "database path")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "GitHub personal access token (defaults to GITHUB_TOKEN)")

	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newCollectCommand(opts, cfg))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newProjectCommand(opts))
	cmd.AddCommand(newWalletCommand(opts, cfg))

	return cmd
}

// token resolves the GitHub token from the flag or environment config.
func (o *RootOptions) token(cfg *config.Config) (string, error) {
	if o.Token != "" {
		return o.Token, nil
	}
	if cfg.GitHub.Token != "" {
		return cfg.GitHub.Token, nil
	}
	return "", errTokenRequired
}
