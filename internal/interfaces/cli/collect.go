package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitcircles.github/internal/config"
	"gitcircles.github/internal/domain/entities"
	"gitcircles.github/internal/infrastructure/github"
	"gitcircles.github/internal/usecases"
)

func newCollectCommand(opts *RootOptions, cfg *config.Config) *cobra.Command {
	var (
		repo       string
		baseBranch string
		days       int
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect merged pull requests from a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := entities.ParseRepoSlug(repo)
			if err != nil {
				return err
			}
			token, err := opts.token(cfg)
			if err != nil {
				return err
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			var since *time.Time
			if days > 0 {
				cutoff := time.Now().AddDate(0, 0, -days)
				since = &cutoff
			}

			client := github.NewClient(token, cfg.GitHub.ProfileRepo, cfg.GitHub.WalletFile)
			feed := client.MergedPullRequests(owner, name, baseBranch, since)

			fmt.Fprintf(cmd.OutOrStdout(), "Collecting merged PRs from %s/%s (base: %s)\n", owner, name, baseBranch)
			report, err := e.ingest.Run(cmd.Context(), usecases.IngestInput{
				Owner:      owner,
				Name:       name,
				BaseBranch: baseBranch,
				Since:      since,
				ProjectID:  projectID,
			}, feed)
			if err != nil {
				return err
			}

			if report.BranchChanged {
				fmt.Fprintf(cmd.OutOrStdout(), "Base branch changed from %q to %q\n", report.OldBranch, report.NewBranch)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d PRs (%d skipped). %d total PRs tracked.\n",
				report.Ingested, report.Skipped, report.TotalTracked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "repository in 'owner/name' form")
	cmd.Flags().StringVarP(&baseBranch, "base-branch", "b", "main", "target base branch")
	cmd.Flags().IntVarP(&days, "days", "d", 0, "number of days to look back (0 = no limit)")
	cmd.Flags().StringVarP(&projectID, "project-id", "p", "", "project to associate the repository with")
	cmd.MarkFlagRequired("repo")

	return cmd
}
