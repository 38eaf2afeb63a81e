package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Database initialized at %s\n", opts.DBPath)
			return nil
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status of tracked repositories and projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			out := cmd.OutOrStdout()

			if projectID != "" {
				project, owners, repos, err := e.project.Details(cmd.Context(), projectID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Project: %s (%s)\n", project.Name, project.ID)
				if project.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", project.Description)
				}
				fmt.Fprintf(out, "\nOwners (%d):\n", len(owners))
				renderOwners(out, owners)
				fmt.Fprintf(out, "\nRepositories (%d):\n", len(repos))
				renderRepositories(out, repos)
				return nil
			}

			repos, projects, err := e.status.Overview(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) > 0 {
				fmt.Fprintln(out, "Projects:")
				renderProjects(out, projects)
				fmt.Fprintln(out)
			}
			if len(repos) > 0 {
				fmt.Fprintln(out, "Repositories:")
				renderRepositories(out, repos)
			} else if len(projects) == 0 {
				fmt.Fprintln(out, "No repositories or projects tracked yet.")
				fmt.Fprintln(out, "Use 'gitcircles collect --repo owner/name' to start tracking.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project-id", "p", "", "show one project only")
	return cmd
}
