package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitcircles.github/internal/domain/entities"
)

func newProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			project, err := e.project.Create(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q with ID %s\n", project.Name, project.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "project description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			projects, err := e.project.List(cmd.Context())
			if err != nil {
				return err
			}
			renderProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show detailed information about a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			project, owners, repos, err := e.project.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project: %s (%s)\n", project.Name, project.ID)
			if project.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", project.Description)
			}
			fmt.Fprintf(out, "\nOwners (%d):\n", len(owners))
			renderOwners(out, owners)
			fmt.Fprintf(out, "\nRepositories (%d):\n", len(repos))
			renderRepositories(out, repos)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project (refused while repositories are linked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.project.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}

	var role string
	addOwner := &cobra.Command{
		Use:   "add-owner <project-id> <username>",
		Short: "Add an owner to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.project.AddOwner(cmd.Context(), args[0], args[1], role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s to project %s\n", args[1], role, args[0])
			return nil
		},
	}
	addOwner.Flags().StringVarP(&role, "role", "r", entities.RoleMember, "role (owner, admin, member)")

	removeOwner := &cobra.Command{
		Use:   "remove-owner <project-id> <username>",
		Short: "Remove an owner from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.project.RemoveOwner(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from project %s\n", args[1], args[0])
			return nil
		},
	}

	link := &cobra.Command{
		Use:   "link <owner/name> <project-id>",
		Short: "Associate a tracked repository with a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := entities.ParseRepoSlug(args[0])
			if err != nil {
				return err
			}
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.project.LinkRepository(cmd.Context(), owner, name, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to project %s\n", args[0], args[1])
			return nil
		},
	}

	unlink := &cobra.Command{
		Use:   "unlink <owner/name>",
		Short: "Clear a repository's project association",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := entities.ParseRepoSlug(args[0])
			if err != nil {
				return err
			}
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.project.UnlinkRepository(cmd.Context(), owner, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, show, del, addOwner, removeOwner, link, unlink)
	return cmd
}
