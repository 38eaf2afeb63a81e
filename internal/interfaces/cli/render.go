package cli

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"gitcircles.github/internal/domain/entities"
)

const displayTime = "2006-01-02 15:04 UTC"

func renderRepositories(w io.Writer, repos []*entities.Repository) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Repository", "Base Branch", "Last Sync", "Total PRs", "First Tracked", "Project"})
	for _, repo := range repos {
		lastSync := "Never"
		if repo.LastSync != nil {
			lastSync = repo.LastSync.UTC().Format(displayTime)
		}
		table.Append([]string{
			repo.Slug(),
			repo.CurrentBaseBranch,
			lastSync,
			strconv.FormatUint(repo.TotalPRs, 10),
			repo.FirstSync.UTC().Format("2006-01-02"),
			repo.ProjectID,
		})
	}
	table.Render()
}

func renderProjects(w io.Writer, projects []*entities.Project) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Project ID", "Name", "Description", "Created", "Updated"})
	for _, project := range projects {
		table.Append([]string{
			project.ID,
			project.Name,
			project.Description,
			project.CreatedAt.UTC().Format("2006-01-02"),
			project.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}
	table.Render()
}

func renderOwners(w io.Writer, owners []*entities.ProjectOwner) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Username", "Role", "Added"})
	for _, owner := range owners {
		table.Append([]string{
			owner.Username,
			owner.Role,
			owner.AddedAt.UTC().Format("2006-01-02"),
		})
	}
	table.Render()
}

func renderWalletLinks(w io.Writer, links []*entities.WalletLink) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Platform", "Login", "Linked At"})
	for _, link := range links {
		table.Append([]string{
			link.Platform,
			link.Login,
			link.LinkedAt.UTC().Format(displayTime),
		})
	}
	table.Render()
}

func renderWalletHistory(w io.Writer, entries []*entities.WalletHistoryEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Recorded At", "Address", "Source Branch"})
	for _, entry := range entries {
		table.Append([]string{
			entry.RecordedAt.UTC().Format(time.RFC3339),
			entry.Address,
			entry.Source.Branch,
		})
	}
	table.Render()
}
