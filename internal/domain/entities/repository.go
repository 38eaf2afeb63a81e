package entities

import (
	"time"
)

// Repository is a tracked GitHub repository whose merged pull requests
// feed the reward pipeline.
type Repository struct {
	Owner             string     `json:"owner"`
	Name              string     `json:"name"`
	CurrentBaseBranch string     `json:"current_base_branch"`
	LastSync          *time.Time `json:"last_sync,omitempty"`
	TotalPRs          uint64     `json:"total_prs"`
	FirstSync         time.Time  `json:"first_sync"`
	ProjectID         string     `json:"project_id,omitempty"`
}

// Slug returns the "owner/name" form used in keys and PR references.
func (r *Repository) Slug() string {
	return r.Owner + "/" + r.Name
}

// MergedPullRequest is one merged PR ingested from the GitHub feed.
type MergedPullRequest struct {
	Number         int       `json:"number"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	MergedAt       time.Time `json:"merged_at"`
	BaseBranch     string    `json:"base_branch"`
	MergeCommitSHA string    `json:"merge_commit_sha"`
	Repository     string    `json:"repository"` // "owner/name"
}

// Valid reports whether the record carries every field ingestion requires.
// Malformed feed records are skipped and counted, not fatal.
func (pr *MergedPullRequest) Valid() bool {
	return pr.Number > 0 &&
		pr.Author != "" &&
		!pr.MergedAt.IsZero() &&
		pr.MergeCommitSHA != "" &&
		pr.Repository != ""
}

// BaseBranchChange is an append-only record of a repository's base branch
// switching between collection runs.
type BaseBranchChange struct {
	Repository string    `json:"repository"`
	OldBranch  string    `json:"old_branch"`
	NewBranch  string    `json:"new_branch"`
	ChangedAt  time.Time `json:"changed_at"`
}

// IngestReport summarizes one collection run.
type IngestReport struct {
	Repository    string `json:"repository"`
	Ingested      int    `json:"ingested"`
	Skipped       int    `json:"skipped"`
	TotalTracked  uint64 `json:"total_tracked"`
	BranchChanged bool   `json:"branch_changed"`
	OldBranch     string `json:"old_branch,omitempty"`
	NewBranch     string `json:"new_branch,omitempty"`
}
