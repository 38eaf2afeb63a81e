package repositories

import (
	"context"

	"gitcircles.github/internal/domain/entities"
)

// RepositoryRepository defines tracked-repository data operations
type RepositoryRepository interface {
	Upsert(ctx context.Context, repo *entities.Repository) error
	Get(ctx context.Context, owner, name string) (*entities.Repository, error)
	List(ctx context.Context) ([]*entities.Repository, error)
	// ListByProject is a bounded scan over the project→repository index.
	ListByProject(ctx context.Context, projectID string) ([]*entities.Repository, error)
}

// PullRequestRepository defines merged-PR data operations
type PullRequestRepository interface {
	// Upsert replaces the row for (repository, number) in place; it never
	// duplicates.
	Upsert(ctx context.Context, pr *entities.MergedPullRequest) error
	Get(ctx context.Context, repoSlug string, number int) (*entities.MergedPullRequest, error)
	ListByRepo(ctx context.Context, repoSlug string) ([]*entities.MergedPullRequest, error)
	CountByRepo(ctx context.Context, repoSlug string) (uint64, error)
}

// BaseBranchChangeRepository is the append-only change log for a
// repository's base branch.
type BaseBranchChangeRepository interface {
	Append(ctx context.Context, change *entities.BaseBranchChange) error
	ListByRepo(ctx context.Context, repoSlug string) ([]*entities.BaseBranchChange, error)
}
