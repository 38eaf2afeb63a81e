package repositories

import (
	"context"

	"gitcircles.github/internal/domain/entities"
)

// ProjectRepository defines project data operations
type ProjectRepository interface {
	Upsert(ctx context.Context, project *entities.Project) error
	Get(ctx context.Context, projectID string) (*entities.Project, error)
	List(ctx context.Context) ([]*entities.Project, error)
	// Purge removes the project row and all of its owner rows (including
	// owner-index rows) in one atomic batch. Referential checks against
	// linked repositories belong to the caller.
	Purge(ctx context.Context, projectID string, owners []*entities.ProjectOwner) error
}

// ProjectOwnerRepository defines project membership operations
type ProjectOwnerRepository interface {
	// Add upserts the membership row; re-adding with the same role is a
	// no-op in effect, a different role replaces it.
	Add(ctx context.Context, owner *entities.ProjectOwner) error
	// Remove deletes the membership row; removing an absent owner is a
	// no-op, not an error.
	Remove(ctx context.Context, projectID, username string) error
	ListByProject(ctx context.Context, projectID string) ([]*entities.ProjectOwner, error)
	// ListProjectsForOwner is a bounded scan over the owner→project index.
	ListProjectsForOwner(ctx context.Context, username string) ([]string, error)
}
