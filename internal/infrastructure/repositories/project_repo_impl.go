package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// ProjectRepository implements project data operations
type ProjectRepository struct {
	store *store.Store
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(s *store.Store) *ProjectRepository {
	return &ProjectRepository{store: s}
}

// Upsert writes the project row.
func (r *ProjectRepository) Upsert(ctx context.Context, project *entities.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(project)
	if err != nil {
		return domainerrors.Persistence("encode project", err)
	}
	return r.store.Put(store.PartProjects, projectKey(project.ID), value)
}

// Get returns the project or ErrNotFound.
func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*entities.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.store.Get(store.PartProjects, projectKey(projectID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domainerrors.ErrNotFound
	}
	var project entities.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, domainerrors.Persistence("decode project", err)
	}
	return &project, nil
}

// List returns every project in key order.
func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.Project
	err := r.store.Scan(store.PartProjects, projectListPrefix(), func(_, v []byte) error {
		var project entities.Project
		if err := json.Unmarshal(v, &project); err != nil {
			return err
		}
		out = append(out, &project)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Purge deletes the project row plus every membership row and
// owner-index row in one batch, so a crash never leaves owner rows for a
// project that no longer exists.
func (r *ProjectRepository) Purge(ctx context.Context, projectID string, owners []*entities.ProjectOwner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Batch(func(tx *store.Tx) error {
		for _, owner := range owners {
			if err := tx.Delete(store.PartProjectOwners, ownerKey(projectID, owner.Username)); err != nil {
				return err
			}
			if err := tx.Delete(store.PartOwnerProjects, ownerProjKey(owner.Username, projectID)); err != nil {
				return err
			}
		}
		return tx.Delete(store.PartProjects, projectKey(projectID))
	})
}
