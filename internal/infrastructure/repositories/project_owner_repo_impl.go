package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// ProjectOwnerRepository implements project membership operations
type ProjectOwnerRepository struct {
	store *store.Store
}

// NewProjectOwnerRepository creates a new project owner repository
func NewProjectOwnerRepository(s *store.Store) *ProjectOwnerRepository {
	return &ProjectOwnerRepository{store: s}
}

// Add upserts the membership row and its owner-index row together.
func (r *ProjectOwnerRepository) Add(ctx context.Context, owner *entities.ProjectOwner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(owner)
	if err != nil {
		return domainerrors.Persistence("encode project owner", err)
	}
	key := ownerKey(owner.ProjectID, owner.Username)
	return r.store.Batch(func(tx *store.Tx) error {
		if err := tx.Put(store.PartProjectOwners, key, value); err != nil {
			return err
		}
		return tx.Put(store.PartOwnerProjects, ownerProjKey(owner.Username, owner.ProjectID), []byte(owner.ProjectID))
	})
}

// Remove deletes the membership and index rows; absent rows are a no-op.
func (r *ProjectOwnerRepository) Remove(ctx context.Context, projectID, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Batch(func(tx *store.Tx) error {
		if err := tx.Delete(store.PartProjectOwners, ownerKey(projectID, username)); err != nil {
			return err
		}
		return tx.Delete(store.PartOwnerProjects, ownerProjKey(username, projectID))
	})
}

// ListByProject is a bounded scan on the project prefix.
func (r *ProjectOwnerRepository) ListByProject(ctx context.Context, projectID string) ([]*entities.ProjectOwner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.ProjectOwner
	err := r.store.Scan(store.PartProjectOwners, ownerPrefix(projectID), func(_, v []byte) error {
		var owner entities.ProjectOwner
		if err := json.Unmarshal(v, &owner); err != nil {
			return err
		}
		out = append(out, &owner)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjectsForOwner is a bounded scan over the owner_projects index.
func (r *ProjectOwnerRepository) ListProjectsForOwner(ctx context.Context, username string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	err := r.store.Scan(store.PartOwnerProjects, ownerProjPrefix(username), func(_, v []byte) error {
		out = append(out, string(v))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
