package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// RepositoryRepository implements tracked-repository data operations
type RepositoryRepository struct {
	store *store.Store
}

// NewRepositoryRepository creates a new repository repository
func NewRepositoryRepository(s *store.Store) *RepositoryRepository {
	return &RepositoryRepository{store: s}
}

// Upsert writes the repository row and keeps the project→repository index
// in step. The row, the removal of a stale index link, and the new link
// are applied in one batch.
func (r *RepositoryRepository) Upsert(ctx context.Context, repo *entities.Repository) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(repo)
	if err != nil {
		return domainerrors.Persistence("encode repository", err)
	}

	key := repoKey(repo.Owner, repo.Name)
	return r.store.Batch(func(tx *store.Tx) error {
		prev, err := tx.Get(store.PartRepositories, key)
		if err != nil {
			return err
		}
		if prev != nil {
			var old entities.Repository
			if err := json.Unmarshal(prev, &old); err != nil {
				return err
			}
			if old.ProjectID != "" && old.ProjectID != repo.ProjectID {
				if err := tx.Delete(store.PartProjectRepos, projRepoKey(old.ProjectID, old.Slug())); err != nil {
					return err
				}
			}
		}
		if err := tx.Put(store.PartRepositories, key, value); err != nil {
			return err
		}
		if repo.ProjectID != "" {
			return tx.Put(store.PartProjectRepos, projRepoKey(repo.ProjectID, repo.Slug()), key)
		}
		return nil
	})
}

// Get returns the repository or ErrNotFound.
func (r *RepositoryRepository) Get(ctx context.Context, owner, name string) (*entities.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.store.Get(store.PartRepositories, repoKey(owner, name))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domainerrors.ErrNotFound
	}
	var repo entities.Repository
	if err := json.Unmarshal(raw, &repo); err != nil {
		return nil, domainerrors.Persistence("decode repository", err)
	}
	return &repo, nil
}

// List returns every tracked repository in key order.
func (r *RepositoryRepository) List(ctx context.Context) ([]*entities.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.Repository
	err := r.store.Scan(store.PartRepositories, repoListPrefix(), func(_, v []byte) error {
		var repo entities.Repository
		if err := json.Unmarshal(v, &repo); err != nil {
			return err
		}
		out = append(out, &repo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProject resolves repositories through the project_repos index, a
// bounded scan on the project prefix.
func (r *RepositoryRepository) ListByProject(ctx context.Context, projectID string) ([]*entities.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var repoKeys [][]byte
	err := r.store.Scan(store.PartProjectRepos, projRepoPrefix(projectID), func(_, v []byte) error {
		repoKeys = append(repoKeys, append([]byte(nil), v...))
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Repository, 0, len(repoKeys))
	for _, key := range repoKeys {
		raw, err := r.store.Get(store.PartRepositories, key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		var repo entities.Repository
		if err := json.Unmarshal(raw, &repo); err != nil {
			return nil, domainerrors.Persistence("decode repository", err)
		}
		out = append(out, &repo)
	}
	return out, nil
}
