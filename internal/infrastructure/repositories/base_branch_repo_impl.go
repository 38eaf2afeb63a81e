package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// BaseBranchChangeRepository implements the append-only base branch log
type BaseBranchChangeRepository struct {
	store *store.Store
}

// NewBaseBranchChangeRepository creates a new base branch change repository
func NewBaseBranchChangeRepository(s *store.Store) *BaseBranchChangeRepository {
	return &BaseBranchChangeRepository{store: s}
}

// Append records one change, keyed by the change's nanosecond timestamp.
func (r *BaseBranchChangeRepository) Append(ctx context.Context, change *entities.BaseBranchChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(change)
	if err != nil {
		return domainerrors.Persistence("encode base branch change", err)
	}
	return r.store.Put(store.PartBaseBranchHistory, baseChangeKey(change.Repository, change.ChangedAt), value)
}

// ListByRepo returns the change log for a repository in chronological
// order (the timestamp is embedded in the key).
func (r *BaseBranchChangeRepository) ListByRepo(ctx context.Context, repoSlug string) ([]*entities.BaseBranchChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.BaseBranchChange
	err := r.store.Scan(store.PartBaseBranchHistory, baseChangePrefix(repoSlug), func(_, v []byte) error {
		var change entities.BaseBranchChange
		if err := json.Unmarshal(v, &change); err != nil {
			return err
		}
		out = append(out, &change)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
