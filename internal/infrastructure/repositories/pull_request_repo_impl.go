package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// PullRequestRepository implements merged-PR data operations
type PullRequestRepository struct {
	store *store.Store
}

// NewPullRequestRepository creates a new pull request repository
func NewPullRequestRepository(s *store.Store) *PullRequestRepository {
	return &PullRequestRepository{store: s}
}

// Upsert replaces the row for (repository, number) in place.
func (r *PullRequestRepository) Upsert(ctx context.Context, pr *entities.MergedPullRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(pr)
	if err != nil {
		return domainerrors.Persistence("encode pull request", err)
	}
	return r.store.Put(store.PartPullRequests, prKey(pr.Repository, pr.Number), value)
}

// Get returns the stored PR or ErrNotFound.
func (r *PullRequestRepository) Get(ctx context.Context, repoSlug string, number int) (*entities.MergedPullRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.store.Get(store.PartPullRequests, prKey(repoSlug, number))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domainerrors.ErrNotFound
	}
	var pr entities.MergedPullRequest
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, domainerrors.Persistence("decode pull request", err)
	}
	return &pr, nil
}

// ListByRepo is a bounded scan over the repository's PR prefix.
func (r *PullRequestRepository) ListByRepo(ctx context.Context, repoSlug string) ([]*entities.MergedPullRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.MergedPullRequest
	err := r.store.Scan(store.PartPullRequests, prPrefix(repoSlug), func(_, v []byte) error {
		var pr entities.MergedPullRequest
		if err := json.Unmarshal(v, &pr); err != nil {
			return err
		}
		out = append(out, &pr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountByRepo counts stored PRs for the repository without decoding them.
func (r *PullRequestRepository) CountByRepo(ctx context.Context, repoSlug string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n uint64
	err := r.store.Scan(store.PartPullRequests, prPrefix(repoSlug), func(_, _ []byte) error {
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
