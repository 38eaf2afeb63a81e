package usecases

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitcircles.github/internal/domain/entities"
	infra "gitcircles.github/internal/infrastructure/repositories"
	"gitcircles.github/internal/infrastructure/store"
)

const (
	testAddrA = "9hQb8QxZ4gsgAWtGvqh3HPpYCexEQhVsWM4QBQ3AFhSVERPfoM5"
	testAddrB = "9fRAWhdxEsTcdb8PhGNrZfwqa65zfkuYHAMmkQLcic1gdLSV5vA"
)

// testEnv wires every usecase against one bbolt-backed store.
type testEnv struct {
	repoRepo   *infra.RepositoryRepository
	prRepo     *infra.PullRequestRepository
	changeRepo *infra.BaseBranchChangeRepository
	projRepo   *infra.ProjectRepository
	ownerRepo  *infra.ProjectOwnerRepository
	walletRepo *infra.WalletRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return &testEnv{
		repoRepo:   infra.NewRepositoryRepository(s),
		prRepo:     infra.NewPullRequestRepository(s),
		changeRepo: infra.NewBaseBranchChangeRepository(s),
		projRepo:   infra.NewProjectRepository(s),
		ownerRepo:  infra.NewProjectOwnerRepository(s),
		walletRepo: infra.NewWalletRepository(s),
	}
}

func (e *testEnv) ingest() *IngestUsecase {
	u := NewIngestUsecase(e.repoRepo, e.prRepo, e.changeRepo, e.projRepo)
	u.now = clockAt(2000)
	return u
}

func (e *testEnv) projects() *ProjectUsecase {
	u := NewProjectUsecase(e.projRepo, e.ownerRepo, e.repoRepo)
	u.now = clockAt(2000)
	return u
}

func (e *testEnv) status() *StatusUsecase {
	return NewStatusUsecase(e.repoRepo, e.prRepo, e.changeRepo, e.projRepo, e.walletRepo)
}

// clockAt returns a deterministic clock that advances one second per call.
func clockAt(sec int64) func() time.Time {
	next := sec
	return func() time.Time {
		now := time.Unix(next, 0).UTC()
		next++
		return now
	}
}

// staticFeed serves prepared pages, then exhaustion.
type staticFeed struct {
	pages [][]*entities.MergedPullRequest
	err   error
}

func (f *staticFeed) Next(_ context.Context) ([]*entities.MergedPullRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.pages) == 0 {
		return nil, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func feedOf(prs ...*entities.MergedPullRequest) *staticFeed {
	return &staticFeed{pages: [][]*entities.MergedPullRequest{prs}}
}

func mergedPR(number int, author string, mergedAt time.Time) *entities.MergedPullRequest {
	return &entities.MergedPullRequest{
		Number:         number,
		Title:          "change something",
		Author:         author,
		MergedAt:       mergedAt,
		BaseBranch:     "main",
		MergeCommitSHA: "abc123",
	}
}

// staticClaim serves one prepared claim result.
type staticClaim struct {
	claim *entities.WalletClaim
	err   error
	calls int
}

func (c *staticClaim) FetchClaim(_ context.Context, _ string) (*entities.WalletClaim, error) {
	c.calls++
	return c.claim, c.err
}
