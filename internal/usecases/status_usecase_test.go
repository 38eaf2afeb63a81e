package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
)

func TestStatusUsecase_Overview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.projects().Create(ctx, "Widgets", "")
	require.NoError(t, err)
	require.NoError(t, env.repoRepo.Upsert(ctx, &entities.Repository{Owner: "acme", Name: "widgets", CurrentBaseBranch: "main"}))

	repos, projects, err := env.status().Overview(ctx)
	require.NoError(t, err)
	assert.Len(t, repos, 1)
	assert.Len(t, projects, 1)
}

func TestStatusUsecase_PullRequestsForProjectNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	project, err := env.projects().Create(ctx, "Widgets", "")
	require.NoError(t, err)

	require.NoError(t, env.repoRepo.Upsert(ctx, &entities.Repository{Owner: "acme", Name: "widgets", CurrentBaseBranch: "main", ProjectID: project.ID}))
	require.NoError(t, env.repoRepo.Upsert(ctx, &entities.Repository{Owner: "acme", Name: "gadgets", CurrentBaseBranch: "main", ProjectID: project.ID}))

	older := mergedPR(1, "alice", time.Unix(1500, 0).UTC())
	older.Repository = "acme/widgets"
	newer := mergedPR(7, "bob", time.Unix(1900, 0).UTC())
	newer.Repository = "acme/gadgets"
	middle := mergedPR(2, "carol", time.Unix(1700, 0).UTC())
	middle.Repository = "acme/widgets"
	for _, pr := range []*entities.MergedPullRequest{older, newer, middle} {
		require.NoError(t, env.prRepo.Upsert(ctx, pr))
	}

	prs, err := env.status().PullRequestsForProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, prs, 3)
	assert.Equal(t, 7, prs[0].Number)
	assert.Equal(t, 2, prs[1].Number)
	assert.Equal(t, 1, prs[2].Number)
}

func TestStatusUsecase_WalletLookupValidatesAddress(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.status().WalletLookup(context.Background(), "bogus")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestStatusUsecase_WalletLookupTrimsInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.walletSync(&staticClaim{claim: &entities.WalletClaim{Raw: testAddrA, Branch: "main"}})
	_, err := u.Sync(ctx, "alice")
	require.NoError(t, err)

	links, err := env.status().WalletLookup(ctx, " "+testAddrA+" ")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "alice", links[0].Login)
}

func TestStatusUsecase_WalletCurrentAndHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fetcher := &staticClaim{claim: &entities.WalletClaim{Raw: testAddrA, Branch: "main"}}
	u := env.walletSync(fetcher)
	_, err := u.Sync(ctx, "alice")
	require.NoError(t, err)
	fetcher.claim = &entities.WalletClaim{Raw: testAddrB, Branch: "main"}
	_, err = u.Sync(ctx, "alice")
	require.NoError(t, err)

	current, err := env.status().WalletCurrent(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, testAddrB, current.Address)

	history, err := env.status().WalletHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, testAddrA, history[0].Address)
}

func TestStatusUsecase_BaseBranchHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.changeRepo.Append(ctx, &entities.BaseBranchChange{
		Repository: "acme/widgets", OldBranch: "main", NewBranch: "develop", ChangedAt: time.Unix(1000, 0).UTC(),
	}))

	changes, err := env.status().BaseBranchHistory(ctx, "acme/widgets")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "develop", changes[0].NewBranch)
}
