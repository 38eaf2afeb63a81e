package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitcircles.github/internal/domain/entities"
)

func TestBaseBranchChangeRepository_AppendAndList(t *testing.T) {
	s := newTestStore(t)
	repo := NewBaseBranchChangeRepository(s)
	ctx := context.Background()

	first := &entities.BaseBranchChange{
		Repository: "acme/widgets",
		OldBranch:  "master",
		NewBranch:  "main",
		ChangedAt:  utc(1000, 0),
	}
	second := &entities.BaseBranchChange{
		Repository: "acme/widgets",
		OldBranch:  "main",
		NewBranch:  "develop",
		ChangedAt:  utc(2000, 0),
	}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	history, err := repo.ListByRepo(ctx, "acme/widgets")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "main", history[0].NewBranch)
	assert.Equal(t, "develop", history[1].NewBranch)
}

func TestBaseBranchChangeRepository_SameSecondChangesBothPersist(t *testing.T) {
	s := newTestStore(t)
	repo := NewBaseBranchChangeRepository(s)
	ctx := context.Background()

	// Two changes within one wall-clock second. The nanosecond key keeps
	// them on distinct rows instead of overwriting each other.
	at := utc(1000, 0)
	first := &entities.BaseBranchChange{Repository: "acme/widgets", OldBranch: "main", NewBranch: "develop", ChangedAt: at}
	second := &entities.BaseBranchChange{Repository: "acme/widgets", OldBranch: "develop", NewBranch: "main", ChangedAt: at.Add(250 * time.Millisecond)}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	history, err := repo.ListByRepo(ctx, "acme/widgets")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "develop", history[0].NewBranch)
	assert.Equal(t, "main", history[1].NewBranch)
}
