package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitcircles.github/internal/domain/entities"
)

func TestProjectOwnerRepository_AddAndList(t *testing.T) {
	repo := NewProjectOwnerRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "alice", Role: entities.RoleOwner, AddedAt: utc(10, 0)}))
	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "bob", Role: entities.RoleAdmin, AddedAt: utc(11, 0)}))
	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "beta_2", Username: "carol", Role: entities.RoleMember, AddedAt: utc(12, 0)}))

	owners, err := repo.ListByProject(ctx, "alpha_1")
	require.NoError(t, err)
	require.Len(t, owners, 2)
	assert.Equal(t, "alice", owners[0].Username)
	assert.Equal(t, entities.RoleOwner, owners[0].Role)
	assert.Equal(t, "bob", owners[1].Username)
}

func TestProjectOwnerRepository_AddOverwritesRole(t *testing.T) {
	repo := NewProjectOwnerRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "alice", Role: entities.RoleMember, AddedAt: utc(10, 0)}))
	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "alice", Role: entities.RoleAdmin, AddedAt: utc(20, 0)}))

	owners, err := repo.ListByProject(ctx, "alpha_1")
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, entities.RoleAdmin, owners[0].Role)
}

func TestProjectOwnerRepository_RemoveIsIdempotent(t *testing.T) {
	repo := NewProjectOwnerRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "alice", Role: entities.RoleOwner, AddedAt: utc(10, 0)}))
	require.NoError(t, repo.Remove(ctx, "alpha_1", "alice"))
	require.NoError(t, repo.Remove(ctx, "alpha_1", "alice"))

	owners, err := repo.ListByProject(ctx, "alpha_1")
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestProjectOwnerRepository_ListProjectsForOwner(t *testing.T) {
	repo := NewProjectOwnerRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "alpha_1", Username: "alice", Role: entities.RoleOwner, AddedAt: utc(10, 0)}))
	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "beta_2", Username: "alice", Role: entities.RoleMember, AddedAt: utc(11, 0)}))
	require.NoError(t, repo.Add(ctx, &entities.ProjectOwner{ProjectID: "gamma_3", Username: "bob", Role: entities.RoleOwner, AddedAt: utc(12, 0)}))

	ids, err := repo.ListProjectsForOwner(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha_1", "beta_2"}, ids)

	require.NoError(t, repo.Remove(ctx, "beta_2", "alice"))
	ids, err = repo.ListProjectsForOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha_1"}, ids)
}
