package usecases

import (
	"context"
	"fmt"
	"time"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/domain/repositories"
)

// ProjectUsecase handles project and membership management. The store has
// no foreign-key concept, so the one cross-entity integrity rule (no
// project deletion while repositories reference it) is enforced here.
type ProjectUsecase struct {
	projRepo  repositories.ProjectRepository
	ownerRepo repositories.ProjectOwnerRepository
	repoRepo  repositories.RepositoryRepository
	now       func() time.Time
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(
	projRepo repositories.ProjectRepository,
	ownerRepo repositories.ProjectOwnerRepository,
	repoRepo repositories.RepositoryRepository,
) *ProjectUsecase {
	return &ProjectUsecase{
		projRepo:  projRepo,
		ownerRepo: ownerRepo,
		repoRepo:  repoRepo,
		now:       time.Now,
	}
}

// Create creates a project with a slug-derived ID.
func (u *ProjectUsecase) Create(ctx context.Context, name, description string) (*entities.Project, error) {
	if name == "" {
		return nil, domainerrors.Validation("name", name, "must not be empty")
	}
	now := u.now()
	project := &entities.Project{
		ID:          entities.GenerateProjectID(name, now),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.projRepo.Upsert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns one project.
func (u *ProjectUsecase) Get(ctx context.Context, projectID string) (*entities.Project, error) {
	return u.projRepo.Get(ctx, projectID)
}

// List returns all projects.
func (u *ProjectUsecase) List(ctx context.Context) ([]*entities.Project, error) {
	return u.projRepo.List(ctx)
}

// Details returns a project with its owners and linked repositories.
func (u *ProjectUsecase) Details(ctx context.Context, projectID string) (*entities.Project, []*entities.ProjectOwner, []*entities.Repository, error) {
	project, err := u.projRepo.Get(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	owners, err := u.ownerRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	repos, err := u.repoRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	return project, owners, repos, nil
}

// Delete removes a project and its memberships. It refuses while any
// repository still references the project, naming the blockers.
func (u *ProjectUsecase) Delete(ctx context.Context, projectID string) error {
	if _, err := u.projRepo.Get(ctx, projectID); err != nil {
		return err
	}

	repos, err := u.repoRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if len(repos) > 0 {
		blocked := make([]string, len(repos))
		for i, repo := range repos {
			blocked[i] = repo.Slug()
		}
		return &domainerrors.IntegrityError{ProjectID: projectID, Repositories: blocked}
	}

	owners, err := u.ownerRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	return u.projRepo.Purge(ctx, projectID, owners)
}

// AddOwner upserts a membership. Re-adding with the same role is a no-op;
// a different role replaces the row.
func (u *ProjectUsecase) AddOwner(ctx context.Context, projectID, username, role string) error {
	if err := entities.ValidateSegment("username", username); err != nil {
		return err
	}
	if !entities.ValidRole(role) {
		return domainerrors.Validation("role", role, "must be one of: owner, admin, member")
	}
	if _, err := u.projRepo.Get(ctx, projectID); err != nil {
		return err
	}

	existing, err := u.ownerRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, owner := range existing {
		if owner.Username == username && owner.Role == role {
			return nil
		}
	}

	return u.ownerRepo.Add(ctx, &entities.ProjectOwner{
		ProjectID: projectID,
		Username:  username,
		Role:      role,
		AddedAt:   u.now(),
	})
}

// RemoveOwner deletes a membership; removing a non-member is a no-op.
func (u *ProjectUsecase) RemoveOwner(ctx context.Context, projectID, username string) error {
	if _, err := u.projRepo.Get(ctx, projectID); err != nil {
		return err
	}
	return u.ownerRepo.Remove(ctx, projectID, username)
}

// ProjectsForOwner resolves every project a username belongs to.
func (u *ProjectUsecase) ProjectsForOwner(ctx context.Context, username string) ([]*entities.Project, error) {
	ids, err := u.ownerRepo.ListProjectsForOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.Project, 0, len(ids))
	for _, id := range ids {
		project, err := u.projRepo.Get(ctx, id)
		if err != nil {
			if domainerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, project)
	}
	return out, nil
}

// LinkRepository associates a tracked repository with a project.
func (u *ProjectUsecase) LinkRepository(ctx context.Context, owner, name, projectID string) error {
	if _, err := u.projRepo.Get(ctx, projectID); err != nil {
		if domainerrors.IsNotFound(err) {
			return fmt.Errorf("project %q: %w", projectID, domainerrors.ErrNotFound)
		}
		return err
	}
	repo, err := u.repoRepo.Get(ctx, owner, name)
	if err != nil {
		return err
	}
	repo.ProjectID = projectID
	return u.repoRepo.Upsert(ctx, repo)
}

// UnlinkRepository clears a repository's project association.
func (u *ProjectUsecase) UnlinkRepository(ctx context.Context, owner, name string) error {
	repo, err := u.repoRepo.Get(ctx, owner, name)
	if err != nil {
		return err
	}
	repo.ProjectID = ""
	return u.repoRepo.Upsert(ctx, repo)
}
