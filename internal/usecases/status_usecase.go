package usecases

import (
	"context"
	"errors"
	"sort"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/domain/repositories"
	"gitcircles.github/pkg/ergo"
)

// StatusUsecase serves the read-only views: tracked repositories,
// projects, reverse wallet lookups, and audit histories.
type StatusUsecase struct {
	repoRepo   repositories.RepositoryRepository
	prRepo     repositories.PullRequestRepository
	changeRepo repositories.BaseBranchChangeRepository
	projRepo   repositories.ProjectRepository
	walletRepo repositories.WalletRepository
}

// NewStatusUsecase creates a new status usecase
func NewStatusUsecase(
	repoRepo repositories.RepositoryRepository,
	prRepo repositories.PullRequestRepository,
	changeRepo repositories.BaseBranchChangeRepository,
	projRepo repositories.ProjectRepository,
	walletRepo repositories.WalletRepository,
) *StatusUsecase {
	return &StatusUsecase{
		repoRepo:   repoRepo,
		prRepo:     prRepo,
		changeRepo: changeRepo,
		projRepo:   projRepo,
		walletRepo: walletRepo,
	}
}

// Overview returns all tracked repositories and projects.
func (u *StatusUsecase) Overview(ctx context.Context) ([]*entities.Repository, []*entities.Project, error) {
	repos, err := u.repoRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	projects, err := u.projRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return repos, projects, nil
}

// PullRequestsForProject merges every linked repository's PRs, newest
// merge first.
func (u *StatusUsecase) PullRequestsForProject(ctx context.Context, projectID string) ([]*entities.MergedPullRequest, error) {
	repos, err := u.repoRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var all []*entities.MergedPullRequest
	for _, repo := range repos {
		prs, err := u.prRepo.ListByRepo(ctx, repo.Slug())
		if err != nil {
			return nil, err
		}
		all = append(all, prs...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].MergedAt.After(all[j].MergedAt) })
	return all, nil
}

// BaseBranchHistory returns a repository's base branch change log.
func (u *StatusUsecase) BaseBranchHistory(ctx context.Context, repoSlug string) ([]*entities.BaseBranchChange, error) {
	return u.changeRepo.ListByRepo(ctx, repoSlug)
}

// WalletLookup returns every identity ever linked to the address. The
// address format is validated first so typos surface as validation
// errors rather than empty results.
func (u *StatusUsecase) WalletLookup(ctx context.Context, address string) ([]*entities.WalletLink, error) {
	validated, err := ergo.ValidateP2PK(address)
	if err != nil {
		var invalid *ergo.InvalidAddressError
		if errors.As(err, &invalid) {
			return nil, domainerrors.Validation("wallet address", invalid.Address, invalid.Reason)
		}
		return nil, err
	}
	return u.walletRepo.Lookup(ctx, validated)
}

// WalletCurrent returns the current wallet record for a login.
func (u *StatusUsecase) WalletCurrent(ctx context.Context, login string) (*entities.UserWallet, error) {
	return u.walletRepo.GetCurrent(ctx, entities.PlatformGitHub, login)
}

// WalletHistory returns a login's audit trail, chronological.
func (u *StatusUsecase) WalletHistory(ctx context.Context, login string) ([]*entities.WalletHistoryEntry, error) {
	return u.walletRepo.History(ctx, entities.PlatformGitHub, login)
}
