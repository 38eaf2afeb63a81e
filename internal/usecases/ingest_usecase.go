package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/domain/repositories"
	"gitcircles.github/pkg/logger"
)

// PRFeed is the ordered, finite, restartable sequence of merged PR
// records supplied by the GitHub collaborator. Next returns nil when the
// feed is exhausted; a non-nil empty batch is a page with nothing to keep.
type PRFeed interface {
	Next(ctx context.Context) ([]*entities.MergedPullRequest, error)
}

// IngestInput describes one collection run.
type IngestInput struct {
	Owner      string
	Name       string
	BaseBranch string
	Since      *time.Time
	ProjectID  string
}

// IngestUsecase handles PR collection: idempotent upserts plus
// change-data-capture on the repository's base branch.
type IngestUsecase struct {
	repoRepo   repositories.RepositoryRepository
	prRepo     repositories.PullRequestRepository
	changeRepo repositories.BaseBranchChangeRepository
	projRepo   repositories.ProjectRepository
	now        func() time.Time
}

// NewIngestUsecase creates a new ingest usecase
func NewIngestUsecase(
	repoRepo repositories.RepositoryRepository,
	prRepo repositories.PullRequestRepository,
	changeRepo repositories.BaseBranchChangeRepository,
	projRepo repositories.ProjectRepository,
) *IngestUsecase {
	return &IngestUsecase{
		repoRepo:   repoRepo,
		prRepo:     prRepo,
		changeRepo: changeRepo,
		projRepo:   projRepo,
		now:        time.Now,
	}
}

// Run ingests the feed page by page: each page is durably upserted before
// the next is pulled. A malformed record is skipped and counted; a store
// failure aborts the run with prior upserts left durable (re-runs are
// safe because the upsert is idempotent).
func (u *IngestUsecase) Run(ctx context.Context, input IngestInput, feed PRFeed) (*entities.IngestReport, error) {
	if err := entities.ValidateRepoSegment("owner", input.Owner); err != nil {
		return nil, err
	}
	if err := entities.ValidateRepoSegment("name", input.Name); err != nil {
		return nil, err
	}
	if err := entities.ValidateSegment("base branch", input.BaseBranch); err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, logger.RunIDKey, uuid.NewString())
	slug := input.Owner + "/" + input.Name

	if input.ProjectID != "" {
		if _, err := u.projRepo.Get(ctx, input.ProjectID); err != nil {
			if domainerrors.IsNotFound(err) {
				return nil, fmt.Errorf("project %q: %w", input.ProjectID, domainerrors.ErrNotFound)
			}
			return nil, err
		}
	}

	repo, err := u.repoRepo.Get(ctx, input.Owner, input.Name)
	if err != nil {
		if !domainerrors.IsNotFound(err) {
			return nil, err
		}
		repo = &entities.Repository{
			Owner:             input.Owner,
			Name:              input.Name,
			CurrentBaseBranch: input.BaseBranch,
			FirstSync:         u.now(), // set once, never overwritten
		}
	}
	if input.ProjectID != "" {
		repo.ProjectID = input.ProjectID
	}

	report := &entities.IngestReport{Repository: slug}

	if repo.CurrentBaseBranch != input.BaseBranch {
		change := &entities.BaseBranchChange{
			Repository: slug,
			OldBranch:  repo.CurrentBaseBranch,
			NewBranch:  input.BaseBranch,
			ChangedAt:  u.now(),
		}
		if err := u.changeRepo.Append(ctx, change); err != nil {
			return nil, err
		}
		report.BranchChanged = true
		report.OldBranch = repo.CurrentBaseBranch
		report.NewBranch = input.BaseBranch
		repo.CurrentBaseBranch = input.BaseBranch
		logger.Info(ctx, "base branch changed",
			zap.String("repository", slug),
			zap.String("old", report.OldBranch),
			zap.String("new", report.NewBranch))
	}

	for {
		batch, err := feed.Next(ctx)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			break
		}
		for _, pr := range batch {
			if pr.Repository == "" {
				pr.Repository = slug
			}
			if !pr.Valid() {
				report.Skipped++
				logger.Warn(ctx, "skipping malformed pull request record",
					zap.String("repository", slug),
					zap.Int("number", pr.Number))
				continue
			}
			if input.Since != nil && pr.MergedAt.Before(*input.Since) {
				report.Skipped++
				continue
			}
			if err := u.prRepo.Upsert(ctx, pr); err != nil {
				return nil, err
			}
			report.Ingested++
		}
	}

	total, err := u.prRepo.CountByRepo(ctx, slug)
	if err != nil {
		return nil, err
	}
	now := u.now()
	repo.TotalPRs = total
	repo.LastSync = &now
	if err := u.repoRepo.Upsert(ctx, repo); err != nil {
		return nil, err
	}
	report.TotalTracked = total

	logger.Info(ctx, "collection run finished",
		zap.String("repository", slug),
		zap.Int("ingested", report.Ingested),
		zap.Int("skipped", report.Skipped),
		zap.Uint64("total_tracked", report.TotalTracked))
	return report, nil
}
