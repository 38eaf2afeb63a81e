package cli

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"gitcircles.github/internal/infrastructure/repositories"
	"gitcircles.github/internal/infrastructure/store"
	"gitcircles.github/internal/usecases"
)

var errTokenRequired = errors.New("GitHub token required: use --token or set GITHUB_TOKEN")

// env bundles the store and usecases a command needs. Close releases the
// store's exclusive file lock.
type env struct {
	store   *store.Store
	ingest  *usecases.IngestUsecase
	project *usecases.ProjectUsecase
	status  *usecases.StatusUsecase

	walletRepo *repositories.WalletRepository
}

func openEnv(opts *RootOptions) (*env, error) {
	s, err := store.Open(opts.DBPath, store.WithMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, err
	}

	repoRepo := repositories.NewRepositoryRepository(s)
	prRepo := repositories.NewPullRequestRepository(s)
	changeRepo := repositories.NewBaseBranchChangeRepository(s)
	projRepo := repositories.NewProjectRepository(s)
	ownerRepo := repositories.NewProjectOwnerRepository(s)
	walletRepo := repositories.NewWalletRepository(s)

	return &env{
		store:      s,
		ingest:     usecases.NewIngestUsecase(repoRepo, prRepo, changeRepo, projRepo),
		project:    usecases.NewProjectUsecase(projRepo, ownerRepo, repoRepo),
		status:     usecases.NewStatusUsecase(repoRepo, prRepo, changeRepo, projRepo, walletRepo),
		walletRepo: walletRepo,
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}
