package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/domain/repositories"
	"gitcircles.github/pkg/ergo"
	"gitcircles.github/pkg/logger"
)

// ClaimFetcher fetches the wallet-address claim published by an identity.
// (nil, nil) is a confirmed absence; an error means the claim could not
// be determined at all, and nothing may be written in that case.
type ClaimFetcher interface {
	FetchClaim(ctx context.Context, login string) (*entities.WalletClaim, error)
}

// WalletSyncUsecase transitions the current wallet record, the audit
// history, and the reverse index together.
type WalletSyncUsecase struct {
	walletRepo repositories.WalletRepository
	fetcher    ClaimFetcher
	now        func() time.Time
}

// NewWalletSyncUsecase creates a new wallet sync usecase
func NewWalletSyncUsecase(walletRepo repositories.WalletRepository, fetcher ClaimFetcher) *WalletSyncUsecase {
	return &WalletSyncUsecase{walletRepo: walletRepo, fetcher: fetcher, now: time.Now}
}

// Sync fetches and validates the identity's claim, then applies the
// atomic three-partition transition when the address or its source
// metadata changed. Unchanged claims cost no writes.
func (u *WalletSyncUsecase) Sync(ctx context.Context, login string) (*entities.SyncOutcome, error) {
	if err := entities.ValidateSegment("login", login); err != nil {
		return nil, err
	}
	platform := entities.PlatformGitHub

	claim, err := u.fetcher.FetchClaim(ctx, login)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return &entities.SyncOutcome{
			Status:   entities.SyncNoClaim,
			Login:    login,
			Platform: platform,
		}, nil
	}

	address, err := ergo.ValidateP2PK(claim.Raw)
	if err != nil {
		var invalid *ergo.InvalidAddressError
		if errors.As(err, &invalid) {
			return nil, domainerrors.Validation("wallet address", invalid.Address, invalid.Reason)
		}
		return nil, err
	}

	current, err := u.walletRepo.GetCurrent(ctx, platform, login)
	if err != nil && !domainerrors.IsNotFound(err) {
		return nil, err
	}

	source := entities.GitHubProfileSource(login, claim.Branch)
	if current != nil && current.Address == address && current.Source == source {
		return &entities.SyncOutcome{
			Status:   entities.SyncUnchanged,
			Login:    login,
			Platform: platform,
			Current:  address,
			Previous: address,
			Source:   source,
		}, nil
	}

	now := u.now()
	wallet := &entities.UserWallet{
		Login:    login,
		Platform: platform,
		Address:  address,
		Source:   source,
		SyncedAt: now,
	}
	entry := &entities.WalletHistoryEntry{
		Login:      login,
		Platform:   platform,
		Address:    address,
		Source:     source,
		RecordedAt: now,
	}
	link := &entities.WalletLink{
		Address:  address,
		Platform: platform,
		Login:    login,
		LinkedAt: now,
	}
	if err := u.walletRepo.ApplyTransition(ctx, wallet, entry, link); err != nil {
		return nil, err
	}

	outcome := &entities.SyncOutcome{
		Status:   entities.SyncUpdated,
		Login:    login,
		Platform: platform,
		Current:  address,
		Source:   source,
	}
	if current != nil {
		outcome.Previous = current.Address
	}
	logger.Info(ctx, "wallet transition applied",
		zap.String("login", login),
		zap.String("platform", platform),
		zap.Bool("first_sync", current == nil))
	return outcome, nil
}
