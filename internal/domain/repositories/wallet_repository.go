package repositories

import (
	"context"

	"gitcircles.github/internal/domain/entities"
)

// WalletRepository defines wallet persistence operations. The current
// record, the history log, and the reverse index are three views of the
// same fact and must never disagree: every state transition goes through
// ApplyTransition as a single atomic batch.
type WalletRepository interface {
	GetCurrent(ctx context.Context, platform, login string) (*entities.UserWallet, error)
	// History returns the append-only audit trail for an identity in
	// chronological order.
	History(ctx context.Context, platform, login string) ([]*entities.WalletHistoryEntry, error)
	// Lookup returns every identity ever linked to the address, across
	// platforms, in key order.
	Lookup(ctx context.Context, address string) ([]*entities.WalletLink, error)
	LookupByPlatform(ctx context.Context, address, platform string) ([]*entities.WalletLink, error)
	// ApplyTransition writes the new current record, appends the history
	// entry, and upserts the reverse-index link. All three become durable
	// together or not at all. Links for previous addresses are never
	// removed.
	ApplyTransition(ctx context.Context, wallet *entities.UserWallet, entry *entities.WalletHistoryEntry, link *entities.WalletLink) error
}
