package repositories

import (
	"context"
	"encoding/json"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
	"gitcircles.github/internal/infrastructure/store"
)

// WalletRepository implements wallet persistence operations
type WalletRepository struct {
	store *store.Store
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(s *store.Store) *WalletRepository {
	return &WalletRepository{store: s}
}

// GetCurrent returns the current wallet row for an identity, or
// ErrNotFound when the identity has never synced an address.
func (r *WalletRepository) GetCurrent(ctx context.Context, platform, login string) (*entities.UserWallet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.store.Get(store.PartUserWallets, walletKey(platform, login))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domainerrors.ErrNotFound
	}
	var wallet entities.UserWallet
	if err := json.Unmarshal(raw, &wallet); err != nil {
		return nil, domainerrors.Persistence("decode user wallet", err)
	}
	return &wallet, nil
}

// History returns the identity's audit trail, chronological by the
// nanosecond timestamp embedded in the key.
func (r *WalletRepository) History(ctx context.Context, platform, login string) ([]*entities.WalletHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.WalletHistoryEntry
	err := r.store.Scan(store.PartWalletHistory, historyPrefix(platform, login), func(_, v []byte) error {
		var entry entities.WalletHistoryEntry
		if err := json.Unmarshal(v, &entry); err != nil {
			return err
		}
		out = append(out, &entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns every identity ever linked to the address.
func (r *WalletRepository) Lookup(ctx context.Context, address string) ([]*entities.WalletLink, error) {
	return r.scanLinks(ctx, linkPrefix(address))
}

// LookupByPlatform narrows Lookup to one platform.
func (r *WalletRepository) LookupByPlatform(ctx context.Context, address, platform string) ([]*entities.WalletLink, error) {
	return r.scanLinks(ctx, linkPlatformPrefix(address, platform))
}

func (r *WalletRepository) scanLinks(ctx context.Context, prefix []byte) ([]*entities.WalletLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entities.WalletLink
	err := r.store.Scan(store.PartWalletIndex, prefix, func(_, v []byte) error {
		var link entities.WalletLink
		if err := json.Unmarshal(v, &link); err != nil {
			return err
		}
		out = append(out, &link)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyTransition commits the current row, history append, and index link
// in one batch. After it returns, no reader can observe one of the three
// without the others.
func (r *WalletRepository) ApplyTransition(ctx context.Context, wallet *entities.UserWallet, entry *entities.WalletHistoryEntry, link *entities.WalletLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	walletVal, err := json.Marshal(wallet)
	if err != nil {
		return domainerrors.Persistence("encode user wallet", err)
	}
	entryVal, err := json.Marshal(entry)
	if err != nil {
		return domainerrors.Persistence("encode wallet history entry", err)
	}
	linkVal, err := json.Marshal(link)
	if err != nil {
		return domainerrors.Persistence("encode wallet link", err)
	}

	return r.store.Batch(func(tx *store.Tx) error {
		if err := tx.Put(store.PartUserWallets, walletKey(wallet.Platform, wallet.Login), walletVal); err != nil {
			return err
		}
		if err := tx.Put(store.PartWalletHistory, historyKey(entry.Platform, entry.Login, entry.RecordedAt), entryVal); err != nil {
			return err
		}
		return tx.Put(store.PartWalletIndex, linkKey(link.Address, link.Platform, link.Login), linkVal)
	})
}
