package entities

import (
	"time"
)

// WalletSource records where a wallet address claim was read from.
type WalletSource struct {
	Kind   string `json:"type"`
	Login  string `json:"login"`
	Branch string `json:"branch"`
}

// SourceGitHubProfileRepo is the only claim source currently supported:
// a well-known file in the contributor's public profile repository.
const SourceGitHubProfileRepo = "github_profile_repo"

// GitHubProfileSource builds the source metadata for a profile-repo claim.
func GitHubProfileSource(login, branch string) WalletSource {
	return WalletSource{Kind: SourceGitHubProfileRepo, Login: login, Branch: branch}
}

// UserWallet is the current wallet record for one identity. It is
// overwritten on address change; past addresses live in the history log.
type UserWallet struct {
	Login    string       `json:"login"`
	Platform string       `json:"platform"`
	Address  string       `json:"address"`
	Source   WalletSource `json:"source"`
	SyncedAt time.Time    `json:"synced_at"`
}

// WalletHistoryEntry is one append-only audit entry. Entries are keyed by
// nanosecond timestamp so rapid successive syncs never collide.
type WalletHistoryEntry struct {
	Login      string       `json:"login"`
	Platform   string       `json:"platform"`
	Address    string       `json:"address"`
	Source     WalletSource `json:"source"`
	RecordedAt time.Time    `json:"recorded_at"`
}

// WalletLink is one reverse-index row mapping an address to an identity.
// The index is additive: links are never pruned when an identity moves to
// a new address, since multiple logins may share an address and history
// is preserved permanently.
type WalletLink struct {
	Address  string    `json:"wallet"`
	Platform string    `json:"platform"`
	Login    string    `json:"login"`
	LinkedAt time.Time `json:"linked_at"`
}

// WalletClaim is the raw single-line value read from an identity's
// well-known claim location, before validation.
type WalletClaim struct {
	Raw    string
	Branch string
}

// SyncStatus classifies the outcome of a wallet sync.
type SyncStatus string

const (
	// SyncNoClaim means the identity publishes no address. A normal
	// outcome, not an error.
	SyncNoClaim SyncStatus = "no_claim"
	// SyncUnchanged means the published address matches the stored one;
	// nothing was written.
	SyncUnchanged SyncStatus = "unchanged"
	// SyncUpdated means the current record, history log, and reverse
	// index were transitioned in one atomic batch.
	SyncUpdated SyncStatus = "updated"
)

// SyncOutcome is the result of one wallet synchronization.
type SyncOutcome struct {
	Status   SyncStatus   `json:"status"`
	Login    string       `json:"login"`
	Platform string       `json:"platform"`
	Current  string       `json:"current,omitempty"`
	Previous string       `json:"previous,omitempty"`
	Source   WalletSource `json:"source,omitempty"`
}
