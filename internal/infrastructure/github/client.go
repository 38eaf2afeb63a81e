// Package github is the external collaborator talking to the GitHub API:
// the paginated merged-PR feed and the wallet-claim fetch. The core never
// touches the network itself.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
)

// Defaults for the wallet-claim well-known location.
const (
	DefaultProfileRepo = "gitcircles-profile"
	DefaultWalletFile  = "P2PK.pub"
)

// Client wraps the GitHub API for PR collection and claim fetches.
type Client struct {
	gh          *github.Client
	profileRepo string
	walletFile  string
}

// NewClient builds an authenticated client. profileRepo/walletFile
// default to the well-known claim location when empty.
func NewClient(token, profileRepo, walletFile string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	if profileRepo == "" {
		profileRepo = DefaultProfileRepo
	}
	if walletFile == "" {
		walletFile = DefaultWalletFile
	}
	return &Client{
		gh:          github.NewClient(httpClient),
		profileRepo: profileRepo,
		walletFile:  walletFile,
	}
}

// VerifyToken checks the token by fetching the authenticated user and
// returns its login.
func (c *Client) VerifyToken(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", domainerrors.Fetch("authenticated user", err)
	}
	return user.GetLogin(), nil
}

// FetchClaim reads the single-line wallet claim from the identity's
// profile repository, trying branches in the order main, master, then the
// repository's configured default. A missing profile repository or a
// claim file absent on every branch is a confirmed absence: (nil, nil).
// Network or permission failures are fetch errors, never absence.
func (c *Client) FetchClaim(ctx context.Context, login string) (*entities.WalletClaim, error) {
	target := login + "/" + c.profileRepo

	repo, _, err := c.gh.Repositories.Get(ctx, login, c.profileRepo)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, domainerrors.Fetch(target, err)
	}

	for _, branch := range branchOrder(repo.GetDefaultBranch()) {
		content, _, resp, err := c.gh.Repositories.GetContents(ctx, login, c.profileRepo, c.walletFile,
			&github.RepositoryContentGetOptions{Ref: branch})
		if err != nil {
			if isNotFound(err) {
				continue
			}
			if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
				return nil, domainerrors.Fetch(target, fmt.Errorf("profile repository must be public: %w", domainerrors.ErrUnauthorized))
			}
			return nil, domainerrors.Fetch(target, err)
		}
		if content == nil {
			continue
		}
		text, err := content.GetContent()
		if err != nil {
			return nil, domainerrors.Fetch(target, err)
		}
		return &entities.WalletClaim{Raw: strings.TrimSpace(text), Branch: branch}, nil
	}

	return nil, nil
}

// branchOrder lists claim branches to try, deduplicated, resolution order
// main, master, then the repository default.
func branchOrder(defaultBranch string) []string {
	candidates := []string{"main", "master", defaultBranch}
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, b := range candidates {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
