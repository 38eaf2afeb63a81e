package github

import (
	"context"
	"time"

	"github.com/google/go-github/v66/github"

	"gitcircles.github/internal/domain/entities"
	domainerrors "gitcircles.github/internal/domain/errors"
)

const feedPageSize = 100

// Feed pulls pages of merged pull requests lazily. The next page is not
// requested until the caller has consumed (and typically persisted) the
// previous one.
type Feed struct {
	client *Client
	owner  string
	name   string
	base   string
	since  *time.Time

	page int
	done bool
}

// MergedPullRequests opens a feed over closed PRs targeting base,
// filtered client-side to merged-only and, when since is set, to merges
// at or after it.
func (c *Client) MergedPullRequests(owner, name, base string, since *time.Time) *Feed {
	return &Feed{client: c, owner: owner, name: name, base: base, since: since, page: 1}
}

// Next returns the next batch of merged PRs, or nil when the feed is
// exhausted. A non-nil empty batch means the page held no merged PRs but
// more pages remain.
func (f *Feed) Next(ctx context.Context) ([]*entities.MergedPullRequest, error) {
	if f.done {
		return nil, nil
	}

	opts := &github.PullRequestListOptions{
		State:     "closed",
		Base:      f.base,
		Sort:      "created",
		Direction: "desc",
		ListOptions: github.ListOptions{
			Page:    f.page,
			PerPage: feedPageSize,
		},
	}
	pulls, resp, err := f.client.gh.PullRequests.List(ctx, f.owner, f.name, opts)
	if err != nil {
		return nil, domainerrors.Fetch(f.owner+"/"+f.name, err)
	}
	if resp.NextPage == 0 {
		f.done = true
	} else {
		f.page = resp.NextPage
	}
	if len(pulls) == 0 {
		f.done = true
		return nil, nil
	}

	batch := make([]*entities.MergedPullRequest, 0, len(pulls))
	for _, pull := range pulls {
		pr := convertPull(pull, f.owner, f.name)
		if pr == nil {
			continue
		}
		if f.since != nil && pr.MergedAt.Before(*f.since) {
			continue
		}
		batch = append(batch, pr)
	}
	return batch, nil
}

// convertPull maps a GitHub PR to the domain record; unmerged PRs map to
// nil.
func convertPull(pull *github.PullRequest, owner, name string) *entities.MergedPullRequest {
	if pull == nil || pull.MergedAt == nil {
		return nil
	}

	title := pull.GetTitle()
	if title == "" {
		title = "No title"
	}
	author := "unknown"
	if pull.User != nil && pull.User.GetLogin() != "" {
		author = pull.User.GetLogin()
	}
	sha := pull.GetMergeCommitSHA()
	if sha == "" {
		sha = "unknown"
	}

	return &entities.MergedPullRequest{
		Number:         pull.GetNumber(),
		Title:          title,
		Author:         author,
		MergedAt:       pull.MergedAt.Time,
		BaseBranch:     pull.GetBase().GetRef(),
		MergeCommitSHA: sha,
		Repository:     owner + "/" + name,
	}
}
