package github

//go:generate mockgen -package mocks -destination mocks/mocks.go . PullRequestCommitLister

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/logfields"
)

// PullRequestCommitLister retrieves the commit messages of a pull request.
type PullRequestCommitLister interface {
	PullRequestCommitMessages(ctx context.Context, owner, repo string, pullRequestNumber int) ([]string, error)
}

// CommitMessages returns the commit messages of ev.
// When ev is a pull request event whose payload has no commit list, the
// messages are retrieved via clt. A nil clt disables the retrieval.
func (p *Provider) CommitMessages(ctx context.Context, ev *Event, clt PullRequestCommitLister) ([]string, error) {
	logger := p.logger.With(zap.Stringer("event", ev))

	if ev.HasCommits() || clt == nil || !ev.IsPullRequest() {
		return ev.CommitMessages, nil
	}

	logger.Debug(
		"event has no commit list, retrieving pull request commits",
		append(ev.LogFields(), logfields.Event("pull_request_commits_fetching"))...,
	)

	msgs, err := clt.PullRequestCommitMessages(ctx, ev.RepositoryOwner, ev.Repository, ev.PullRequestNr)
	if err != nil {
		return nil, fmt.Errorf("retrieving commits of pull request #%d failed: %w", ev.PullRequestNr, err)
	}

	return msgs, nil
}
