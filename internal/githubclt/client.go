// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/verbump/internal/logfields"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const perPage = 100

const defaultAPIURL = "https://api.github.com"

// New returns a new github api client.
// If apiURL is not empty, it is used as base URL of the API, it must be set
// for GitHub Enterprise Server instances.
func New(oauthAPItoken, apiURL string) (*Client, error) {
	restClt := github.NewClient(newHTTPClient(oauthAPItoken))

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultAPIURL {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}

		var err error
		restClt, err = restClt.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("setting github api url failed: %w", err)
		}
	}

	return &Client{
		restClt: restClt,
		logger:  zap.L().Named(loggerName),
	}, nil
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
type Client struct {
	restClt *github.Client
	logger  *zap.Logger
}

// PullRequestCommitMessages returns the lower-cased messages of all commits of
// a pull request, in the order they are returned by the API (oldest first).
func (clt *Client) PullRequestCommitMessages(ctx context.Context, owner, repo string, pullRequestNumber int) ([]string, error) {
	var result []string

	opts := github.ListOptions{PerPage: perPage}

	for {
		commits, resp, err := clt.restClt.PullRequests.ListCommits(ctx, owner, repo, pullRequestNumber, &opts)
		if err != nil {
			return nil, clt.wrapErrors(err)
		}

		for _, c := range commits {
			result = append(result, strings.ToLower(c.GetCommit().GetMessage()))
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	clt.logger.Debug(
		"retrieved pull request commits",
		logfields.Event("github_pull_request_commits_retrieved"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pullRequestNumber),
		zap.Int("commit_count", len(result)),
	)

	return result, nil
}

func (clt *Client) wrapErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return fmt.Errorf("github api rate limit exceeded, resets at %s: %w", v.Rate.Reset.Time, err)

	case *github.ErrorResponse:
		if v.Response != nil && v.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("pull request or repository not found: %w", err)
		}
	}

	return err
}
