// Package github reads the GitHub event that triggered a workflow run and
// extracts the commit messages from it.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	go_github "github.com/google/go-github/v59/github"
	"github.com/itchyny/gojq"
	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/logfields"
)

const loggerName = "github-event-provider"

// Provider parses GitHub event payloads.
// Commit messages are extracted with a jq query, the query must return
// either null, if the event has no commits, or an array of strings.
type Provider struct {
	logger      *zap.Logger
	commitQuery *gojq.Query
}

func New(commitMessagesQuery string) (*Provider, error) {
	query, err := gojq.Parse(commitMessagesQuery)
	if err != nil {
		return nil, fmt.Errorf("parsing commit messages query failed: %w", err)
	}

	return &Provider{
		logger:      zap.L().Named(loggerName),
		commitQuery: query,
	}, nil
}

// Load reads the event payload from the file at path and parses it.
// If path is empty, an Event without payload and commits is returned.
func (p *Provider) Load(ctx context.Context, eventName, path string) (*Event, error) {
	if path == "" {
		p.logger.Info(
			"event payload path is not set, event has no commits",
			logfields.Event("github_event_path_unset"),
			logfields.EventName(eventName),
		)

		return &Event{Name: eventName}, nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload failed: %w", err)
	}

	return p.Parse(ctx, eventName, payload)
}

// Parse parses the event payload.
// The payload is additionally parsed by github.ParseWebHook() to extract
// repository, branch and pull request information. If that fails, e.g.
// because the event type is unknown, only the commit messages are extracted.
func (p *Provider) Parse(ctx context.Context, eventName string, payload []byte) (*Event, error) {
	var untyped any

	if err := json.Unmarshal(payload, &untyped); err != nil {
		return nil, fmt.Errorf("unmarshaling event payload failed: %w", err)
	}

	ev := Event{
		Name: eventName,
		JSON: payload,
	}

	logger := p.logger.With(logfields.EventProvider("github"), logfields.EventName(eventName))

	if eventName != "" {
		typed, err := go_github.ParseWebHook(eventName, payload)
		if err != nil {
			logger.Debug(
				"parsing event as github webhook failed, repository and branch information are unavailable",
				logfields.Event("github_event_parsing_failed"),
				zap.Error(err),
			)
		} else {
			ev.Event = typed
			ev.setEventInfo(typed)
		}
	}

	msgs, err := p.commitMessages(ctx, untyped)
	if err != nil {
		return nil, err
	}

	ev.CommitMessages = msgs

	logger.With(ev.LogFields()...).Debug(
		"event parsed",
		logfields.Event("github_event_parsed"),
		zap.Int("commit_count", len(msgs)),
		zap.Bool("has_commits", ev.HasCommits()),
	)

	return &ev, nil
}

func goJQIterToSlice(iter gojq.Iter) ([]any, []error) {
	var result []any
	var errors []error

	for {
		res, ok := iter.Next()
		if !ok {
			return result, errors
		}

		if err, isErr := res.(error); isErr {
			errors = append(errors, err)
			continue
		}

		result = append(result, res)
	}
}

func errString(errs []error) string {
	var result strings.Builder

	for i, err := range errs {
		if i > 0 {
			result.WriteString("; ")
		}

		result.WriteString(fmt.Sprintf("error %d: %s", i, err))
	}

	return result.String()
}

func (p *Provider) commitMessages(ctx context.Context, payload any) ([]string, error) {
	result, errors := goJQIterToSlice(p.commitQuery.RunWithContext(ctx, payload))
	if len(errors) != 0 {
		return nil, fmt.Errorf("commit messages query returned errors, query: %q, errors: %s", p.commitQuery.String(), errString(errors))
	}

	if len(result) != 1 {
		return nil, fmt.Errorf("commit messages query returned %d results, expected 1, query: %q", len(result), p.commitQuery.String())
	}

	switch val := result[0].(type) {
	case nil:
		return nil, nil

	case []any:
		msgs := make([]string, 0, len(val))

		for i, elem := range val {
			msg, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf(
					"commit messages query returned non-string element at index %d: %+v (%T), query: %q",
					i, elem, elem, p.commitQuery.String(),
				)
			}

			msgs = append(msgs, strings.ToLower(msg))
		}

		return msgs, nil

	default:
		return nil, fmt.Errorf(
			"commit messages query returned neither an array nor null: %+v (%T), query: %q",
			val, val, p.commitQuery.String(),
		)
	}
}
