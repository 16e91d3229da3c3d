package github

import (
	"fmt"
	"strings"

	go_github "github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/logfields"
)

type pushEventRepoGetter interface {
	GetRepo() *go_github.PushEventRepository
}

type repoGetter interface {
	GetRepo() *go_github.Repository
}

type refGetter interface {
	GetRef() string
}

type pullRequestGetter interface {
	GetPullRequest() *go_github.PullRequest
}

// Event is the GitHub event that triggered the workflow run.
type Event struct {
	// Name is the webhook event name, e.g. "push" or "pull_request".
	Name string
	// JSON is the event payload.
	JSON []byte
	// Event is the payload as struct type returned by
	// github.ParseWebHook(), it is nil if the event type is unsupported.
	Event any

	// fields that are extracted from Event, if the value is not available
	// they are empty strings.
	RepositoryOwner string
	Repository      string
	Ref             string
	Branch          string
	BaseBranch      string
	CommitID        string
	// PullRequestNr is 0 if it's not available
	PullRequestNr int

	// CommitMessages are the lower-cased messages of the commits of the
	// event. It is nil if the event does not contain commits.
	CommitMessages []string
}

// HasCommits returns true if the event payload contained a commit list.
func (e *Event) HasCommits() bool {
	return e.CommitMessages != nil
}

// IsPullRequest returns true if the event is a pull request event with a
// pull request number.
func (e *Event) IsPullRequest() bool {
	return e.PullRequestNr > 0
}

func (e *Event) String() string {
	if e.RepositoryOwner == "" && e.Repository == "" {
		return e.Name
	}

	return fmt.Sprintf("%s (%s/%s)", e.Name, e.RepositoryOwner, e.Repository)
}

func (e *Event) LogFields() []zap.Field {
	fields := make([]zap.Field, 0, 7) // cap == max. size of fields we append

	if e.Name != "" {
		fields = append(fields, logfields.EventName(e.Name))
	}

	if e.Repository != "" {
		fields = append(fields, logfields.Repository(e.Repository))
	}

	if e.RepositoryOwner != "" {
		fields = append(fields, logfields.RepositoryOwner(e.RepositoryOwner))
	}

	if e.Branch != "" {
		fields = append(fields, logfields.Branch(e.Branch))
	}

	if e.BaseBranch != "" {
		fields = append(fields, logfields.BaseBranch(e.BaseBranch))
	}

	if e.CommitID != "" {
		fields = append(fields, logfields.Commit(e.CommitID))
	}

	if e.PullRequestNr != 0 {
		fields = append(fields, logfields.PullRequest(e.PullRequestNr))
	}

	return fields
}

func (e *Event) setEventInfo(ghEvent any) {
	if v, ok := ghEvent.(pushEventRepoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			e.Repository = repo.GetName()
			e.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	} else if v, ok := ghEvent.(repoGetter); ok {
		if repo := v.GetRepo(); repo != nil {
			e.Repository = repo.GetName()
			e.RepositoryOwner = repo.GetOwner().GetLogin()
		}
	}

	if v, ok := ghEvent.(refGetter); ok {
		e.Ref = v.GetRef()
		if strings.HasPrefix(e.Ref, "refs/heads/") {
			e.Branch = strings.TrimPrefix(e.Ref, "refs/heads/")
		}
	}

	if v, ok := ghEvent.(pullRequestGetter); ok {
		if pr := v.GetPullRequest(); pr != nil {
			e.PullRequestNr = pr.GetNumber()

			if head := pr.GetHead(); head != nil {
				e.CommitID = head.GetSHA()
				// ref in PullRequestEvent contains **only**
				// the branch name without 'refs/heads/ prefix
				e.Branch = head.GetRef()
			}

			e.BaseBranch = pr.GetBase().GetRef()
		}
	}

	if v, ok := ghEvent.(*go_github.PushEvent); ok {
		e.CommitID = v.GetAfter()
	}
}
