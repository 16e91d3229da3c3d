package release

import (
	"fmt"

	"github.com/simplesurance/verbump/internal/bump"
)

// ResultKind describes the outcome of a Bumper run.
type ResultKind uint8

const (
	ResultUndefined ResultKind = iota
	// NoActionNecessary is returned when a commit of a previous version
	// bump run was found.
	NoActionNecessary
	// NoKeywordsFound is returned when patch keywords are configured and
	// none matched.
	NoKeywordsFound
	// Bumped is returned when the version was changed, committed and
	// pushed.
	Bumped
	// DryRun is returned when the new version was computed but nothing
	// was written.
	DryRun
)

var resultKindStrings = [...]string{
	ResultUndefined:   "undefined",
	NoActionNecessary: "no_action_necessary",
	NoKeywordsFound:   "no_keywords_found",
	Bumped:            "bumped",
	DryRun:            "dry_run",
}

func (k ResultKind) String() string {
	if int(k) > len(resultKindStrings)-1 {
		return fmt.Sprintf("unsupported ResultKind value: %d", k)
	}

	return resultKindStrings[k]
}

// Result is returned by Bumper.Run.
type Result struct {
	Kind       ResultKind
	Decision   bump.Decision
	OldVersion string

	// The following fields are only set for Bumped and DryRun results.
	NewVersion string
	Tag        string
	Branch     string
}

// Message returns the human readable outcome.
func (r *Result) Message() string {
	switch r.Kind {
	case NoActionNecessary:
		return "No action necessary!"
	case NoKeywordsFound:
		return "No version keywords found, skipping bump."
	case Bumped:
		return "Version bumped!"
	case DryRun:
		return fmt.Sprintf("Dry run, version would be bumped from %s to %s.", r.OldVersion, r.NewVersion)
	default:
		return r.Kind.String()
	}
}
