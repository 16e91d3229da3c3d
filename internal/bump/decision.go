package bump

import "fmt"

// SkipReason describes why no version bump is done.
type SkipReason uint8

const (
	NoSkip SkipReason = iota
	// SkipSelfBump is set when a commit message was created by a previous
	// version bump run.
	SkipSelfBump
	// SkipNoKeywords is set when patch keywords are configured and no
	// keyword matched any commit message.
	SkipNoKeywords
)

var skipReasonStrings = [...]string{
	NoSkip:         "none",
	SkipSelfBump:   "self-bump",
	SkipNoKeywords: "no-keywords",
}

func (r SkipReason) String() string {
	if int(r) > len(skipReasonStrings)-1 {
		return fmt.Sprintf("unsupported SkipReason value: %d", r)
	}

	return skipReasonStrings[r]
}

// Decision is the result of Classify.
type Decision struct {
	Kind Kind
	// PreID is the prerelease identifier, it is only set for Prerelease
	// decisions and can be empty.
	PreID string
	// Keyword is the keyword that matched, it is empty if the decision
	// was made without a keyword match.
	Keyword    string
	SkipReason SkipReason
	// Rule is the name of the classification rule that made the decision.
	Rule string
}

func (d *Decision) IsSkip() bool {
	return d.Kind == Skip
}

func (d *Decision) String() string {
	switch {
	case d.Kind == Skip:
		return fmt.Sprintf("skip (%s)", d.SkipReason)
	case d.PreID != "":
		return fmt.Sprintf("%s (preid: %s)", d.Kind, d.PreID)
	default:
		return d.Kind.String()
	}
}
