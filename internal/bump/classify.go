// Package bump decides which semantic version component is incremented,
// based on keywords found in commit messages.
package bump

import (
	"strings"
)

// CommitMarker is contained in the message of every commit created by a
// version bump. Events containing such a commit are never bumped again.
const CommitMarker = "version bump to"

// Config defines the keyword categories that are matched against commit
// messages.
type Config struct {
	Major      Keywords
	Minor      Keywords
	Patch      Keywords
	Prerelease Keywords
	// Default is the kind that is used when Patch is unset and no other
	// category matched. If it is KindUndefined, Patch is used.
	Default Kind
}

func (c *Config) defaultKind() Kind {
	if c.Default == KindUndefined {
		return Patch
	}

	return c.Default
}

type rule struct {
	name   string
	decide func(messages []string) (Decision, bool)
}

// rules returns the classification rules, ordered by priority.
func (c *Config) rules() []rule {
	return []rule{
		{name: "self-bump", decide: selfBumpRule},
		{name: "major", decide: keywordRule(Major, c.Major)},
		{name: "minor", decide: keywordRule(Minor, c.Minor)},
		{name: "prerelease", decide: prereleaseRule(c.Prerelease)},
		{name: "patch", decide: patchRule(c.Patch)},
		{name: "default", decide: defaultRule(c.defaultKind())},
	}
}

func selfBumpRule(messages []string) (Decision, bool) {
	for _, msg := range messages {
		if strings.Contains(msg, CommitMarker) {
			return Decision{Kind: Skip, SkipReason: SkipSelfBump}, true
		}
	}

	return Decision{}, false
}

func keywordRule(kind Kind, kw Keywords) func([]string) (Decision, bool) {
	return func(messages []string) (Decision, bool) {
		w, found := kw.firstMatch(messages)
		if !found {
			return Decision{}, false
		}

		return Decision{Kind: kind, Keyword: w}, true
	}
}

func prereleaseRule(kw Keywords) func([]string) (Decision, bool) {
	return func(messages []string) (Decision, bool) {
		w, found := kw.firstMatch(messages)
		if !found {
			return Decision{}, false
		}

		return Decision{Kind: Prerelease, Keyword: w, PreID: PreID(w)}, true
	}
}

// patchRule only applies when patch keywords are configured. Then either a
// keyword matches or the bump is skipped.
func patchRule(kw Keywords) func([]string) (Decision, bool) {
	return func(messages []string) (Decision, bool) {
		if !kw.IsConfigured() {
			return Decision{}, false
		}

		w, found := kw.firstMatch(messages)
		if !found {
			return Decision{Kind: Skip, SkipReason: SkipNoKeywords}, true
		}

		return Decision{Kind: Patch, Keyword: w}, true
	}
}

func defaultRule(kind Kind) func([]string) (Decision, bool) {
	return func([]string) (Decision, bool) {
		return Decision{Kind: kind}, true
	}
}

// PreID returns the prerelease identifier of a prerelease keyword, it is the
// part after the first "-". If the keyword does not contain a "-" an empty
// string is returned.
func PreID(keyword string) string {
	_, id, _ := strings.Cut(keyword, "-")
	return id
}

// Classify evaluates the rules of cfg in priority order against the commit
// messages and returns the decision of the first rule that applies.
// Matching is case-insensitive.
func Classify(messages []string, cfg *Config) Decision {
	lowered := make([]string, 0, len(messages))
	for _, msg := range messages {
		lowered = append(lowered, strings.ToLower(msg))
	}

	for _, r := range cfg.rules() {
		if d, ok := r.decide(lowered); ok {
			d.Rule = r.name
			return d
		}
	}

	// unreachable, the default rule always applies
	return Decision{Kind: cfg.defaultKind(), Rule: "default"}
}
