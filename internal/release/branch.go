package release

import (
	"errors"
	"regexp"
)

var refRe = regexp.MustCompile(`^refs/[a-zA-Z]+/(.+)$`)

// ResolveBranch returns the branch the version bump commit is pushed to.
// For pull requests headRef is set and returned, otherwise the branch is
// extracted from ref (e.g. refs/heads/main).
func ResolveBranch(ref, headRef string) (branch string, isPullRequest bool, err error) {
	if headRef != "" {
		return headRef, true, nil
	}

	if ref == "" {
		return "", false, errors.New("neither GITHUB_HEAD_REF nor GITHUB_REF is set")
	}

	matches := refRe.FindStringSubmatch(ref)
	if matches == nil {
		return "", false, errors.New("GITHUB_REF does not match refs/<kind>/<branch>: " + ref)
	}

	return matches[1], false, nil
}
