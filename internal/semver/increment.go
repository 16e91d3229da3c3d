// Package semver increments semantic versions.
//
// The increment rules are the ones of the node-semver inc() function, which
// is what package.json and composer.json based tooling expects:
//
//   - major, minor and patch increments of a prerelease version only drop
//     the prerelease when the lower components are already 0
//     (1.0.0-rc.1 -> 1.0.0, 1.2.0-rc.1 -> 1.2.0 for minor).
//   - prerelease increments the right-most numeric prerelease identifier.
//     Versions that are not a prerelease get their patch component
//     incremented first.
//   - a prerelease identifier (preid) replaces the prerelease unless it
//     already starts with it.
//
// Build metadata is dropped.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gosemver "github.com/coreos/go-semver/semver"

	"github.com/simplesurance/verbump/internal/bump"
	"github.com/simplesurance/verbump/internal/verbumperr"
)

// Parse parses version. A leading "v" or "=" and surrounding whitespace are
// ignored.
func Parse(version string) (*gosemver.Version, error) {
	v := strings.TrimSpace(version)
	v = strings.TrimLeft(v, "=v")

	if v == "" {
		return nil, errors.New("version is empty")
	}

	if err := checkLeadingZeros(v); err != nil {
		return nil, err
	}

	return gosemver.NewVersion(v)
}

// checkLeadingZeros returns an error if a numeric version component or
// numeric prerelease identifier of v has a leading zero.
// go-semver accepts them, they are invalid semantic versions.
func checkLeadingZeros(v string) error {
	v, _, _ = strings.Cut(v, "+")
	core, pre, _ := strings.Cut(v, "-")

	for _, id := range strings.Split(core, ".") {
		if hasLeadingZero(id) {
			return fmt.Errorf("version component %q has a leading zero", id)
		}
	}

	if pre == "" {
		return nil
	}

	for _, id := range strings.Split(pre, ".") {
		if isNumeric(id) && hasLeadingZero(id) {
			return fmt.Errorf("numeric prerelease identifier %q has a leading zero", id)
		}
	}

	return nil
}

func hasLeadingZero(id string) bool {
	return len(id) > 1 && id[0] == '0'
}

// Increment returns the version that results from incrementing current by
// kind. preID is only evaluated for prerelease kinds.
// If current is not a valid semantic version a *verbumperr.VersionError is
// returned.
func Increment(current string, kind bump.Kind, preID string) (string, error) {
	if !kind.IsIncrement() {
		return "", verbumperr.NewVersionError(current, fmt.Errorf("%s is not an increment kind", kind))
	}

	old, err := Parse(current)
	if err != nil {
		return "", verbumperr.NewVersionError(current, err)
	}

	v := *old
	v.Metadata = ""

	if err := inc(&v, kind, preID); err != nil {
		return "", verbumperr.NewVersionError(current, err)
	}

	if !old.LessThan(v) {
		return "", verbumperr.NewVersionError(
			current,
			fmt.Errorf("incremented version %s is not greater than %s", v.String(), old.String()),
		)
	}

	return v.String(), nil
}

func inc(v *gosemver.Version, kind bump.Kind, preID string) error {
	switch kind {
	case bump.Major:
		if v.Minor != 0 || v.Patch != 0 || v.PreRelease == "" {
			v.Major++
		}
		v.Minor = 0
		v.Patch = 0
		v.PreRelease = ""

	case bump.Minor:
		if v.Patch != 0 || v.PreRelease == "" {
			v.Minor++
		}
		v.Patch = 0
		v.PreRelease = ""

	case bump.Patch:
		if v.PreRelease == "" {
			v.Patch++
		}
		v.PreRelease = ""

	case bump.Premajor:
		v.Major++
		v.Minor = 0
		v.Patch = 0
		v.PreRelease = ""
		return incPre(v, preID)

	case bump.Preminor:
		v.Minor++
		v.Patch = 0
		v.PreRelease = ""
		return incPre(v, preID)

	case bump.Prepatch:
		v.PreRelease = ""
		if err := inc(v, bump.Patch, ""); err != nil {
			return err
		}
		return incPre(v, preID)

	case bump.Prerelease:
		if v.PreRelease == "" {
			if err := inc(v, bump.Patch, ""); err != nil {
				return err
			}
		}
		return incPre(v, preID)

	default:
		return fmt.Errorf("unsupported increment kind: %s", kind)
	}

	return nil
}

func isNumeric(identifier string) bool {
	_, err := strconv.ParseUint(identifier, 10, 64)
	return err == nil
}

// incPre increments the prerelease part of v.
func incPre(v *gosemver.Version, preID string) error {
	var ids []string
	if v.PreRelease != "" {
		ids = v.PreRelease.Slice()
	}

	if len(ids) == 0 {
		ids = []string{"0"}
	} else {
		incremented := false

		for i := len(ids) - 1; i >= 0; i-- {
			n, err := strconv.ParseUint(ids[i], 10, 64)
			if err != nil {
				continue
			}

			ids[i] = strconv.FormatUint(n+1, 10)
			incremented = true
			break
		}

		if !incremented {
			ids = append(ids, "0")
		}
	}

	if preID != "" {
		if isNumeric(preID) || ids[0] != preID {
			ids = []string{preID, "0"}
		} else if len(ids) < 2 || !isNumeric(ids[1]) {
			ids = []string{preID, "0"}
		}
	}

	pre := strings.Join(ids, ".")

	// reuse the identifier validation of go-semver
	if _, err := gosemver.NewVersion("0.0.0-" + pre); err != nil {
		return fmt.Errorf("invalid prerelease identifier %q: %w", preID, err)
	}

	v.PreRelease = gosemver.PreRelease(pre)

	return nil
}
