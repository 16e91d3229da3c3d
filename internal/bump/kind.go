package bump

import (
	"fmt"
	"strings"
)

// Kind is the outcome of classifying commit messages, it is either Skip or
// the semantic version component that is incremented.
type Kind uint8

const (
	KindUndefined Kind = iota
	Skip
	Major
	Minor
	Patch
	Premajor
	Preminor
	Prepatch
	Prerelease
)

var kindStrings = [...]string{
	KindUndefined: "undefined",
	Skip:          "skip",
	Major:         "major",
	Minor:         "minor",
	Patch:         "patch",
	Premajor:      "premajor",
	Preminor:      "preminor",
	Prepatch:      "prepatch",
	Prerelease:    "prerelease",
}

func (k Kind) String() string {
	if int(k) > len(kindStrings)-1 {
		return fmt.Sprintf("unsupported Kind value: %d", k)
	}

	return kindStrings[k]
}

// IsIncrement returns true if k denotes a version increment.
func (k Kind) IsIncrement() bool {
	return k >= Major && k <= Prerelease
}

// ParseKind converts the name of an increment kind to a Kind.
// Skip and KindUndefined can not be parsed.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for i, str := range kindStrings {
		k := Kind(i)
		if k.IsIncrement() && str == name {
			return k, nil
		}
	}

	return KindUndefined, fmt.Errorf("unsupported bump kind: %q, expecting one of: major, minor, patch, premajor, preminor, prepatch, prerelease", s)
}
