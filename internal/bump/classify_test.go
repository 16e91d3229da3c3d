package bump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCfg() *Config {
	return &Config{
		Major:      ParseKeywords("major,breaking change"),
		Minor:      ParseKeywords("feat,minor"),
		Prerelease: ParseKeywords("pre-alpha,pre-beta,pre-rc"),
		Default:    Patch,
	}
}

func TestClassify(t *testing.T) {
	type testcase struct {
		name     string
		messages []string
		cfg      *Config

		expectedKind    Kind
		expectedPreID   string
		expectedKeyword string
		expectedSkip    SkipReason
	}

	withPatch := defaultCfg()
	withPatch.Patch = ParseKeywords("fix,patch")

	testcases := []testcase{
		{
			name:         "selfBumpWins",
			messages:     []string{"major: drop api", "ci: version bump to 2.0.0"},
			cfg:          defaultCfg(),
			expectedKind: Skip,
			expectedSkip: SkipSelfBump,
		},
		{
			name:         "selfBumpIsCaseInsensitive",
			messages:     []string{"CI: Version Bump To 1.0.1"},
			cfg:          withPatch,
			expectedKind: Skip,
			expectedSkip: SkipSelfBump,
		},
		{
			name:            "majorBeforeMinor",
			messages:        []string{"feat: add thing", "BREAKING CHANGE: removed x"},
			cfg:             defaultCfg(),
			expectedKind:    Major,
			expectedKeyword: "breaking change",
		},
		{
			name:            "minor",
			messages:        []string{"feat: add thing", "docs: typo"},
			cfg:             defaultCfg(),
			expectedKind:    Minor,
			expectedKeyword: "feat",
		},
		{
			name:            "minorBeforePrerelease",
			messages:        []string{"pre-alpha", "minor change"},
			cfg:             defaultCfg(),
			expectedKind:    Minor,
			expectedKeyword: "minor",
		},
		{
			name:            "prereleaseIdentifier",
			messages:        []string{"release pre-beta"},
			cfg:             defaultCfg(),
			expectedKind:    Prerelease,
			expectedPreID:   "beta",
			expectedKeyword: "pre-beta",
		},
		{
			name:            "prereleaseFirstMessageWins",
			messages:        []string{"x pre-rc", "y pre-alpha"},
			cfg:             defaultCfg(),
			expectedKind:    Prerelease,
			expectedPreID:   "rc",
			expectedKeyword: "pre-rc",
		},
		{
			name:            "patchKeywordMatches",
			messages:        []string{"fix: crash"},
			cfg:             withPatch,
			expectedKind:    Patch,
			expectedKeyword: "fix",
		},
		{
			name:         "patchConfiguredNoMatchSkips",
			messages:     []string{"docs: readme"},
			cfg:          withPatch,
			expectedKind: Skip,
			expectedSkip: SkipNoKeywords,
		},
		{
			name:         "patchUnsetFallsBackToDefault",
			messages:     []string{"docs: readme"},
			cfg:          defaultCfg(),
			expectedKind: Patch,
		},
		{
			name:     "defaultKindIsUsed",
			messages: []string{"docs: readme"},
			cfg: &Config{
				Major:   ParseKeywords("major"),
				Default: Minor,
			},
			expectedKind: Minor,
		},
		{
			name:         "undefinedDefaultIsPatch",
			messages:     []string{"docs"},
			cfg:          &Config{},
			expectedKind: Patch,
		},
		{
			name:         "noCommitsFallsBackToDefault",
			messages:     nil,
			cfg:          defaultCfg(),
			expectedKind: Patch,
		},
		{
			name:         "noCommitsWithPatchKeywordsSkips",
			messages:     []string{},
			cfg:          withPatch,
			expectedKind: Skip,
			expectedSkip: SkipNoKeywords,
		},
		{
			name:     "emptyEntriesOnlyIsConfigured",
			messages: []string{"fix: crash"},
			cfg: &Config{
				Patch:   ParseKeywords(" , "),
				Default: Patch,
			},
			expectedKind: Skip,
			expectedSkip: SkipNoKeywords,
		},
		{
			name:     "emptyMajorEntryDoesNotMatch",
			messages: []string{"anything"},
			cfg: &Config{
				Major:   ParseKeywords(","),
				Default: Patch,
			},
			expectedKind: Patch,
		},
		{
			name:     "uppercaseKeyword",
			messages: []string{"this is a MAJOR change"},
			cfg: &Config{
				Major: Keywords{"MAJOR"},
			},
			expectedKind:    Major,
			expectedKeyword: "major",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.messages, tc.cfg)

			assert.Equal(t, tc.expectedKind, d.Kind, "decision: %s", d.String())
			assert.Equal(t, tc.expectedPreID, d.PreID)
			assert.Equal(t, tc.expectedKeyword, d.Keyword)
			assert.Equal(t, tc.expectedSkip, d.SkipReason)
			assert.NotEmpty(t, d.Rule)
		})
	}
}

func TestSelfBumpTakesPrecedenceOverEveryCategory(t *testing.T) {
	cfg := defaultCfg()
	cfg.Patch = ParseKeywords("fix")

	for _, msg := range []string{"major", "feat", "pre-alpha", "fix", ""} {
		d := Classify([]string{msg, "ci: version bump to v1.2.3"}, cfg)
		assert.Equal(t, Skip, d.Kind, "message: %q", msg)
		assert.Equal(t, SkipSelfBump, d.SkipReason, "message: %q", msg)
	}
}

func TestPreID(t *testing.T) {
	assert.Equal(t, "bar", PreID("foo-bar"))
	assert.Equal(t, "alpha", PreID("pre-alpha"))
	assert.Equal(t, "rc-1", PreID("pre-rc-1"))
	assert.Equal(t, "", PreID("prerelease"))
}

func TestParseKeywords(t *testing.T) {
	assert.Nil(t, ParseKeywords(""))
	assert.False(t, ParseKeywords("").IsConfigured())

	kw := ParseKeywords(" Major , breaking,")
	require.True(t, kw.IsConfigured())
	assert.Equal(t, Keywords{"major", "breaking", ""}, kw)

	kw = ParseKeywords(" ")
	require.True(t, kw.IsConfigured())
	assert.Equal(t, Keywords{""}, kw)
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"major", "minor", "patch", "premajor", "preminor", "prepatch", "prerelease"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
		assert.True(t, k.IsIncrement())
	}

	k, err := ParseKind(" Minor ")
	require.NoError(t, err)
	assert.Equal(t, Minor, k)

	_, err = ParseKind("skip")
	assert.Error(t, err)

	_, err = ParseKind("")
	assert.Error(t, err)
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Contains(t, Kind(200).String(), "unsupported")
	assert.Contains(t, SkipReason(200).String(), "unsupported")
}

func TestDecisionString(t *testing.T) {
	d := Decision{Kind: Prerelease, PreID: "beta"}
	assert.Equal(t, "prerelease (preid: beta)", d.String())

	d = Decision{Kind: Skip, SkipReason: SkipNoKeywords}
	assert.Equal(t, "skip (no-keywords)", d.String())
	assert.True(t, d.IsSkip())
}
