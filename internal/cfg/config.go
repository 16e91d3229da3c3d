package cfg

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/simplesurance/verbump/internal/bump"
	"github.com/simplesurance/verbump/internal/manifest"
	"github.com/simplesurance/verbump/internal/verbumperr"
)

const (
	DefGitUser             = "Automated Version Bump"
	DefGitEmail            = "gh-action-bump-version@users.noreply.github.com"
	DefDefault             = "patch"
	DefCommitMessagesQuery = `.commits | if . == null then null else map(.message) end`
	DefLogFormat           = "logfmt"
	DefLogTimeKey          = "time"
	DefLogLevel            = "info"
	DefGithubServerURL     = "https://github.com"
)

// Option names, they are used as names of the environment variables and in
// error messages.
const (
	OptMajorWording   = "MAJOR-WORDING"
	OptMinorWording   = "MINOR-WORDING"
	OptPatchWording   = "PATCH-WORDING"
	OptRCWording      = "RC-WORDING"
	OptDefault        = "DEFAULT"
	OptTagPrefix      = "TAG-PREFIX"
	OptSkipTag        = "SKIP-TAG"
	OptCommitQuery    = "COMMIT-QUERY"
	OptFetchPRCommits = "FETCH-PR-COMMITS"
	OptMetricsFile    = "METRICS-FILE"
	OptLogFormat      = "LOG-FORMAT"
	OptLogLevel       = "LOG-LEVEL"
)

type Config struct {
	VersionFile string `toml:"version_file"`
	Workspace   string `toml:"workspace"`

	// The wording options are comma-separated keyword lists, they must be
	// defined but can be empty. A nil value means undefined.
	MajorWording *string `toml:"major_wording"`
	MinorWording *string `toml:"minor_wording"`
	PatchWording *string `toml:"patch_wording"`
	RCWording    *string `toml:"rc_wording"`
	Default      string  `toml:"default"`

	TagPrefix string `toml:"tag_prefix"`
	SkipTag   bool   `toml:"skip_tag"`

	CommitMessagesQuery     string `toml:"commit_messages_query"`
	FetchPullRequestCommits bool   `toml:"fetch_pull_request_commits"`
	MetricsFile             string `toml:"metrics_file"`

	GitUser        string `toml:"git_user"`
	GitEmail       string `toml:"git_email"`
	GithubAPIToken string `toml:"github_api_token"`

	LogFormat  string `toml:"log_format"`
	LogTimeKey string `toml:"log_time_key"`
	LogLevel   string `toml:"log_level"`

	Github GithubContext `toml:"-"`
}

// GithubContext is information about the workflow run, that GitHub provides
// via environment variables.
type GithubContext struct {
	Ref        string
	HeadRef    string
	Actor      string
	Repository string
	ServerURL  string
	APIURL     string
	EventPath  string
	EventName  string
}

// Load reads a TOML configuration.
// Options that are not set in the file have their default values.
func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	result.setDefaults()

	return &result, nil
}

// New returns a Config with default values.
func New() *Config {
	var result Config
	result.setDefaults()

	return &result
}

func (c *Config) setDefaults() {
	setIfEmpty(&c.Default, DefDefault)
	setIfEmpty(&c.CommitMessagesQuery, DefCommitMessagesQuery)
	setIfEmpty(&c.GitUser, DefGitUser)
	setIfEmpty(&c.GitEmail, DefGitEmail)
	setIfEmpty(&c.LogFormat, DefLogFormat)
	setIfEmpty(&c.LogTimeKey, DefLogTimeKey)
	setIfEmpty(&c.LogLevel, DefLogLevel)
	setIfEmpty(&c.Github.ServerURL, DefGithubServerURL)
}

func setIfEmpty(p *string, val string) {
	if *p == "" {
		*p = val
	}
}

// LookupFunc has the same semantic then os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// inputLookup looks up the value of an action input.
// GitHub passes inputs as INPUT_<NAME> variables, if it is not set the
// variable <NAME> is looked up.
func inputLookup(lookup LookupFunc, name string) (string, bool) {
	if v, ok := lookup("INPUT_" + strings.ToUpper(name)); ok {
		return v, true
	}

	return lookup(name)
}

// ApplyEnv overrides options with the values of the corresponding environment
// variables. Variables that are not set are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	setStrFromEnv := func(dest *string) func(string, bool) {
		return func(val string, ok bool) {
			if ok && val != "" {
				*dest = val
			}
		}
	}

	setStrPtrFromEnv := func(dest **string) func(string, bool) {
		return func(val string, ok bool) {
			if ok {
				*dest = &val
			}
		}
	}

	setBoolFromEnv := func(dest *bool) func(string, bool) {
		return func(val string, ok bool) {
			if ok {
				*dest = val == "true"
			}
		}
	}

	setStrPtrFromEnv(&c.MajorWording)(inputLookup(lookup, OptMajorWording))
	setStrPtrFromEnv(&c.MinorWording)(inputLookup(lookup, OptMinorWording))
	setStrPtrFromEnv(&c.PatchWording)(inputLookup(lookup, OptPatchWording))
	setStrPtrFromEnv(&c.RCWording)(inputLookup(lookup, OptRCWording))
	setStrFromEnv(&c.Default)(inputLookup(lookup, OptDefault))
	setBoolFromEnv(&c.SkipTag)(inputLookup(lookup, OptSkipTag))
	setStrFromEnv(&c.CommitMessagesQuery)(inputLookup(lookup, OptCommitQuery))
	setBoolFromEnv(&c.FetchPullRequestCommits)(inputLookup(lookup, OptFetchPRCommits))
	setStrFromEnv(&c.MetricsFile)(inputLookup(lookup, OptMetricsFile))
	setStrFromEnv(&c.LogFormat)(inputLookup(lookup, OptLogFormat))
	setStrFromEnv(&c.LogLevel)(inputLookup(lookup, OptLogLevel))

	// an empty tag prefix is a valid value, it overrides a prefix from
	// the config file
	if v, ok := inputLookup(lookup, OptTagPrefix); ok {
		c.TagPrefix = v
	}

	setStrFromEnv(&c.VersionFile)(lookup("VERSION_FILE"))
	setStrFromEnv(&c.Workspace)(lookup("GITHUB_WORKSPACE"))
	setStrFromEnv(&c.GitUser)(lookup("GITHUB_USER"))
	setStrFromEnv(&c.GitEmail)(lookup("GITHUB_EMAIL"))
	setStrFromEnv(&c.GithubAPIToken)(lookup("GITHUB_TOKEN"))

	setStrFromEnv(&c.Github.Ref)(lookup("GITHUB_REF"))
	setStrFromEnv(&c.Github.HeadRef)(lookup("GITHUB_HEAD_REF"))
	setStrFromEnv(&c.Github.Actor)(lookup("GITHUB_ACTOR"))
	setStrFromEnv(&c.Github.Repository)(lookup("GITHUB_REPOSITORY"))
	setStrFromEnv(&c.Github.ServerURL)(lookup("GITHUB_SERVER_URL"))
	setStrFromEnv(&c.Github.APIURL)(lookup("GITHUB_API_URL"))
	setStrFromEnv(&c.Github.EventPath)(lookup("GITHUB_EVENT_PATH"))
	setStrFromEnv(&c.Github.EventName)(lookup("GITHUB_EVENT_NAME"))
}

// Validate returns a *verbumperr.ConfigError if an option is missing or
// invalid.
func (c *Config) Validate() error {
	wordings := []struct {
		name string
		val  *string
	}{
		{OptMajorWording, c.MajorWording},
		{OptMinorWording, c.MinorWording},
		{OptPatchWording, c.PatchWording},
		{OptRCWording, c.RCWording},
	}

	for _, w := range wordings {
		if w.val == nil {
			return verbumperr.NewConfigError(w.name, errors.New("keyword list is not defined"))
		}
	}

	if _, err := bump.ParseKind(c.Default); err != nil {
		return verbumperr.NewConfigError(OptDefault, err)
	}

	switch c.LogFormat {
	case "logfmt", "console", "json":
	default:
		return verbumperr.NewConfigError(OptLogFormat, fmt.Errorf("unsupported log format: %q", c.LogFormat))
	}

	return nil
}

// BumpConfig returns the keyword configuration for the classifier.
func (c *Config) BumpConfig() (*bump.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	defKind, err := bump.ParseKind(c.Default)
	if err != nil {
		return nil, verbumperr.NewConfigError(OptDefault, err)
	}

	return &bump.Config{
		Major:      bump.ParseKeywords(*c.MajorWording),
		Minor:      bump.ParseKeywords(*c.MinorWording),
		Patch:      bump.ParseKeywords(*c.PatchWording),
		Prerelease: bump.ParseKeywords(*c.RCWording),
		Default:    defKind,
	}, nil
}

// VersionFilePath returns the path of the manifest file.
// A relative VersionFile is relative to the workspace. If VersionFile is
// empty, the manifest is searched in the workspace.
func (c *Config) VersionFilePath(exists func(string) bool) (string, error) {
	if c.VersionFile != "" {
		if filepath.IsAbs(c.VersionFile) {
			return c.VersionFile, nil
		}

		return filepath.Join(c.Workspace, c.VersionFile), nil
	}

	p, err := manifest.Locate(c.Workspace, exists)
	if err != nil {
		return "", verbumperr.NewConfigError("VERSION_FILE", err)
	}

	return p, nil
}
