// Package verbumperr provides the error types used to classify why a version
// bump run failed.
package verbumperr

import (
	"fmt"
	"strings"
)

// ConfigError is returned when the configuration is incomplete or invalid.
// It is detected before anything is modified.
type ConfigError struct {
	// Option is the name of the configuration option that is invalid, it
	// can be empty.
	Option string
	Err    error
}

func NewConfigError(option string, err error) *ConfigError {
	return &ConfigError{
		Option: option,
		Err:    err,
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Err)
	}

	return fmt.Sprintf("invalid configuration option %s: %s", e.Option, e.Err)
}

// VersionError is returned when the current version can not be parsed or
// incremented.
type VersionError struct {
	// Version is the version string that was processed
	Version string
	Err     error
}

func NewVersionError(version string, err error) *VersionError {
	return &VersionError{
		Version: version,
		Err:     err,
	}
}

func (e *VersionError) Unwrap() error {
	return e.Err
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("version %q: %s", e.Version, e.Err)
}

// GitError is returned when a git command failed.
type GitError struct {
	// Args are the arguments passed to git, credentials must already be
	// removed.
	Args []string
	// Output is the combined stdout and stderr output of the command.
	Output string
	Err    error
}

func NewGitError(args []string, output string, err error) *GitError {
	return &GitError{
		Args:   args,
		Output: output,
		Err:    err,
	}
}

func (e *GitError) Unwrap() error {
	return e.Err
}

func (e *GitError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), e.Err)
	}

	return fmt.Sprintf("git %s failed: %s, output: %q", strings.Join(e.Args, " "), e.Err, out)
}
