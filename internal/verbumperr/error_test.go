package verbumperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsAsThroughWrapping(t *testing.T) {
	cause := errors.New("missing")
	err := fmt.Errorf("loading configuration failed: %w", NewConfigError("MAJOR-WORDING", cause))

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "MAJOR-WORDING", cfgErr.Option)
	assert.ErrorIs(t, err, cause)

	var gitErr *GitError
	assert.False(t, errors.As(err, &gitErr))
}

func TestGitErrorString(t *testing.T) {
	err := NewGitError([]string{"commit", "-a"}, "nothing to commit\n", errors.New("exit status 1"))
	assert.Contains(t, err.Error(), "git commit -a failed")
	assert.Contains(t, err.Error(), `output: "nothing to commit"`)

	err = NewGitError([]string{"fetch"}, "  ", errors.New("boom"))
	assert.Equal(t, "git fetch failed: boom", err.Error())
}

func TestConfigErrorWithoutOption(t *testing.T) {
	err := NewConfigError("", errors.New("no manifest found"))
	assert.Equal(t, "invalid configuration: no manifest found", err.Error())
}
