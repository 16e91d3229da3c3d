// Package git runs git commands.
package git

import (
	"context"
	"os/exec"

	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/logfields"
	"github.com/simplesurance/verbump/internal/verbumperr"
)

const loggerName = "git"

// Exec runs git commands as subprocesses in a directory.
type Exec struct {
	dir    string
	logger *zap.Logger
}

// NewExec returns an Exec that runs git commands in dir.
// If dir is empty, commands run in the current working directory.
func NewExec(dir string) *Exec {
	return &Exec{
		dir:    dir,
		logger: zap.L().Named(loggerName),
	}
}

// Run executes git with the given arguments and waits for its termination.
// When git fails a *verbumperr.GitError is returned.
// Credentials in URL arguments are removed from log messages and errors.
func (e *Exec) Run(ctx context.Context, args ...string) error {
	r := newRedactor(args)
	safeArgs := r.args()

	logger := e.logger.With(zap.Strings("git_args", safeArgs))

	logger.Debug("running git command", logfields.Event("git_command_running"))

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return verbumperr.NewGitError(safeArgs, r.redact(string(out)), err)
	}

	logger.Debug(
		"git command finished",
		logfields.Event("git_command_finished"),
		zap.String("output", r.redact(string(out))),
	)

	return nil
}
