// Package release changes the version in the manifest, commits it and pushes
// the change and a version tag to the remote repository.
package release

//go:generate mockgen -package mocks -destination mocks/mocks.go . GitRunner,ManifestStore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/bump"
	"github.com/simplesurance/verbump/internal/logfields"
	"github.com/simplesurance/verbump/internal/manifest"
	"github.com/simplesurance/verbump/internal/semver"
)

const loggerName = "release"

const commitMsgPrefix = "ci: " + bump.CommitMarker + " "

// GitRunner executes a single git command.
type GitRunner interface {
	Run(ctx context.Context, args ...string) error
}

// ManifestStore reads and writes the manifest containing the version.
type ManifestStore interface {
	Load() (*manifest.Manifest, error)
	Store(*manifest.Manifest) error
}

// Config configures a Bumper.
type Config struct {
	Bump *bump.Config

	TagPrefix string
	SkipTag   bool

	GitUser  string
	GitEmail string

	// Ref and HeadRef are the values of GITHUB_REF and GITHUB_HEAD_REF.
	Ref     string
	HeadRef string

	// Remote is the URL that is pushed to, it can contain credentials.
	Remote string

	// DryRun only computes the new version, nothing is written and no
	// git command is run.
	DryRun bool
}

// Bumper decides about and applies a version bump.
type Bumper struct {
	cfg    *Config
	git    GitRunner
	store  ManifestStore
	logger *zap.Logger
}

func New(cfg *Config, git GitRunner, store ManifestStore) *Bumper {
	return &Bumper{
		cfg:    cfg,
		git:    git,
		store:  store,
		logger: zap.L().Named(loggerName),
	}
}

// Run reads the manifest, classifies the commit messages and bumps the
// version accordingly.
// When the decision is to skip, nothing is written and no git command is
// run. A manifest that can not be read or has no version fails the run in
// every case.
func (b *Bumper) Run(ctx context.Context, messages []string) (*Result, error) {
	mf, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading manifest failed: %w", err)
	}

	oldVersion, err := mf.Version()
	if err != nil {
		return nil, fmt.Errorf("reading version from manifest failed: %w", err)
	}

	decision := bump.Classify(messages, b.cfg.Bump)
	logger := b.logger.With(logfields.BumpKind(decision.String()))

	logger.Info(
		"commit messages classified",
		logfields.Event("commits_classified"),
		zap.String("rule", decision.Rule),
		zap.String("keyword", decision.Keyword),
	)

	switch decision.SkipReason {
	case bump.SkipSelfBump:
		return &Result{Kind: NoActionNecessary, Decision: decision, OldVersion: oldVersion}, nil
	case bump.SkipNoKeywords:
		return &Result{Kind: NoKeywordsFound, Decision: decision, OldVersion: oldVersion}, nil
	}

	newVersion, err := semver.Increment(oldVersion, decision.Kind, decision.PreID)
	if err != nil {
		return nil, err
	}

	result := Result{
		Kind:       Bumped,
		Decision:   decision,
		OldVersion: oldVersion,
		NewVersion: newVersion,
		Tag:        b.cfg.TagPrefix + newVersion,
	}

	logger = logger.With(
		logfields.CurrentVersion(oldVersion),
		logfields.NewVersion(newVersion),
	)

	logger.Info("new version computed", logfields.Event("version_computed"))

	if b.cfg.DryRun {
		result.Kind = DryRun
		return &result, nil
	}

	if err := mf.SetVersion(newVersion); err != nil {
		return nil, fmt.Errorf("setting version in manifest failed: %w", err)
	}

	if err := b.git.Run(ctx, "config", "user.name", b.cfg.GitUser); err != nil {
		return nil, err
	}

	if err := b.git.Run(ctx, "config", "user.email", b.cfg.GitEmail); err != nil {
		return nil, err
	}

	branch, isPR, err := ResolveBranch(b.cfg.Ref, b.cfg.HeadRef)
	if err != nil {
		return nil, err
	}
	result.Branch = branch
	logger = logger.With(logfields.Branch(branch))

	if err := b.store.Store(mf); err != nil {
		return nil, fmt.Errorf("writing manifest failed: %w", err)
	}

	if err := b.git.Run(ctx, "commit", "-a", "-m", commitMsgPrefix+newVersion); err != nil {
		return nil, err
	}

	if isPR {
		if err := b.git.Run(ctx, "fetch"); err != nil {
			return nil, err
		}
	}

	if err := b.git.Run(ctx, "checkout", branch); err != nil {
		return nil, err
	}

	// the commit fails when the version change was already committed in
	// detached HEAD state and the branch checkout carried it over
	if err := b.git.Run(ctx, "commit", "-a", "-m", commitMsgPrefix+result.Tag); err != nil {
		logger.Warn(
			"committing version change on branch failed, continuing",
			logfields.Event("branch_commit_failed"),
			zap.Error(err),
		)
	}

	if err := b.push(ctx, result.Tag); err != nil {
		return nil, err
	}

	logger.Info(
		"version change pushed",
		logfields.Event("version_pushed"),
		logfields.Tag(result.Tag),
		zap.Bool("tagged", !b.cfg.SkipTag),
	)

	return &result, nil
}

func (b *Bumper) push(ctx context.Context, tag string) error {
	if b.cfg.SkipTag {
		return b.git.Run(ctx, "push", b.cfg.Remote)
	}

	if err := b.git.Run(ctx, "tag", tag); err != nil {
		return err
	}

	if err := b.git.Run(ctx, "push", b.cfg.Remote, "--follow-tags"); err != nil {
		return err
	}

	return b.git.Run(ctx, "push", b.cfg.Remote, "--tags")
}
