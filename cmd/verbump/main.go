package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/verbump/internal/cfg"
	"github.com/simplesurance/verbump/internal/git"
	"github.com/simplesurance/verbump/internal/githubclt"
	"github.com/simplesurance/verbump/internal/logfields"
	"github.com/simplesurance/verbump/internal/manifest"
	"github.com/simplesurance/verbump/internal/metrics"
	"github.com/simplesurance/verbump/internal/provider/github"
	"github.com/simplesurance/verbump/internal/release"
)

const appName = "verbump"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught , terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

type arguments struct {
	Verbose     *bool
	ConfigFile  *string
	DryRun      *bool
	ShowVersion *bool
}

var args arguments

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ConfigFile: pflag.StringP(
			"cfg-file",
			"c",
			"",
			"path to an optional configuration file, environment variables override its settings",
		),
		DryRun: pflag.Bool(
			"dry-run",
			false,
			"only compute the new version, do not change the manifest and do not run git",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nBump the version in package.json or composer.json depending on commit messages.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	var config *cfg.Config

	if *args.ConfigFile == "" {
		config = cfg.New()
	} else {
		file, err := os.Open(*args.ConfigFile)
		exitOnErr("could not open configuration file", err)
		defer file.Close()

		config, err = cfg.Load(file)
		exitOnErr(fmt.Sprintf("could not load configuration file: %s", *args.ConfigFile), err)
	}

	config.ApplyEnv(os.LookupEnv)

	if config.Workspace == "" {
		wd, err := os.Getwd()
		exitOnErr("could not get current working directory", err)
		config.Workspace = wd
	}

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr("could not initialize logger", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s \n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func strPtrVal(p *string) string {
	if p == nil {
		return "<undefined>"
	}

	return *p
}

func logCfg(config *cfg.Config) {
	logger.Debug(
		"configuration loaded",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *args.ConfigFile),
		zap.Bool("dry_run", *args.DryRun),
		zap.String("workspace", config.Workspace),
		logfields.VersionFile(config.VersionFile),
		zap.String("major_wording", strPtrVal(config.MajorWording)),
		zap.String("minor_wording", strPtrVal(config.MinorWording)),
		zap.String("patch_wording", strPtrVal(config.PatchWording)),
		zap.String("rc_wording", strPtrVal(config.RCWording)),
		zap.String("default", config.Default),
		zap.String("tag_prefix", config.TagPrefix),
		zap.Bool("skip_tag", config.SkipTag),
		zap.String("commit_messages_query", config.CommitMessagesQuery),
		zap.Bool("fetch_pull_request_commits", config.FetchPullRequestCommits),
		zap.String("metrics_file", config.MetricsFile),
		zap.String("git_user", config.GitUser),
		zap.String("git_email", config.GitEmail),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("github_ref", config.Github.Ref),
		zap.String("github_head_ref", config.Github.HeadRef),
		zap.String("github_repository", config.Github.Repository),
		zap.String("github_event_name", config.Github.EventName),
		zap.String("github_event_path", config.Github.EventPath),
		zap.String("log_format", config.LogFormat),
		zap.String("log_time_key", config.LogTimeKey),
		zap.String("log_level", config.LogLevel),
	)
}

// commitMessages returns the commit messages of the event that triggered
// the workflow.
func commitMessages(ctx context.Context, config *cfg.Config) ([]string, error) {
	prov, err := github.New(config.CommitMessagesQuery)
	if err != nil {
		return nil, err
	}

	ev, err := prov.Load(ctx, config.Github.EventName, config.Github.EventPath)
	if err != nil {
		return nil, err
	}

	var prCommitLister github.PullRequestCommitLister
	if config.FetchPullRequestCommits {
		clt, err := githubclt.New(config.GithubAPIToken, config.Github.APIURL)
		if err != nil {
			return nil, err
		}

		prCommitLister = clt
	}

	return prov.CommitMessages(ctx, ev, prCommitLister)
}

func run(ctx context.Context, config *cfg.Config) (*release.Result, error) {
	bumpCfg, err := config.BumpConfig()
	if err != nil {
		return nil, err
	}

	messages, err := commitMessages(ctx, config)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		logger.Info(
			"couldn't find any commits in this event",
			logfields.Event("no_commits_found"),
			logfields.EventName(config.Github.EventName),
		)
	} else {
		logger.Info(
			"commit messages",
			logfields.Event("commits_found"),
			zap.Strings("commit_messages", messages),
		)
	}

	versionFile, err := config.VersionFilePath(manifest.FileExists)
	if err != nil {
		return nil, err
	}

	remote, err := git.RemoteURL(
		config.Github.ServerURL,
		config.Github.Actor,
		config.GithubAPIToken,
		config.Github.Repository,
	)
	if err != nil {
		return nil, fmt.Errorf("building remote url failed: %w", err)
	}

	logger.Info(
		"using manifest",
		logfields.Event("manifest_located"),
		logfields.VersionFile(versionFile),
		zap.String("remote", git.Redact(remote)),
	)

	bumper := release.New(
		&release.Config{
			Bump:      bumpCfg,
			TagPrefix: config.TagPrefix,
			SkipTag:   config.SkipTag,
			GitUser:   config.GitUser,
			GitEmail:  config.GitEmail,
			Ref:       config.Github.Ref,
			HeadRef:   config.Github.HeadRef,
			Remote:    remote,
			DryRun:    *args.DryRun,
		},
		git.NewExec(config.Workspace),
		manifest.NewFileStore(versionFile),
	)

	return bumper.Run(ctx, messages)
}

func writeMetrics(path string, result *release.Result, runErr error) {
	if path == "" {
		return
	}

	collector := metrics.NewCollector()

	if runErr != nil {
		collector.RecordRun("failed")
	} else {
		collector.RecordRun(result.Kind.String())
		if result.Kind == release.Bumped {
			collector.RecordVersion(result.NewVersion, result.Decision.Kind.String())
		}
	}

	if err := collector.WriteFile(path); err != nil {
		logger.Warn(
			"writing metrics file failed",
			logfields.Event("metrics_writing_failed"),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

func main() {
	defer panicHandler()

	defer goodbye.Exit(context.Background(), 1)
	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	config := mustParseCfg()

	mustInitLogger(config)
	logCfg(config)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		if sig != nil {
			logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
		}
		cancelFn()
	})

	result, err := run(ctx, config)
	writeMetrics(config.MetricsFile, result, err)
	if err != nil {
		logger.Error(
			"Failed to bump version",
			logfields.Event("version_bump_failed"),
			zap.Error(err),
		)

		if errors.Is(err, context.Canceled) {
			logger.Info("version bump was cancelled", logfields.Event("version_bump_cancelled"))
		}

		goodbye.Exit(context.Background(), 1)
	}

	logger.Info(
		result.Message(),
		logfields.Event(result.Kind.String()),
		logfields.BumpKind(result.Decision.String()),
		logfields.CurrentVersion(result.OldVersion),
		logfields.NewVersion(result.NewVersion),
		logfields.Tag(result.Tag),
	)

	goodbye.Exit(context.Background(), 0)
}
