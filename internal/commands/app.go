package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/activity"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/assist"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/config"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/gitops"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/logging"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/session"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/store"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dir     string
	verbose bool
}

// app is everything a subcommand needs for one invocation.
type app struct {
	dir     string
	cfg     *config.Config
	logger  *slog.Logger
	kv      store.KV
	session *session.Session
	out     io.Writer
}

// loadEnv reads .env from the data directory, then the working directory.
// Variables already set in the environment win.
func loadEnv(dir string) error {
	for _, path := range []string{filepath.Join(dir, ".env"), ".env"} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(w, level), nil
}

// openApp loads config, storage and state for the data directory in opts.
func openApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	ctx := cmd.Context()
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := loadEnv(dir); err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg, opts.verbose)
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(cfg.Store, dir)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "Opened store", logging.FieldBackend, cfg.Store.Backend, "dir", dir)

	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithActivityLog(activity.NewLog(dir)),
	}
	if c := committer(ctx, dir, cfg, logger); c != nil {
		sessOpts = append(sessOpts, session.WithCommitter(c))
	}

	return &app{
		dir:     dir,
		cfg:     cfg,
		logger:  logger,
		kv:      kv,
		session: session.Load(ctx, store.NewGateway(kv, logger), sessOpts...),
		out:     cmd.OutOrStdout(),
	}, nil
}

func committer(ctx context.Context, dir string, cfg *config.Config, logger *slog.Logger) session.Committer {
	if !cfg.Git.AutoCommit {
		return nil
	}
	gitLogger := logging.For(logger, logging.ComponentGit)
	if !gitops.Available() {
		gitLogger.WarnContext(ctx, "auto_commit is on but git is not installed")
		return nil
	}
	repo := gitops.NewRepo(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if !repo.IsRepo() {
		gitLogger.WarnContext(ctx, "auto_commit is on but the data directory is not a git repository", "dir", dir)
		return nil
	}
	return repo
}

// assistant builds a text-generation client from the configured API key
// variable. A missing key yields an assistant that returns fallback text.
func (a *app) assistant(ctx context.Context) *assist.Assistant {
	key := os.Getenv(a.cfg.Assist.APIKeyEnv)
	gen := assist.NewGenerator(ctx, key, a.cfg.Assist.Model)
	if u, ok := gen.(assist.Unavailable); ok {
		a.logger.DebugContext(ctx, "Text generation unavailable", logging.FieldError, u.Err)
	}
	return assist.New(gen, a.logger)
}

func (a *app) Close() error {
	return a.kv.Close()
}

// withApp wraps a RunE body with openApp/Close.
func withApp(opts *globalOptions, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
