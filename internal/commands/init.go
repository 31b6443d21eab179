package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/config"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/gitops"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/seed"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/store"
)

func newInitCommand() *cobra.Command {
	var backend string
	var useGit bool
	var empty bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new rentflow data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, backend, useGit, empty)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend: file or sqlite")
	cmd.Flags().BoolVar(&useGit, "git", false, "track the data directory in git and commit after every change")
	cmd.Flags().BoolVar(&empty, "empty", false, "start with no tenants or properties instead of the demo data")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir, backend string, useGit, empty bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	// Create directory structure.
	for _, d := range []string{"data", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.Store.Backend = backend
	if backend == config.BackendSQLite {
		cfg.Store.Path = filepath.Join("data", "rentflow.db")
	}
	cfg.Git.AutoCommit = useGit
	if err := cfg.Validate(); err != nil {
		return err
	}
	if backend == config.BackendMemory {
		return fmt.Errorf("memory backend cannot be initialized on disk")
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the starting dataset so the files exist from the first commit.
	kv, err := store.Open(cfg.Store, dir)
	if err != nil {
		return err
	}
	defer kv.Close()
	gw := store.NewGateway(kv, nil)
	tenants, props := seed.Tenants(time.Now()), seed.Properties()
	if empty {
		tenants, props = nil, nil
	}
	if err := gw.SaveTenants(ctx, tenants); err != nil {
		return fmt.Errorf("writing tenants: %w", err)
	}
	if err := gw.SaveProperties(ctx, props); err != nil {
		return fmt.Errorf("writing properties: %w", err)
	}
	if err := gw.SaveTheme(ctx, false); err != nil {
		return fmt.Errorf("writing theme: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if !useGit {
		fmt.Fprintf(out, "Initialized rentflow data directory at %s\n", dir)
		return nil
	}

	// Initialize git and create initial commit.
	repo := gitops.NewRepo(dir, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := repo.CommitAll(ctx, "init: Initialize rentflow data")
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized rentflow data directory at %s (%s)\n", dir, hash)
	return nil
}
