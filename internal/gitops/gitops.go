// Package gitops keeps a history of the data directory as git commits.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Repo is a git working tree holding rentflow data.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// NewRepo returns a Repo rooted at dir. Commits are attributed to name/email.
func NewRepo(dir, name, email string) *Repo {
	return &Repo{Dir: dir, AuthorName: name, AuthorEmail: email}
}

func (r *Repo) git(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	// Commits must not depend on the user's global identity.
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+r.AuthorName,
		"GIT_AUTHOR_EMAIL="+r.AuthorEmail,
		"GIT_COMMITTER_NAME="+r.AuthorName,
		"GIT_COMMITTER_EMAIL="+r.AuthorEmail,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return out, nil
}

// Init initializes a repository in r.Dir.
func (r *Repo) Init(ctx context.Context) error {
	if _, err := r.git(ctx, "init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// IsRepo reports whether r.Dir has been initialized.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// HasChanges reports whether the working tree differs from HEAD,
// untracked files included.
func (r *Repo) HasChanges(ctx context.Context) (bool, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func (r *Repo) CommitAll(ctx context.Context, message string) (string, error) {
	if _, err := r.git(ctx, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := r.git(ctx, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	out, err := r.git(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Snapshot commits the working tree if anything changed. An unchanged tree
// is not an error and returns an empty hash.
func (r *Repo) Snapshot(ctx context.Context, message string) (string, error) {
	if !r.IsRepo() {
		return "", fmt.Errorf("%s is not a git repository", r.Dir)
	}
	changed, err := r.HasChanges(ctx)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", nil
	}
	return r.CommitAll(ctx, message)
}
