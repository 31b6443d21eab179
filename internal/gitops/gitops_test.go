package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not installed")
	}
}

func gitLog(t *testing.T, dir, format string) string {
	t.Helper()
	cmd := exec.Command("git", "log", "--format="+format, "-1")
	cmd.Dir = dir
	out, err := cmd.Output()
	require.NoError(t, err)
	return string(out)
}

func TestInit(t *testing.T) {
	requireGit(t)
	repo := NewRepo(t.TempDir(), "Test Author", "test@example.com")
	assert.False(t, repo.IsRepo(), "empty dir should not be a repo")

	require.NoError(t, repo.Init(context.Background()))
	assert.True(t, repo.IsRepo(), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewRepo(dir, "Test Author", "test@example.com")
	require.NoError(t, repo.Init(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rentflow_theme.json"), []byte("true"), 0o644))

	hash, err := repo.CommitAll(ctx, "init: test commit")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.Contains(t, gitLog(t, dir, "%s"), "init: test commit")
	assert.Contains(t, gitLog(t, dir, "%an <%ae>"), "Test Author <test@example.com>")
}

func TestSnapshot(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	repo := NewRepo(dir, "Test Author", "test@example.com")
	require.NoError(t, repo.Init(ctx))

	path := filepath.Join(dir, "rentflow_tenants.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	hash, err := repo.Snapshot(ctx, "data: save tenants")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Nothing changed since the last snapshot.
	hash, err = repo.Snapshot(ctx, "data: save tenants")
	require.NoError(t, err)
	assert.Empty(t, hash)

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"t1"}]`), 0o644))
	changed, err := repo.HasChanges(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestSnapshot_NotARepo(t *testing.T) {
	requireGit(t)
	_, err := NewRepo(t.TempDir(), "a", "a@b.c").Snapshot(context.Background(), "x")
	assert.Error(t, err)
}
