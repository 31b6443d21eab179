package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/activity"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/assist"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

// runRentflowLogs executes the root command in-process and returns what it
// wrote to stdout and stderr.
func runRentflowLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func runRentflow(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runRentflowLogs(t, args...)
	return out, err
}

// initDir creates an initialized data directory and returns its path.
func initDir(t *testing.T, extra ...string) string {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	_, err := runRentflow(t, append([]string{"init", dir}, extra...)...)
	require.NoError(t, err)
	return dir
}

func thisYear() string {
	return strconv.Itoa(time.Now().Year())
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initDir(t)

	for _, f := range []string{
		"rentflow.yaml",
		".gitignore",
		filepath.Join("data", "rentflow_tenants.json"),
		filepath.Join("data", "rentflow_properties.json"),
		filepath.Join("data", "rentflow_theme.json"),
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rentflow.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := initDir(t)
	_, err := runRentflow(t, "init", dir)
	assert.Error(t, err)
}

func TestInit_SQLite(t *testing.T) {
	dir := initDir(t, "--backend", "sqlite", "--empty")

	_, err := os.Stat(filepath.Join(dir, "data", "rentflow.db"))
	require.NoError(t, err)

	out, err := runRentflow(t, "--dir", dir, "tenant", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tenants found.")
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := initDir(t, "--git")

	_, err := runRentflow(t, "--dir", dir, "theme", "dark")
	require.NoError(t, err)

	log := exec.Command("git", "log", "--format=%s")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Initialize rentflow data")
	assert.Contains(t, string(out), "rentflow: set_theme dark")

	status := exec.Command("git", "status", "--porcelain")
	status.Dir = dir
	out, err = status.Output()
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(out)), "the activity row is part of the commit")
}

func TestTenantList_Seed(t *testing.T) {
	dir := initDir(t)
	out, err := runRentflow(t, "--dir", dir, "tenant", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "frvd")
	assert.Contains(t, out, "Mike Johnson")
	assert.Contains(t, out, "$1,334.00")

	out, err = runRentflow(t, "--dir", dir, "tenant", "list", "--search", "mike")
	require.NoError(t, err)
	assert.Contains(t, out, "Mike Johnson")
	assert.NotContains(t, out, "frvd")
}

func TestTenantAdd_PayAndShow(t *testing.T) {
	dir := initDir(t, "--empty")

	out, err := runRentflow(t, "--dir", dir, "tenant", "add", "--name", "Test", "--rent", "500", "--email", "test@example.com")
	require.NoError(t, err)
	require.Contains(t, out, "Added tenant ")
	id := strings.Fields(strings.TrimPrefix(out, "Added tenant "))[0]

	out, err = runRentflow(t, "--dir", dir, "tenant", "pay", id, "--year", "2024", "--month", "Feb")
	require.NoError(t, err)
	assert.Contains(t, out, "Test: Marked Feb 2024 as Paid")
	assert.Contains(t, out, "Feb[x]")

	out, err = runRentflow(t, "--dir", dir, "tenant", "show", id, "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "test@example.com")
	assert.Contains(t, out, "$500.00 / month")
	assert.Contains(t, out, "Marked Feb 2024 as Paid")
	assert.Contains(t, out, roster.ActionProfileCreated)

	// Toggling again restores unpaid.
	out, err = runRentflow(t, "--dir", dir, "tenant", "pay", id, "--year", "2024", "--month", "Feb")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked Feb 2024 as Unpaid")
	assert.Contains(t, out, "Feb[ ]")

	out, err = runRentflow(t, "--dir", dir, "tenant", "history", id)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Unpaid")
	assert.Contains(t, lines[2], roster.ActionProfileCreated)
}

func TestTenantAdd_Invalid(t *testing.T) {
	dir := initDir(t, "--empty")

	_, err := runRentflow(t, "--dir", dir, "tenant", "add", "--name", "X", "--rent", "lots")
	assert.ErrorIs(t, err, roster.ErrValidation)

	_, err = runRentflow(t, "--dir", dir, "tenant", "add", "--name", "X", "--email", "not-an-email")
	assert.ErrorIs(t, err, roster.ErrValidation)
}

func TestTenantPay_BadMonth(t *testing.T) {
	dir := initDir(t)
	_, err := runRentflow(t, "--dir", dir, "tenant", "pay", "t1", "--month", "jan")
	assert.ErrorIs(t, err, paykey.ErrMalformedKey)
}

func TestTenantEdit(t *testing.T) {
	dir := initDir(t)

	_, err := runRentflow(t, "--dir", dir, "tenant", "edit", "t2", "--phone", "555-9999", "--rent", "1100")
	require.NoError(t, err)

	out, err := runRentflow(t, "--dir", dir, "tenant", "show", "t2")
	require.NoError(t, err)
	assert.Contains(t, out, "555-9999")
	assert.Contains(t, out, "$1,100.00")
	assert.Contains(t, out, "yab@example.com", "untouched fields are kept")

	_, err = runRentflow(t, "--dir", dir, "tenant", "edit", "nobody", "--phone", "1")
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestTenantRemove(t *testing.T) {
	dir := initDir(t)

	_, err := runRentflow(t, "--dir", dir, "tenant", "rm", "t1")
	require.NoError(t, err)

	out, err := runRentflow(t, "--dir", dir, "tenant", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "frvd")

	_, err = runRentflow(t, "--dir", dir, "tenant", "rm", "t1")
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	dir := initDir(t, "--empty")
	for _, args := range [][]string{
		{"tenant", "add", "--name", "A", "--rent", "1000"},
		{"tenant", "add", "--name", "B", "--rent", "1200"},
	} {
		_, err := runRentflow(t, append([]string{"--dir", dir}, args...)...)
		require.NoError(t, err)
	}
	out, err := runRentflow(t, "--dir", dir, "tenant", "list")
	require.NoError(t, err)
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		ids = append(ids, strings.Fields(line)[0])
	}
	require.Len(t, ids, 2)

	for _, id := range ids {
		_, err := runRentflow(t, "--dir", dir, "tenant", "pay", id, "--year", "2024", "--month", "Jan")
		require.NoError(t, err)
	}

	out, err = runRentflow(t, "--dir", dir, "dashboard", "--year", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "$26,400.00")
	assert.Contains(t, out, "Collected:")
	assert.Contains(t, out, "$2,200.00")

	out, err = runRentflow(t, "--dir", dir, "dashboard", "--year", "2024", "--month", "Feb")
	require.NoError(t, err)
	assert.Contains(t, out, "Period:")
	assert.Contains(t, out, "> Feb")
	assert.Regexp(t, `Collected:\s+\$0\.00`, out)

	_, err = runRentflow(t, "--dir", dir, "dashboard", "--month", "February")
	assert.Error(t, err)
}

func TestTheme(t *testing.T) {
	dir := initDir(t)

	out, err := runRentflow(t, "--dir", dir, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")

	out, err = runRentflow(t, "--dir", dir, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: dark")

	out, err = runRentflow(t, "--dir", dir, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	_, err = runRentflow(t, "--dir", dir, "theme", "purple")
	assert.Error(t, err)
}

func TestProperty(t *testing.T) {
	dir := initDir(t)

	out, err := runRentflow(t, "--dir", dir, "property", "add",
		"--name", "Harbor Loft", "--address", "9 Pier St", "--rent", "2750",
		"--bedrooms", "1", "--bathrooms", "1.5", "--generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Added property")
	assert.Contains(t, out, assist.DescriptionFailed, "no API key configured")

	out, err = runRentflow(t, "--dir", dir, "property", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Harbor Loft")
	assert.Contains(t, out, "Vacant")
	assert.Contains(t, out, "Sunset Heights 3B")

	_, err = runRentflow(t, "--dir", dir, "property", "add", "--name", "X", "--address", "Y", "--status", "Haunted")
	assert.Error(t, err)
}

func TestMessage_Fallback(t *testing.T) {
	dir := initDir(t)

	out, err := runRentflow(t, "--dir", dir, "message", "t2", "--topic", "Rent reminder", "--tone", "friendly")
	require.NoError(t, err)
	assert.Contains(t, out, assist.MessageFailed)

	_, err = runRentflow(t, "--dir", dir, "message", "t2", "--topic", "x", "--tone", "rude")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := initDir(t)

	out, err := runRentflow(t, "--dir", dir, "export", "ledger", "--year", thisYear())
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "tenant_id", records[0][0])
	assert.Equal(t, "t2", records[2][0])
	assert.Equal(t, "paid", records[2][3], "Yab paid January")

	out, err = runRentflow(t, "--dir", dir, "export", "history", "t2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "timestamp,action\n"))
	assert.Contains(t, out, "Marked Jun "+thisYear()+" as Paid")
}

func TestActivity(t *testing.T) {
	dir := initDir(t)

	out, err := runRentflow(t, "--dir", dir, "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "No activity recorded.")

	_, err = runRentflow(t, "--dir", dir, "tenant", "pay", "t1", "--year", "2024", "--month", "Mar")
	require.NoError(t, err)

	entries, err := activity.NewLog(dir).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t1 2024-Mar", entries[0].Subject)

	out, err = runRentflow(t, "--dir", dir, "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "toggle_payment")
}

func TestCorruptDataFallsBackToSeed(t *testing.T) {
	dir := initDir(t, "--empty")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "rentflow_tenants.json"), []byte("{broken"), 0o644))

	out, logs, err := runRentflowLogs(t, "--dir", dir, "tenant", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mike Johnson")
	assert.Contains(t, logs, "malformed")
}

func TestSaveFailureDoesNotFailCommand(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := initDir(t)
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Chmod(dataDir, 0o555))
	t.Cleanup(func() { os.Chmod(dataDir, 0o755) })

	out, logs, err := runRentflowLogs(t, "--dir", dir, "tenant", "pay", "t1", "--year", "2024", "--month", "Jan")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked Jan 2024 as Paid")
	assert.Contains(t, logs, "Failed to save state")
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999.5", "$999.50"},
		{"1334", "$1,334.00"},
		{"42414", "$42,414.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-1234.5", "-$1,234.50"},
		{"-0.001", "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money(mustDecimal(t, tt.in)))
	}
}
