package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func TestRecord_WritesHeaderOnce(t *testing.T) {
	l := NewLog(t.TempDir())
	require.NoError(t, l.Record(Entry{At: testTime, Op: AddTenant, Subject: "t9"}))
	require.NoError(t, l.Record(Entry{At: testTime.Add(time.Minute), Op: TogglePayment, Subject: "t9 2024-Feb"}))

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, "at,operation,subject\n"+
		"2024-03-10T09:30:00Z,add_tenant,t9\n"+
		"2024-03-10T09:31:00Z,toggle_payment,t9 2024-Feb\n", string(data))
}

func TestEntries(t *testing.T) {
	l := NewLog(t.TempDir())
	local := time.FixedZone("EAT", 3*60*60)
	require.NoError(t, l.Record(Entry{At: testTime.In(local), Op: SetTheme, Subject: "dark"}))

	entries, err := l.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, testTime.Equal(entries[0].At), "times compare by instant")
	assert.Equal(t, SetTheme, entries[0].Op)
	assert.Equal(t, "set_theme dark", entries[0].String())
}

func TestEntries_Missing(t *testing.T) {
	entries, err := NewLog(t.TempDir()).Entries()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestEntries_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "timestamp,agent,action\n"},
		{"bad time", "at,operation,subject\nyesterday,add_tenant,t1\n"},
		{"unknown operation", "at,operation,subject\n2024-03-10T09:30:00Z,categorize,t1\n"},
		{"short row", "at,operation,subject\n2024-03-10T09:30:00Z,add_tenant\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			l := NewLog(dir)
			require.NoError(t, os.MkdirAll(filepath.Dir(l.Path()), 0o755))
			require.NoError(t, os.WriteFile(l.Path(), []byte(tt.content), 0o644))

			_, err := l.Entries()
			assert.Error(t, err)
		})
	}
}

func TestRecent(t *testing.T) {
	l := NewLog(t.TempDir())
	for i, op := range []Operation{AddTenant, EditTenant, RemoveTenant} {
		require.NoError(t, l.Record(Entry{At: testTime.Add(time.Duration(i) * time.Hour), Op: op, Subject: "t1"}))
	}

	got, err := l.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RemoveTenant, got[0].Op)
	assert.Equal(t, EditTenant, got[1].Op)

	all, err := l.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("add_property")
	require.NoError(t, err)
	assert.Equal(t, AddProperty, op)

	_, err = ParseOperation("Add_Property")
	assert.Error(t, err)
}
