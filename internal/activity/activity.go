// Package activity keeps an append-only CSV log of state changes in the
// data directory.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// Operation names a kind of state change.
type Operation string

const (
	AddTenant     Operation = "add_tenant"
	EditTenant    Operation = "edit_tenant"
	TogglePayment Operation = "toggle_payment"
	RemoveTenant  Operation = "remove_tenant"
	AddProperty   Operation = "add_property"
	SetTheme      Operation = "set_theme"
)

var operations = []Operation{AddTenant, EditTenant, TogglePayment, RemoveTenant, AddProperty, SetTheme}

// ParseOperation accepts one of the known operation names.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !slices.Contains(operations, op) {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

// Entry records one saved change: what happened, to what, and when.
type Entry struct {
	At      time.Time
	Op      Operation
	Subject string
}

// String renders the entry as "toggle_payment t2 2024-Feb".
func (e Entry) String() string {
	if e.Subject == "" {
		return string(e.Op)
	}
	return string(e.Op) + " " + e.Subject
}

var header = []string{"at", "operation", "subject"}

func (e Entry) record() []string {
	return []string{e.At.UTC().Format(time.RFC3339), string(e.Op), e.Subject}
}

func parseRecord(rec []string) (Entry, error) {
	at, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Entry{}, fmt.Errorf("bad time %q: %w", rec[0], err)
	}
	op, err := ParseOperation(rec[1])
	if err != nil {
		return Entry{}, err
	}
	return Entry{At: at, Op: op, Subject: rec[2]}, nil
}

// Log is the activity file of one data directory, logs/activity.csv.
type Log struct {
	path string
}

// NewLog returns the Log kept under dir.
func NewLog(dir string) *Log {
	return &Log{path: filepath.Join(dir, "logs", "activity.csv")}
}

// Path returns the file backing the log.
func (l *Log) Path() string {
	return l.path
}

// Record appends e. The header is written when the file is new or empty.
func (l *Log) Record(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat activity log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		cw.Write(header)
	}
	cw.Write(e.record())
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("recording %s: %w", e.Op, err)
	}
	return nil
}

// Entries returns the whole log, oldest first. A missing file is an empty log.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	if !slices.Equal(first, header) {
		return nil, fmt.Errorf("activity log %s has unexpected header %v", l.path, first)
	}

	var entries []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		e, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (l *Log) Recent(n int) ([]Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
