// Package session applies user events to the in-memory application state
// and writes a snapshot after every committed change.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/activity"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/logging"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/stats"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/store"
)

// Committer records a snapshot of persisted data, e.g. as a git commit.
type Committer interface {
	Snapshot(ctx context.Context, message string) (string, error)
}

// Session is the single owner of application state. Every method runs to
// completion before the next is called; it is not safe for concurrent use.
type Session struct {
	gateway   *store.Gateway
	logger    *slog.Logger
	committer Committer
	activity  *activity.Log
	now       func() time.Time
	newID     func() string

	roster     *roster.Roster
	properties []model.Property
	dark       bool
	selectedID string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = logging.For(l, logging.ComponentSession) }
}

// WithClock overrides the wall clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides how new tenant and property IDs are made.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.newID = gen }
}

// WithCommitter snapshots the data after each successful save.
func WithCommitter(c Committer) Option {
	return func(s *Session) { s.committer = c }
}

// WithActivityLog records every successful save in log.
func WithActivityLog(log *activity.Log) Option {
	return func(s *Session) { s.activity = log }
}

// Load restores state through gw. Missing or unreadable data is replaced by
// the demo dataset, so Load never fails.
func Load(ctx context.Context, gw *store.Gateway, opts ...Option) *Session {
	s := &Session{
		gateway: gw,
		logger:  logging.For(nil, logging.ComponentSession),
		now:     time.Now,
		newID:   roster.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.roster = roster.New(gw.LoadTenants(ctx, s.now()))
	s.properties = gw.LoadProperties(ctx)
	s.dark = gw.LoadTheme(ctx)
	return s
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

func (s *Session) freshID() string {
	id := s.newID()
	for s.roster.Has(id) || s.hasProperty(id) {
		id = s.newID()
	}
	return id
}

func (s *Session) hasProperty(id string) bool {
	for _, p := range s.properties {
		if p.ID == id {
			return true
		}
	}
	return false
}

// persist runs save, then records the change in the activity log and
// snapshots it through the committer, so each commit carries its own
// activity row. Failures are logged; the in-memory state stays authoritative.
func (s *Session) persist(ctx context.Context, op activity.Operation, subject string, save func(context.Context) error) {
	if err := save(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save state",
			logging.FieldOperation, op, logging.FieldError, err)
		return
	}

	entry := activity.Entry{At: s.now(), Op: op, Subject: subject}
	if s.activity != nil {
		if err := s.activity.Record(entry); err != nil {
			s.logger.WarnContext(ctx, "Failed to record activity",
				logging.FieldOperation, op, logging.FieldError, err)
		}
	}

	if s.committer == nil {
		return
	}
	hash, err := s.committer.Snapshot(ctx, "rentflow: "+entry.String())
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to snapshot data",
			logging.FieldOperation, op, logging.FieldError, err)
		return
	}
	if hash != "" {
		s.logger.DebugContext(ctx, "Snapshot committed", logging.FieldOperation, op, "commit", hash)
	}
}

func (s *Session) saveTenants(ctx context.Context) error {
	return s.gateway.SaveTenants(ctx, s.roster.All())
}

func (s *Session) saveProperties(ctx context.Context) error {
	return s.gateway.SaveProperties(ctx, s.properties)
}

func (s *Session) saveTheme(ctx context.Context) error {
	return s.gateway.SaveTheme(ctx, s.dark)
}

// Tenants returns the roster in display order.
func (s *Session) Tenants() []model.Tenant {
	return s.roster.All()
}

// Tenant looks up a tenant by ID.
func (s *Session) Tenant(id string) (model.Tenant, bool) {
	return s.roster.Get(id)
}

// Search filters the roster by name, email or phone.
func (s *Session) Search(term string) []model.Tenant {
	return s.roster.Search(term)
}

// AddTenant creates a tenant from p and puts it at the front of the roster.
func (s *Session) AddTenant(ctx context.Context, p roster.NewTenantParams) (model.Tenant, error) {
	t, err := roster.NewTenant(p, s.now(), s.freshID())
	if err != nil {
		return model.Tenant{}, err
	}
	if err := s.roster.Add(t); err != nil {
		return model.Tenant{}, err
	}
	s.logger.InfoContext(ctx, "Tenant added", logging.FieldTenantID, t.ID)
	s.persist(ctx, activity.AddTenant, t.ID, s.saveTenants)
	return t, nil
}

// EditTenant applies e to the tenant with id.
func (s *Session) EditTenant(ctx context.Context, id string, e roster.TenantEdit) (model.Tenant, error) {
	t, ok := s.roster.Get(id)
	if !ok {
		return model.Tenant{}, fmt.Errorf("%w: %s", roster.ErrNotFound, id)
	}
	t, err := roster.Edit(t, e)
	if err != nil {
		return model.Tenant{}, err
	}
	s.roster.Update(t)
	s.persist(ctx, activity.EditTenant, id, s.saveTenants)
	return t, nil
}

// TogglePayment flips the paid flag for key on the tenant with id.
func (s *Session) TogglePayment(ctx context.Context, id string, key paykey.Key) (model.Tenant, error) {
	t, ok := s.roster.Get(id)
	if !ok {
		return model.Tenant{}, fmt.Errorf("%w: %s", roster.ErrNotFound, id)
	}
	t = roster.TogglePayment(t, key, s.now())
	s.roster.Update(t)

	head, _ := t.History.Head()
	s.logger.InfoContext(ctx, head.Action, logging.FieldTenantID, id, logging.FieldKey, key.String())
	s.persist(ctx, activity.TogglePayment, id+" "+key.String(), s.saveTenants)
	return t, nil
}

// RemoveTenant deletes the tenant with id. Unknown IDs are a no-op and
// report false. Removing the tenant open in the detail view closes it.
func (s *Session) RemoveTenant(ctx context.Context, id string) bool {
	if !s.roster.Remove(id) {
		return false
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	s.logger.InfoContext(ctx, "Tenant removed", logging.FieldTenantID, id)
	s.persist(ctx, activity.RemoveTenant, id, s.saveTenants)
	return true
}

// OpenTenant shows the tenant with id in the detail view.
func (s *Session) OpenTenant(id string) error {
	if !s.roster.Has(id) {
		return fmt.Errorf("%w: %s", roster.ErrNotFound, id)
	}
	s.selectedID = id
	return nil
}

// CloseTenant closes the detail view.
func (s *Session) CloseTenant() {
	s.selectedID = ""
}

// Selected returns the tenant shown in the detail view, read from the
// roster so it always reflects the latest transition.
func (s *Session) Selected() (model.Tenant, bool) {
	if s.selectedID == "" {
		return model.Tenant{}, false
	}
	return s.roster.Get(s.selectedID)
}

// Properties returns the property list in display order.
func (s *Session) Properties() []model.Property {
	out := make([]model.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// AddProperty creates a property and puts it at the front of the list.
func (s *Session) AddProperty(ctx context.Context, p roster.NewPropertyParams) (model.Property, error) {
	prop, err := roster.NewProperty(p, s.freshID())
	if err != nil {
		return model.Property{}, err
	}
	s.properties = append([]model.Property{prop}, s.properties...)
	s.persist(ctx, activity.AddProperty, prop.ID, s.saveProperties)
	return prop, nil
}

// DarkMode reports the theme flag.
func (s *Session) DarkMode() bool {
	return s.dark
}

// SetDarkMode sets the theme flag.
func (s *Session) SetDarkMode(ctx context.Context, dark bool) {
	s.dark = dark
	theme := "light"
	if dark {
		theme = "dark"
	}
	s.persist(ctx, activity.SetTheme, theme, s.saveTheme)
}

// ToggleTheme flips the theme flag and returns the new value.
func (s *Session) ToggleTheme(ctx context.Context) bool {
	s.SetDarkMode(ctx, !s.dark)
	return s.dark
}

// Stats aggregates the current roster under f.
func (s *Session) Stats(f stats.Filter) model.Stats {
	return stats.Compute(s.roster.All(), f)
}
