package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Rent amounts are stored as JSON numbers, as in the legacy storage format.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Ledger maps a payment key ("2024-Jan") to its paid flag. An absent key
// reads as unpaid. Entries are only ever overwritten, never deleted.
type Ledger map[string]bool

// IsPaid reports the stored flag for key, or false if absent.
func (l Ledger) IsPaid(key string) bool {
	return l[key]
}

// With returns a copy of l with key set to paid. l is not modified.
func (l Ledger) With(key string, paid bool) Ledger {
	out := make(Ledger, len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	out[key] = paid
	return out
}

// AuditEntry records one human-readable action on a tenant.
type AuditEntry struct {
	At     time.Time
	Action string
	// Legacy holds a pre-formatted timestamp carried over from older data
	// that stored display strings instead of times.
	Legacy string
}

// DisplayFormat is the layout used when rendering audit timestamps.
const DisplayFormat = "1/2/2006 • 03:04 PM"

// Display returns the timestamp formatted for humans.
func (e AuditEntry) Display() string {
	if e.At.IsZero() {
		return e.Legacy
	}
	return e.At.Local().Format(DisplayFormat)
}

type auditEntryJSON struct {
	At     *time.Time `json:"at,omitempty"`
	Date   string     `json:"date,omitempty"`
	Action string     `json:"action"`
}

// MarshalJSON implements json.Marshaler.
func (e AuditEntry) MarshalJSON() ([]byte, error) {
	out := auditEntryJSON{Date: e.Legacy, Action: e.Action}
	if !e.At.IsZero() {
		at := e.At
		out.At = &at
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *AuditEntry) UnmarshalJSON(data []byte) error {
	var in auditEntryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = AuditEntry{Action: in.Action, Legacy: in.Date}
	if in.At != nil {
		e.At = *in.At
	}
	return nil
}

// AuditTrail is a newest-first log of actions.
type AuditTrail []AuditEntry

// Prepend returns a new trail with entry at the head.
func (a AuditTrail) Prepend(entry AuditEntry) AuditTrail {
	out := make(AuditTrail, 0, len(a)+1)
	out = append(out, entry)
	return append(out, a...)
}

// Head returns the newest entry.
func (a AuditTrail) Head() (AuditEntry, bool) {
	if len(a) == 0 {
		return AuditEntry{}, false
	}
	return a[0], true
}

// Tenant is the unit of mutation and persistence: identity, contact fields,
// monthly rent, and the tenant's own ledger and audit trail.
type Tenant struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	RentAmount decimal.Decimal `json:"rentAmount"`
	StartDate  string          `json:"startDate,omitempty"` // YYYY-MM-DD
	PhotoURL   string          `json:"photoUrl,omitempty"`
	Payments   Ledger          `json:"payments"`
	History    AuditTrail      `json:"paymentHistory"`
	PropertyID string          `json:"propertyId,omitempty"`
	LeaseEnd   string          `json:"leaseEnd,omitempty"` // YYYY-MM-DD
	Notes      string          `json:"notes,omitempty"`
}
