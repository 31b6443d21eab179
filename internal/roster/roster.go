package roster

import (
	"fmt"
	"strings"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
)

// Roster is the in-memory collection of tenants, keyed by ID. New tenants go
// to the front of the default ordering.
type Roster struct {
	tenants []model.Tenant
	byID    map[string]int
}

// New creates a Roster from tenants in display order. Later duplicates of an
// ID are dropped.
func New(tenants []model.Tenant) *Roster {
	r := &Roster{byID: make(map[string]int, len(tenants))}
	for _, t := range tenants {
		if _, ok := r.byID[t.ID]; ok {
			continue
		}
		r.byID[t.ID] = len(r.tenants)
		r.tenants = append(r.tenants, t)
	}
	return r
}

func (r *Roster) reindex() {
	r.byID = make(map[string]int, len(r.tenants))
	for i, t := range r.tenants {
		r.byID[t.ID] = i
	}
}

// Add inserts t at the front. The ID must not already be present.
func (r *Roster) Add(t model.Tenant) error {
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, t.ID)
	}
	r.tenants = append([]model.Tenant{t}, r.tenants...)
	r.reindex()
	return nil
}

// Update replaces the tenant with the same ID. Unknown IDs are ignored;
// the result reports whether a replacement happened.
func (r *Roster) Update(t model.Tenant) bool {
	i, ok := r.byID[t.ID]
	if !ok {
		return false
	}
	r.tenants[i] = t
	return true
}

// Remove deletes the tenant with id, if present.
func (r *Roster) Remove(id string) bool {
	i, ok := r.byID[id]
	if !ok {
		return false
	}
	r.tenants = append(r.tenants[:i:i], r.tenants[i+1:]...)
	r.reindex()
	return true
}

// Get returns the tenant with id.
func (r *Roster) Get(id string) (model.Tenant, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.Tenant{}, false
	}
	return r.tenants[i], true
}

// Has reports whether id is present.
func (r *Roster) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the tenants in display order.
func (r *Roster) All() []model.Tenant {
	out := make([]model.Tenant, len(r.tenants))
	copy(out, r.tenants)
	return out
}

// Len returns the number of tenants.
func (r *Roster) Len() int {
	return len(r.tenants)
}

// Search returns tenants whose name or email contains term (ignoring case)
// or whose phone contains term. An empty term matches everyone.
func (r *Roster) Search(term string) []model.Tenant {
	if term == "" {
		return r.All()
	}
	lower := strings.ToLower(term)
	var out []model.Tenant
	for _, t := range r.tenants {
		if strings.Contains(strings.ToLower(t.Name), lower) ||
			strings.Contains(strings.ToLower(t.Email), lower) ||
			strings.Contains(t.Phone, term) {
			out = append(out, t)
		}
	}
	return out
}
