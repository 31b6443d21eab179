package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
)

// ActionProfileCreated is the first audit entry of every new tenant.
const ActionProfileCreated = "Tenant profile created"

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewID returns a fresh opaque tenant ID.
func NewID() string {
	return uuid.NewString()
}

// contactFields holds the tenant fields that carry format rules.
type contactFields struct {
	Name      string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	LeaseEnd  string `validate:"omitempty,datetime=2006-01-02"`
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func checkRent(rent decimal.Decimal) error {
	if rent.IsNegative() {
		return fmt.Errorf("%w: rent amount %s is negative", ErrValidation, rent)
	}
	return nil
}

func validateFields(f contactFields, rent decimal.Decimal) error {
	if err := validate.Struct(f); err != nil {
		return validationError(err)
	}
	return checkRent(rent)
}

// NewTenantParams holds the form fields for a new tenant.
type NewTenantParams struct {
	Name       string
	Email      string
	Phone      string
	RentAmount decimal.Decimal
	StartDate  string // YYYY-MM-DD; defaults to today
	LeaseEnd   string
	PhotoURL   string
	PropertyID string
	Notes      string
}

// NewTenant builds a tenant with a fresh ID, an empty ledger, and a single
// "profile created" audit entry.
func NewTenant(p NewTenantParams, now time.Time, id string) (model.Tenant, error) {
	name := strings.TrimSpace(p.Name)
	start := p.StartDate
	if start == "" {
		start = now.Format(dateLayout)
	}

	if err := validateFields(contactFields{
		Name:      name,
		Email:     p.Email,
		StartDate: start,
		LeaseEnd:  p.LeaseEnd,
	}, p.RentAmount); err != nil {
		return model.Tenant{}, err
	}
	if id == "" {
		return model.Tenant{}, fmt.Errorf("%w: empty tenant id", ErrValidation)
	}

	return model.Tenant{
		ID:         id,
		Name:       name,
		Email:      p.Email,
		Phone:      p.Phone,
		RentAmount: p.RentAmount,
		StartDate:  start,
		LeaseEnd:   p.LeaseEnd,
		PhotoURL:   p.PhotoURL,
		PropertyID: p.PropertyID,
		Notes:      p.Notes,
		Payments:   model.Ledger{},
		History:    model.AuditTrail{{At: now, Action: ActionProfileCreated}},
	}, nil
}

// ToggleAction describes a toggle result, e.g. "Marked Feb 2024 as Paid".
func ToggleAction(key paykey.Key, paid bool) string {
	state := "Unpaid"
	if paid {
		state = "Paid"
	}
	return fmt.Sprintf("Marked %s %d as %s", key.Month, key.Year, state)
}

// TogglePayment flips the paid flag for key and prepends one audit entry.
// Applying it twice restores the flag and leaves two entries.
func TogglePayment(t model.Tenant, key paykey.Key, now time.Time) model.Tenant {
	k := key.String()
	next := !t.Payments.IsPaid(k)

	t.Payments = t.Payments.With(k, next)
	t.History = t.History.Prepend(model.AuditEntry{
		At:     now,
		Action: ToggleAction(key, next),
	})
	return t
}

// TenantEdit lists field replacements. Nil fields are left unchanged.
type TenantEdit struct {
	Name       *string
	Email      *string
	Phone      *string
	RentAmount *decimal.Decimal
	StartDate  *string
	LeaseEnd   *string
	PhotoURL   *string
	PropertyID *string
	Notes      *string
}

// Edit applies e to t. Only the supplied fields are validated, so stored
// values that predate validation survive unrelated edits. Payments and
// History are carried over untouched and no audit entry is written.
func Edit(t model.Tenant, e TenantEdit) (model.Tenant, error) {
	var f contactFields
	var checked []string
	take := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		*dst = *src
		checked = append(checked, field)
	}
	if e.Name != nil {
		trimmed := strings.TrimSpace(*e.Name)
		e.Name = &trimmed
	}
	take("Name", &f.Name, e.Name)
	take("Email", &f.Email, e.Email)
	take("StartDate", &f.StartDate, e.StartDate)
	take("LeaseEnd", &f.LeaseEnd, e.LeaseEnd)

	if len(checked) > 0 {
		if err := validate.StructPartial(f, checked...); err != nil {
			return model.Tenant{}, validationError(err)
		}
	}
	if e.RentAmount != nil {
		if err := checkRent(*e.RentAmount); err != nil {
			return model.Tenant{}, err
		}
		t.RentAmount = *e.RentAmount
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Name, e.Name)
	set(&t.Email, e.Email)
	set(&t.Phone, e.Phone)
	set(&t.StartDate, e.StartDate)
	set(&t.LeaseEnd, e.LeaseEnd)
	set(&t.PhotoURL, e.PhotoURL)
	set(&t.PropertyID, e.PropertyID)
	set(&t.Notes, e.Notes)
	return t, nil
}

// ParseRent coerces form input to a rent amount.
func ParseRent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: rent amount %q is not a number", ErrValidation, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: rent amount %s is negative", ErrValidation, d)
	}
	return d, nil
}
