package stats

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
)

// AllMonths is the month filter value that selects the whole year.
const AllMonths = "All"

var twelve = decimal.NewFromInt(12)

// Filter selects which ledger entries count as collected revenue.
// An empty Month selects every month of Year.
type Filter struct {
	Year  int
	Month paykey.Month
}

// NewFilter builds a Filter from user input. month may be "All", "" or a
// month abbreviation.
func NewFilter(year int, month string) (Filter, error) {
	if year <= 0 {
		return Filter{}, fmt.Errorf("invalid filter year %d", year)
	}
	if month == "" || strings.EqualFold(month, AllMonths) {
		return Filter{Year: year}, nil
	}
	m, err := paykey.ParseMonth(month)
	if err != nil {
		return Filter{}, fmt.Errorf("invalid filter month: %w", err)
	}
	return Filter{Year: year, Month: m}, nil
}

// All reports whether the filter covers the whole year.
func (f Filter) All() bool {
	return f.Month == ""
}

// Label is the heading shown for the filter, e.g. "Feb" or "2024".
func (f Filter) Label() string {
	if f.All() {
		return fmt.Sprintf("%d", f.Year)
	}
	return string(f.Month)
}

func (f Filter) matches(k paykey.Key) bool {
	return k.Year == f.Year && (f.All() || k.Month == f.Month)
}

// Compute derives revenue figures from tenants. Total revenue is the
// annualized rent of every tenant regardless of filter; collected revenue
// counts each paid ledger entry matching f once, at the tenant's current
// rent. Entries whose keys do not parse are skipped.
func Compute(tenants []model.Tenant, f Filter) model.Stats {
	income := make(map[paykey.Month]decimal.Decimal, len(paykey.Months))
	for _, m := range paykey.Months {
		income[m] = decimal.Zero
	}

	total := decimal.Zero
	collected := decimal.Zero

	for _, t := range tenants {
		rent := t.RentAmount
		total = total.Add(rent.Mul(twelve))

		for raw, paid := range t.Payments {
			if !paid {
				continue
			}
			k, err := paykey.Parse(raw)
			if err != nil {
				continue
			}
			if !f.matches(k) {
				continue
			}
			income[k.Month] = income[k.Month].Add(rent)
			collected = collected.Add(rent)
		}
	}

	return model.Stats{
		TotalTenants:     len(tenants),
		ActiveTenants:    len(tenants),
		TotalRevenue:     total,
		CollectedRevenue: collected,
		MonthlyIncome:    income,
	}
}

// MonthAmount is one bar of the revenue breakdown.
type MonthAmount struct {
	Month  paykey.Month
	Amount decimal.Decimal
	// Active is false for months outside a single-month filter.
	Active bool
}

// Breakdown returns the monthly income in calendar order.
func Breakdown(s model.Stats, f Filter) []MonthAmount {
	out := make([]MonthAmount, 0, len(paykey.Months))
	for _, m := range paykey.Months {
		out = append(out, MonthAmount{
			Month:  m,
			Amount: s.MonthlyIncome[m],
			Active: f.All() || f.Month == m,
		})
	}
	return out
}
