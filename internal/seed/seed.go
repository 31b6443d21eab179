// Package seed holds the demo dataset used when storage is empty or unreadable.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/roster"
)

// Properties returns the two demo properties.
func Properties() []model.Property {
	return []model.Property{
		{
			ID:          "p1",
			Name:        "Sunset Heights 3B",
			Address:     "123 Sunset Blvd, CA",
			RentAmount:  decimal.NewFromInt(2400),
			Status:      model.PropertyOccupied,
			Bedrooms:    2,
			Bathrooms:   2,
			Description: "Modern unit with great views and updated kitchen.",
			ImageURL:    "https://picsum.photos/400/300?random=1",
		},
		{
			ID:          "p3",
			Name:        "Lakeside Villa",
			Address:     "88 Lakeview Dr",
			RentAmount:  decimal.NewFromInt(3200),
			Status:      model.PropertyMaintenance,
			Bedrooms:    3,
			Bathrooms:   2.5,
			Description: "Spacious villa undergoing renovations.",
			ImageURL:    "https://picsum.photos/400/300?random=3",
		},
	}
}

// Tenants returns the three demo tenants with ledger entries for the
// calendar year containing now.
func Tenants(now time.Time) []model.Tenant {
	year := now.Year()
	cur := paykey.Of(now)
	key := func(m paykey.Month) string { return paykey.Format(year, m) }
	paid := func(m paykey.Month) string {
		return roster.ToggleAction(paykey.Key{Year: year, Month: m}, true)
	}

	return []model.Tenant{
		{
			ID:         "t1",
			Name:       "frvd",
			Email:      "frvd@example.com",
			Phone:      "555-0101",
			RentAmount: decimal.NewFromInt(1334),
			StartDate:  "2023-06-01",
			Payments:   model.Ledger{key(paykey.Jan): false, key(paykey.Feb): false},
			History:    model.AuditTrail{},
			Notes:      "Prefers communication via text. Lease renewal discussion pending for next month.",
		},
		{
			ID:         "t2",
			Name:       "Yab",
			Email:      "yab@example.com",
			Phone:      "555-0102",
			RentAmount: decimal.NewFromInt(1000),
			StartDate:  "2024-01-15",
			PhotoURL:   "https://picsum.photos/200/200?random=11",
			Payments:   model.Ledger{key(paykey.Jan): true, key(paykey.Feb): false, key(paykey.Jun): true},
			History: model.AuditTrail{
				{At: time.Date(year, time.June, 1, 9, 0, 0, 0, now.Location()), Action: paid(paykey.Jun)},
				{At: time.Date(year, time.January, 20, 9, 0, 0, 0, now.Location()), Action: paid(paykey.Jan)},
			},
		},
		{
			ID:         "t3",
			Name:       "Mike Johnson",
			Email:      "mike@example.com",
			Phone:      "555-0103",
			RentAmount: decimal.NewFromInt(1200),
			StartDate:  "2023-11-01",
			PhotoURL:   "https://picsum.photos/200/200?random=12",
			Payments:   model.Ledger{cur.String(): true, key(paykey.Jan): true},
			History: model.AuditTrail{
				{At: now, Action: paid(cur.Month)},
			},
			Notes: "Dog owner (Golden Retriever named Max). Security deposit includes pet fee.",
		},
	}
}
