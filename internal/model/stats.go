package model

import (
	"github.com/shopspring/decimal"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
)

// Stats is derived from the roster on demand and never stored.
type Stats struct {
	TotalTenants     int                              `json:"totalTenants"`
	ActiveTenants    int                              `json:"activeTenants"`
	TotalRevenue     decimal.Decimal                  `json:"totalRevenue"`
	CollectedRevenue decimal.Decimal                  `json:"collectedRevenue"`
	MonthlyIncome    map[paykey.Month]decimal.Decimal `json:"monthlyIncome"`
}
