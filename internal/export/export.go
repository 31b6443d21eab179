// Package export writes ledger data as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/yabsrayab14-beep/Rental-Manager/internal/model"
	"github.com/yabsrayab14-beep/Rental-Manager/internal/paykey"
)

const (
	colTenantID = 0
	colName     = 1
	colRent     = 2
	colFirstMon = 3
	ledgerWidth = colFirstMon + 12

	colTimestamp = 0
	colAction    = 1
	historyWidth = 2

	paidMark = "paid"
)

// LedgerHeader returns the header row written by WriteLedger.
func LedgerHeader() []string {
	row := make([]string, ledgerWidth)
	row[colTenantID] = "tenant_id"
	row[colName] = "name"
	row[colRent] = "rent"
	for i, m := range paykey.Months {
		row[colFirstMon+i] = string(m)
	}
	return row
}

// MarshalLedgerRow converts one tenant's ledger for year into a CSV row.
// Paid months read "paid"; unpaid or absent months are blank.
func MarshalLedgerRow(t model.Tenant, year int) []string {
	row := make([]string, ledgerWidth)
	row[colTenantID] = t.ID
	row[colName] = t.Name
	row[colRent] = t.RentAmount.StringFixed(2)
	for i, m := range paykey.Months {
		if t.Payments.IsPaid(paykey.Format(year, m)) {
			row[colFirstMon+i] = paidMark
		}
	}
	return row
}

// WriteLedger writes a header and one row per tenant, in roster order.
func WriteLedger(w io.Writer, tenants []model.Tenant, year int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LedgerHeader()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range tenants {
		if err := cw.Write(MarshalLedgerRow(t, year)); err != nil {
			return fmt.Errorf("writing tenant %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalHistoryRow converts an audit entry into a CSV row. Structured
// timestamps are written as RFC 3339; legacy display strings as-is.
func MarshalHistoryRow(e model.AuditEntry) []string {
	row := make([]string, historyWidth)
	if e.At.IsZero() {
		row[colTimestamp] = e.Legacy
	} else {
		row[colTimestamp] = e.At.Format(time.RFC3339)
	}
	row[colAction] = e.Action
	return row
}

// WriteHistory writes the tenant's audit trail, newest first.
func WriteHistory(w io.Writer, t model.Tenant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "action"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range t.History {
		if err := cw.Write(MarshalHistoryRow(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
