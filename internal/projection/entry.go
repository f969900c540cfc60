package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies an entry as money in or money out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// EntryStatus describes how certain an entry is.
type EntryStatus string

const (
	StatusConfirmed EntryStatus = "confirmed"
	StatusProjected EntryStatus = "projected"
	StatusPending   EntryStatus = "pending"
)

// SourceType identifies the record an entry originated from.
type SourceType string

const (
	SourceInvoice SourceType = "invoice"
	SourceSalary  SourceType = "salary"
	SourceExpense SourceType = "expense"
	SourceTax     SourceType = "tax"
	SourceManual  SourceType = "manual"
)

// LedgerEntry is the uniform financial event fed into aggregation.
// Confirmed entries come from storage; synthesized entries are built in
// memory for a single aggregation call and never persisted.
//
// Amounts are stored as positive magnitudes; Type alone determines the
// sign of an entry's contribution to the running balance.
type LedgerEntry struct {
	ID         string
	Date       time.Time
	Amount     decimal.Decimal
	Type       EntryType
	Category   string
	SourceType SourceType
	SourceID   string // empty for manual entries
	Status     EntryStatus
}

// dateOnly truncates a timestamp to day resolution in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthKey returns the lexicographically sortable YYYY-MM key for a date.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
