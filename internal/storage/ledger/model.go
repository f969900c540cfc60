package ledger

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Entry represents a confirmed ledger entry record.
type Entry struct {
	ID         uuid.UUID       `db:"id"`
	UserID     uuid.UUID       `db:"user_id"`
	EntryDate  time.Time       `db:"entry_date"`
	Amount     decimal.Decimal `db:"amount"`
	EntryType  string          `db:"entry_type"`
	Category   string          `db:"category"`
	SourceType string          `db:"source_type"`
	SourceID   *uuid.UUID      `db:"source_id"`
	Status     string          `db:"status"`
	CreatedAt  time.Time       `db:"created_at"`
}

// EntryFilter specifies filters for listing ledger entries.
type EntryFilter struct {
	UserID uuid.UUID
	From   *time.Time
	To     *time.Time
	Status *string
}

// EntryCreate is the input for creating a new ledger entry.
type EntryCreate struct {
	UserID     uuid.UUID
	EntryDate  time.Time
	Amount     decimal.Decimal
	EntryType  string
	Category   string
	SourceType string
	SourceID   *uuid.UUID
	Status     string
}

// IEntryTable defines the interface for ledger entry storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IEntryTable --output mock_IEntryTable.go
type IEntryTable interface {
	List(ctx context.Context, filter *EntryFilter) ([]*Entry, error)
}
