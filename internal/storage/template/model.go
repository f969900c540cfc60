package template

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Template represents a recurring template record.
type Template struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	EntryType     string          `db:"entry_type"`
	Category      string          `db:"category"`
	SourceType    string          `db:"source_type"`
	Frequency     string          `db:"frequency"`
	RecurInterval int             `db:"recur_interval"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       *time.Time      `db:"end_date"` // nil means the recurrence runs until the query window ends
	Active        bool            `db:"active"`
	CreatedAt     time.Time       `db:"created_at"`
}

// ITemplateTable defines the interface for recurring template storage operations.
//
//go:generate mockery --name ITemplateTable --output mock_ITemplateTable.go
type ITemplateTable interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]*Template, error)
}
