package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/ledger"
)

// CreateEntry inserts a manual confirmed ledger entry. Committing it
// makes the user's cached projections stale, so the action reports the
// user scope as its invalidation pattern.
type CreateEntry struct {
	UserID    uuid.UUID
	EntryDate time.Time
	Amount    decimal.Decimal
	EntryType projection.EntryType
	Category  string
}

func (a *CreateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	amount := a.Amount
	if a.EntryType == projection.EntryTypeExpense {
		// Canonical form: magnitude plus type, regardless of how the
		// caller signed the amount.
		amount = amount.Abs()
	}

	_, err := writer.Entries.Insert(ctx, &ledger.EntryCreate{
		UserID:     a.UserID,
		EntryDate:  a.EntryDate,
		Amount:     amount,
		EntryType:  string(a.EntryType),
		Category:   a.Category,
		SourceType: string(projection.SourceManual),
		Status:     string(projection.StatusConfirmed),
	})
	return err
}

func (a *CreateEntry) InvalidationPattern() string {
	return a.UserID.String()
}
