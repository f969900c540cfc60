package tax

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Obligation represents a pending tax obligation record. Amounts and
// due dates arrive precomputed by the tax layer; this table is
// read-only for the projection engine.
type Obligation struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     time.Time       `db:"due_date"`
	Settled     bool            `db:"settled"`
	CreatedAt   time.Time       `db:"created_at"`
}

// IObligationTable defines the interface for tax obligation storage operations.
//
//go:generate mockery --name IObligationTable --output mock_IObligationTable.go
type IObligationTable interface {
	ListPending(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Obligation, error)
}
