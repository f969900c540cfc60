package invoice

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Invoice represents an issued invoice record.
type Invoice struct {
	ID               uuid.UUID       `db:"id"`
	UserID           uuid.UUID       `db:"user_id"`
	InvoiceNumber    string          `db:"invoice_number"`
	ClientName       string          `db:"client_name"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	DueDate          time.Time       `db:"due_date"`
	PaymentTermsDays int             `db:"payment_terms_days"`
	Paid             bool            `db:"paid"`
	CreatedAt        time.Time       `db:"created_at"`
}

// IInvoiceTable defines the interface for invoice storage operations.
//
//go:generate mockery --name IInvoiceTable --output mock_IInvoiceTable.go
type IInvoiceTable interface {
	ListUnpaid(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Invoice, error)
}
