package invoice

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "invoices"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListUnpaid returns the user's unpaid invoices with a due date inside
// [from, to], oldest due date first.
func (r *Reader) ListUnpaid(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Invoice, error) {
	query := psql.Select(
		sm.Columns(
			"id", "user_id", "invoice_number", "client_name", "total_amount",
			"due_date", "payment_terms_days", "paid", "created_at",
		),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("paid").EQ(psql.Arg(false))),
		sm.Where(psql.Quote("due_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("due_date").LTE(psql.Arg(to))),
		sm.OrderBy("due_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, query, scan.StructMapper[*Invoice]())
}
