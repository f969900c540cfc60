package tax

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "tax_obligations"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListPending returns the user's unsettled obligations due inside
// [from, to], oldest due date first.
func (r *Reader) ListPending(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Obligation, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "description", "amount", "due_date", "settled", "created_at"),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("settled").EQ(psql.Arg(false))),
		sm.Where(psql.Quote("due_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("due_date").LTE(psql.Arg(to))),
		sm.OrderBy("due_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, query, scan.StructMapper[*Obligation]())
}
