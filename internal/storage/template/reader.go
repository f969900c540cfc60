package template

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "recurring_templates"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListActive returns the user's active recurring templates.
func (r *Reader) ListActive(ctx context.Context, userID uuid.UUID) ([]*Template, error) {
	query := psql.Select(
		sm.Columns(
			"id", "user_id", "amount", "entry_type", "category", "source_type",
			"frequency", "recur_interval", "start_date", "end_date", "active", "created_at",
		),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("active").EQ(psql.Arg(true))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, query, scan.StructMapper[*Template]())
}
