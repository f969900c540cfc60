package ledger

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "ledger_entries"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns entries matching the filter, oldest first.
func (r *Reader) List(ctx context.Context, filter *EntryFilter) ([]*Entry, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"id", "user_id", "entry_date", "amount", "entry_type",
			"category", "source_type", "source_id", "status", "created_at",
		),
		sm.From(table),
	}

	if filter != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))))
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("entry_date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("entry_date").LTE(psql.Arg(*filter.To))))
		}
		if filter.Status != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(*filter.Status))))
		}
	}

	queryMods = append(queryMods,
		sm.OrderBy("entry_date").Asc(),
		sm.OrderBy("id").Asc(),
	)

	query := psql.Select(queryMods...)
	return bob.All(ctx, r.exec, query, scan.StructMapper[*Entry]())
}
