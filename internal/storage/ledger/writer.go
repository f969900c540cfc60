package ledger

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new ledger entry and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *EntryCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(table,
			"user_id", "entry_date", "amount", "entry_type",
			"category", "source_type", "source_id", "status",
		),
		im.Values(psql.Arg(
			create.UserID,
			create.EntryDate,
			create.Amount,
			create.EntryType,
			create.Category,
			create.SourceType,
			create.SourceID,
			create.Status,
		)),
		im.Returning("id"),
	)

	return bob.One(ctx, w.tx, query, scan.SingleColumnMapper[uuid.UUID])
}
