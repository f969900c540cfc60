package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/nandervang/consultant-time-track-sub001/internal/storage/ledger"
)

// Writer groups the table writers participating in one transaction.
// Only confirmed ledger entries are ever written by this system;
// invoices, templates, and tax obligations belong to their own
// subsystems and are read-only here.
type Writer struct {
	tx      bob.Tx
	Entries *ledger.Writer
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:      tx,
		Entries: ledger.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
