package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/nandervang/consultant-time-track-sub001/internal/config"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/invoice"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/ledger"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/tax"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/template"
)

// Storage bundles the source tables the projection engine reads.
// Fields are interface-typed so services can be tested against mocks.
type Storage struct {
	DB        *sql.DB
	bdb       bob.DB
	Entries   ledger.IEntryTable
	Templates template.ITemplateTable
	Invoices  invoice.IInvoiceTable
	Taxes     tax.IObligationTable
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logrus.WithError(err).Fatal("sql.Open")
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:        db,
		bdb:       bdb,
		Entries:   ledger.NewReader(bdb),
		Templates: template.NewReader(bdb),
		Invoices:  invoice.NewReader(bdb),
		Taxes:     tax.NewReader(bdb),
	}
}

// Write begins a transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
