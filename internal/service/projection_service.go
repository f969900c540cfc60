package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/nandervang/consultant-time-track-sub001/internal/cache"
	"github.com/nandervang/consultant-time-track-sub001/internal/config"
	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/invoice"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/ledger"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/tax"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/template"
)

// ProjectionService computes monthly cash-flow projections: it fetches
// the four source tables, synthesizes forecast entries, aggregates them
// into monthly buckets, and memoizes the result.
type ProjectionService struct {
	storage            *storage.Storage
	cache              *cache.Cache
	businessStartMonth string
	initialBalance     decimal.Decimal
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(store *storage.Storage, projectionCache *cache.Cache, cfg *config.Config) *ProjectionService {
	return &ProjectionService{
		storage:            store,
		cache:              projectionCache,
		businessStartMonth: cfg.BusinessStartMonth,
		initialBalance:     cfg.InitialBalance,
	}
}

// GetProjection returns the ordered monthly buckets for the user's
// window. The second return value reports whether the result was served
// from cache.
//
// A failed source fetch is propagated, never replaced with empty data:
// a projection computed from a partial ledger would be a silently wrong
// number.
func (s *ProjectionService) GetProjection(ctx context.Context, userID uuid.UUID, windowStart, windowEnd time.Time) ([]projection.MonthlyBucket, bool, error) {
	key := cache.Key(userID.String(), windowStart, windowEnd, s.businessStartMonth, s.initialBalance)
	if buckets, ok := s.cache.Get(key); ok {
		return buckets, true, nil
	}

	confirmedStatus := string(projection.StatusConfirmed)
	rows, err := s.storage.Entries.List(ctx, &ledger.EntryFilter{
		UserID: userID,
		From:   &windowStart,
		To:     &windowEnd,
		Status: &confirmedStatus,
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch confirmed entries: %w", err)
	}

	templates, err := s.storage.Templates.ListActive(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("fetch recurring templates: %w", err)
	}

	invoices, err := s.storage.Invoices.ListUnpaid(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, false, fmt.Errorf("fetch unpaid invoices: %w", err)
	}

	taxes, err := s.storage.Taxes.ListPending(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, false, fmt.Errorf("fetch tax obligations: %w", err)
	}

	synthesized := projection.Synthesize(
		templatesToEngine(templates),
		invoicesToEngine(invoices),
		taxesToEngine(taxes),
		windowStart, windowEnd,
	)

	buckets, err := projection.Aggregate(
		entriesToEngine(rows), synthesized,
		windowStart, windowEnd,
		s.businessStartMonth, s.initialBalance,
	)
	if err != nil {
		return nil, false, err
	}

	s.cache.Set(key, buckets, 0)
	return buckets, false, nil
}

// InvalidateUser drops every cached projection for the user.
func (s *ProjectionService) InvalidateUser(userID uuid.UUID) int {
	return s.cache.Invalidate(userID.String())
}

func entriesToEngine(rows []*ledger.Entry) []projection.LedgerEntry {
	entries := make([]projection.LedgerEntry, len(rows))
	for i, row := range rows {
		sourceID := ""
		if row.SourceID != nil {
			sourceID = row.SourceID.String()
		}
		entries[i] = projection.LedgerEntry{
			ID:         row.ID.String(),
			Date:       row.EntryDate,
			Amount:     row.Amount,
			Type:       projection.EntryType(row.EntryType),
			Category:   row.Category,
			SourceType: projection.SourceType(row.SourceType),
			SourceID:   sourceID,
			Status:     projection.EntryStatus(row.Status),
		}
	}
	return entries
}

func templatesToEngine(rows []*template.Template) []projection.RecurringTemplate {
	templates := make([]projection.RecurringTemplate, len(rows))
	for i, row := range rows {
		templates[i] = projection.RecurringTemplate{
			ID:       row.ID.String(),
			Amount:   row.Amount,
			Type:     projection.EntryType(row.EntryType),
			Category: row.Category,
			Source:   projection.SourceType(row.SourceType),
			Pattern: projection.RecurrencePattern{
				Frequency: projection.Frequency(row.Frequency),
				Interval:  row.RecurInterval,
				StartDate: row.StartDate,
				EndDate:   row.EndDate,
			},
		}
	}
	return templates
}

func invoicesToEngine(rows []*invoice.Invoice) []projection.UnpaidInvoice {
	invoices := make([]projection.UnpaidInvoice, len(rows))
	for i, row := range rows {
		invoices[i] = projection.UnpaidInvoice{
			ID:               row.ID.String(),
			InvoiceNumber:    row.InvoiceNumber,
			ClientName:       row.ClientName,
			TotalAmount:      row.TotalAmount,
			DueDate:          row.DueDate,
			PaymentTermsDays: row.PaymentTermsDays,
		}
	}
	return invoices
}

func taxesToEngine(rows []*tax.Obligation) []projection.TaxObligation {
	taxes := make([]projection.TaxObligation, len(rows))
	for i, row := range rows {
		taxes[i] = projection.TaxObligation{
			ID:          row.ID.String(),
			Description: row.Description,
			Amount:      row.Amount,
			DueDate:     row.DueDate,
		}
	}
	return taxes
}
