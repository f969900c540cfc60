package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nandervang/consultant-time-track-sub001/internal/cache"
	"github.com/nandervang/consultant-time-track-sub001/internal/config"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/invoice"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/ledger"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/tax"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage/template"
)

type mockEntryTable struct {
	mock.Mock
}

func (m *mockEntryTable) List(ctx context.Context, filter *ledger.EntryFilter) ([]*ledger.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *mockEntryTable) Insert(ctx context.Context, create *ledger.EntryCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockTemplateTable struct {
	mock.Mock
}

func (m *mockTemplateTable) ListActive(ctx context.Context, userID uuid.UUID) ([]*template.Template, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*template.Template), args.Error(1)
}

type mockInvoiceTable struct {
	mock.Mock
}

func (m *mockInvoiceTable) ListUnpaid(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*invoice.Invoice, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoice.Invoice), args.Error(1)
}

type mockTaxTable struct {
	mock.Mock
}

func (m *mockTaxTable) ListPending(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*tax.Obligation, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tax.Obligation), args.Error(1)
}

type testTables struct {
	entries   *mockEntryTable
	templates *mockTemplateTable
	invoices  *mockInvoiceTable
	taxes     *mockTaxTable
}

func newTestProjectionService(t *testing.T) (*ProjectionService, *testTables) {
	t.Helper()
	tables := &testTables{
		entries:   new(mockEntryTable),
		templates: new(mockTemplateTable),
		invoices:  new(mockInvoiceTable),
		taxes:     new(mockTaxTable),
	}
	store := &storage.Storage{
		Entries:   tables.entries,
		Templates: tables.templates,
		Invoices:  tables.invoices,
		Taxes:     tables.taxes,
	}
	cfg := &config.Config{
		BusinessStartMonth: "2025-09",
		InitialBalance:     decimal.RequireFromString("50000"),
	}
	svc := NewProjectionService(store, cache.New(time.Minute), cfg)
	return svc, tables
}

func (tables *testTables) expectEmptySources(userID uuid.UUID) {
	tables.entries.On("List", mock.Anything, mock.Anything).Return([]*ledger.Entry{}, nil)
	tables.templates.On("ListActive", mock.Anything, userID).Return([]*template.Template{}, nil)
	tables.invoices.On("ListUnpaid", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*invoice.Invoice{}, nil)
	tables.taxes.On("ListPending", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*tax.Obligation{}, nil)
}

func TestGetProjection_FullPipeline(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())
	windowStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	templateID := uuid.Must(uuid.NewV4())
	invoiceID := uuid.Must(uuid.NewV4())

	tables.entries.On("List", mock.Anything, mock.MatchedBy(func(f *ledger.EntryFilter) bool {
		return f.UserID == userID &&
			f.From != nil && f.From.Equal(windowStart) &&
			f.To != nil && f.To.Equal(windowEnd) &&
			f.Status != nil && *f.Status == "confirmed"
	})).Return([]*ledger.Entry{}, nil)
	tables.templates.On("ListActive", mock.Anything, userID).Return([]*template.Template{{
		ID:            templateID,
		UserID:        userID,
		Amount:        decimal.RequireFromString("5000"),
		EntryType:     "expense",
		Category:      "Office rent",
		SourceType:    "expense",
		Frequency:     "monthly",
		RecurInterval: 1,
		StartDate:     time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}}, nil)
	tables.invoices.On("ListUnpaid", mock.Anything, userID, windowStart, windowEnd).Return([]*invoice.Invoice{{
		ID:          invoiceID,
		UserID:      userID,
		TotalAmount: decimal.RequireFromString("20000"),
		DueDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
	}}, nil)
	tables.taxes.On("ListPending", mock.Anything, userID, windowStart, windowEnd).Return([]*tax.Obligation{}, nil)

	buckets, cached, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)

	assert.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, buckets, 3)
	assert.Equal(t, "2025-09", buckets[0].Month)
	assert.True(t, buckets[0].OpeningBalance.Equal(decimal.RequireFromString("50000")))
	assert.True(t, buckets[0].ClosingBalance.Equal(decimal.RequireFromString("45000")))
	assert.True(t, buckets[1].ClosingBalance.Equal(decimal.RequireFromString("60000")))
	assert.True(t, buckets[2].ClosingBalance.Equal(decimal.RequireFromString("55000")))
}

func TestGetProjection_SecondCallServedFromCache(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())
	windowStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	tables.expectEmptySources(userID)

	first, cached, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)

	tables.entries.AssertNumberOfCalls(t, "List", 1)
	tables.templates.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestGetProjection_InvalidationForcesRecompute(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())
	windowStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	tables.expectEmptySources(userID)

	_, _, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)

	removed := svc.InvalidateUser(userID)
	assert.Equal(t, 1, removed)

	_, cached, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)
	assert.False(t, cached)
	tables.entries.AssertNumberOfCalls(t, "List", 2)
}

func TestGetProjection_EntryFetchErrorPropagated(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())

	tables.entries.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	_, _, err := svc.GetProjection(context.Background(), userID,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch confirmed entries")
	tables.templates.AssertNotCalled(t, "ListActive")
}

func TestGetProjection_InvoiceFetchErrorPropagated(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())

	tables.entries.On("List", mock.Anything, mock.Anything).Return([]*ledger.Entry{}, nil)
	tables.templates.On("ListActive", mock.Anything, userID).Return([]*template.Template{}, nil)
	tables.invoices.On("ListUnpaid", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	_, _, err := svc.GetProjection(context.Background(), userID,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetch unpaid invoices")
}

func TestGetProjection_FetchErrorNotCached(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())
	windowStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	tables.entries.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable")).Once()

	_, _, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.Error(t, err)

	tables.entries.On("List", mock.Anything, mock.Anything).Return([]*ledger.Entry{}, nil)
	tables.templates.On("ListActive", mock.Anything, userID).Return([]*template.Template{}, nil)
	tables.invoices.On("ListUnpaid", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*invoice.Invoice{}, nil)
	tables.taxes.On("ListPending", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*tax.Obligation{}, nil)

	_, cached, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)
	assert.False(t, cached, "failed attempt must not poison the cache")
}

func TestGetProjection_PendingEntriesDoNotFlagProjection(t *testing.T) {
	svc, tables := newTestProjectionService(t)
	userID := uuid.Must(uuid.NewV4())
	windowStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	tables.entries.On("List", mock.Anything, mock.Anything).Return([]*ledger.Entry{{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    userID,
		EntryDate: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("1000"),
		EntryType: "income",
		Status:    "confirmed",
	}}, nil)
	tables.templates.On("ListActive", mock.Anything, userID).Return([]*template.Template{}, nil)
	tables.invoices.On("ListUnpaid", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*invoice.Invoice{}, nil)
	tables.taxes.On("ListPending", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*tax.Obligation{}, nil)

	buckets, _, err := svc.GetProjection(context.Background(), userID, windowStart, windowEnd)
	assert.NoError(t, err)
	assert.Len(t, buckets, 1)
	assert.False(t, buckets[0].IsProjection)
	assert.True(t, buckets[0].TotalIncome.Equal(decimal.RequireFromString("1000")))
}
