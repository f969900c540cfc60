package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTemplate is a template entry with an attached recurrence
// pattern, supplied by an external collaborator.
type RecurringTemplate struct {
	ID       string
	Amount   decimal.Decimal
	Type     EntryType
	Category string
	Source   SourceType
	Pattern  RecurrencePattern
}

// UnpaidInvoice is an issued, not-yet-paid invoice. The invoice total
// and due date arrive precomputed; payment terms shift the estimated
// payment date forward from the due date.
type UnpaidInvoice struct {
	ID               string
	InvoiceNumber    string
	ClientName       string
	TotalAmount      decimal.Decimal
	DueDate          time.Time
	PaymentTermsDays int
}

// TaxObligation is a pending tax payment with a known due date.
type TaxObligation struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

// Synthesize converts forecast sources into projected ledger entries
// for the given window. Synthetic ids are deterministic functions of
// the source and occurrence date, so re-synthesizing the same inputs
// yields identical entries and re-aggregation never double-counts.
//
// Expense amounts are normalized to positive magnitude here, at the
// boundary, so both storage sign conventions collapse into the
// canonical magnitude+type form the aggregator expects.
func Synthesize(
	templates []RecurringTemplate,
	invoices []UnpaidInvoice,
	taxes []TaxObligation,
	windowStart, windowEnd time.Time,
) []LedgerEntry {
	var entries []LedgerEntry

	for _, tmpl := range templates {
		amount := tmpl.Amount
		if tmpl.Type == EntryTypeExpense {
			amount = amount.Abs()
		}
		for _, occurrence := range tmpl.Pattern.Expand(windowStart, windowEnd) {
			entries = append(entries, LedgerEntry{
				ID:         fmt.Sprintf("projected-%s-%s", tmpl.ID, occurrence.Format("2006-01-02")),
				Date:       occurrence,
				Amount:     amount,
				Type:       tmpl.Type,
				Category:   tmpl.Category,
				SourceType: tmpl.Source,
				SourceID:   tmpl.ID,
				Status:     StatusProjected,
			})
		}
	}

	ws, we := dateOnly(windowStart), dateOnly(windowEnd)

	for _, inv := range invoices {
		due := dateOnly(inv.DueDate)
		if due.Before(ws) || due.After(we) {
			continue
		}
		estimatedPayment := due.AddDate(0, 0, inv.PaymentTermsDays)
		entries = append(entries, LedgerEntry{
			ID:         fmt.Sprintf("invoice-projection-%s", inv.ID),
			Date:       estimatedPayment,
			Amount:     inv.TotalAmount.Abs(),
			Type:       EntryTypeIncome,
			Category:   inv.ClientName,
			SourceType: SourceInvoice,
			SourceID:   inv.ID,
			Status:     StatusProjected,
		})
	}

	for _, tax := range taxes {
		due := dateOnly(tax.DueDate)
		if due.Before(ws) || due.After(we) {
			continue
		}
		entries = append(entries, LedgerEntry{
			ID:         fmt.Sprintf("tax-projection-%s", tax.ID),
			Date:       due,
			Amount:     tax.Amount.Abs(),
			Type:       EntryTypeExpense,
			Category:   tax.Description,
			SourceType: SourceTax,
			SourceID:   tax.ID,
			Status:     StatusProjected,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries
}
