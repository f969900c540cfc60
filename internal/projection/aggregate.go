package projection

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrBusinessStartRequired is returned when the business start month is
// absent. The aggregator never guesses a default business start.
var ErrBusinessStartRequired = errors.New("business start month is required")

// ErrInvalidWindow is returned when the query window end precedes its start.
var ErrInvalidWindow = errors.New("window end precedes window start")

// MonthlyBucket is the aggregated cash position for one calendar month.
type MonthlyBucket struct {
	Month          string // YYYY-MM
	OpeningBalance decimal.Decimal
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	NetFlow        decimal.Decimal
	ClosingBalance decimal.Decimal
	IsProjection   bool
}

// Aggregate merges confirmed and projected entries into one bucket per
// calendar month of [windowStart, windowEnd], applying the business
// start cutover and chaining a running balance.
//
// Entries dated in months before businessStartMonth never contribute to
// any sum or balance. Months before businessStartMonth still appear as
// all-zero buckets so the timeline stays continuous. The bucket for
// businessStartMonth opens at initialBalance when it is the first month
// of the balance chain; every later month opens at the previous month's
// closing balance. Months without entries carry the balance forward
// with zero flow.
//
// Aggregate is deterministic and never mutates its inputs, so repeated
// calls with identical arguments are safe to memoize.
func Aggregate(
	confirmed, projected []LedgerEntry,
	windowStart, windowEnd time.Time,
	businessStartMonth string,
	initialBalance decimal.Decimal,
) ([]MonthlyBucket, error) {
	if businessStartMonth == "" {
		return nil, ErrBusinessStartRequired
	}
	if _, err := time.Parse("2006-01", businessStartMonth); err != nil {
		return nil, fmt.Errorf("invalid business start month %q: %w", businessStartMonth, err)
	}

	ws, we := dateOnly(windowStart), dateOnly(windowEnd)
	if we.Before(ws) {
		return nil, ErrInvalidWindow
	}

	type monthGroup struct {
		income       decimal.Decimal
		expenses     decimal.Decimal
		isProjection bool
	}
	groups := make(map[string]*monthGroup)

	collect := func(entries []LedgerEntry) {
		for _, entry := range entries {
			date := dateOnly(entry.Date)
			if date.Before(ws) || date.After(we) {
				continue
			}
			key := monthKey(date)
			if key < businessStartMonth {
				continue
			}
			group := groups[key]
			if group == nil {
				group = &monthGroup{income: decimal.Zero, expenses: decimal.Zero}
				groups[key] = group
			}
			switch entry.Type {
			case EntryTypeIncome:
				group.income = group.income.Add(entry.Amount)
			case EntryTypeExpense:
				// Magnitude sum: a negatively stored expense must not
				// cancel against a positively stored one.
				group.expenses = group.expenses.Add(entry.Amount.Abs())
			}
			if entry.Status == StatusProjected {
				group.isProjection = true
			}
		}
	}
	collect(confirmed)
	collect(projected)

	var buckets []MonthlyBucket
	running := decimal.Zero
	chainStarted := false

	firstMonth := time.Date(ws.Year(), ws.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastKey := monthKey(we)

	for month := firstMonth; monthKey(month) <= lastKey; month = month.AddDate(0, 1, 0) {
		key := monthKey(month)

		if key < businessStartMonth {
			buckets = append(buckets, MonthlyBucket{
				Month:          key,
				OpeningBalance: decimal.Zero,
				TotalIncome:    decimal.Zero,
				TotalExpenses:  decimal.Zero,
				NetFlow:        decimal.Zero,
				ClosingBalance: decimal.Zero,
			})
			continue
		}

		var opening decimal.Decimal
		if !chainStarted {
			if key == businessStartMonth {
				opening = initialBalance
			} else {
				opening = decimal.Zero
			}
			chainStarted = true
		} else {
			opening = running
		}

		income, expenses := decimal.Zero, decimal.Zero
		isProjection := false
		if group, ok := groups[key]; ok {
			income = group.income
			expenses = group.expenses
			isProjection = group.isProjection
		}

		netFlow := income.Sub(expenses)
		closing := opening.Add(netFlow)
		running = closing

		buckets = append(buckets, MonthlyBucket{
			Month:          key,
			OpeningBalance: opening,
			TotalIncome:    income,
			TotalExpenses:  expenses,
			NetFlow:        netFlow,
			ClosingBalance: closing,
			IsProjection:   isProjection,
		})
	}

	return buckets, nil
}
