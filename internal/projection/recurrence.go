package projection

import "time"

// Frequency is the unit a recurrence pattern steps by.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// RecurrencePattern describes how a template entry repeats.
// A nil EndDate means the recurrence is unbounded; expansion is always
// capped by the query window.
type RecurrencePattern struct {
	Frequency Frequency
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
}

// Expand returns the ordered occurrence dates of the pattern inside
// [windowStart, windowEnd], at day resolution in UTC.
//
// The first occurrence is max(StartDate, windowStart) and its
// day-of-month anchors all subsequent monthly and yearly steps, so
// Jan 31 steps to Feb 28 and then Mar 31 rather than drifting.
//
// A malformed pattern (unknown frequency, interval < 1) expands to
// nothing instead of failing, so one bad template cannot abort a whole
// projection.
func (p RecurrencePattern) Expand(windowStart, windowEnd time.Time) []time.Time {
	if p.Interval < 1 {
		return nil
	}

	var months, days int
	switch p.Frequency {
	case FrequencyDaily:
		days = p.Interval
	case FrequencyWeekly:
		days = 7 * p.Interval
	case FrequencyMonthly:
		months = p.Interval
	case FrequencyQuarterly:
		months = 3 * p.Interval
	case FrequencyYearly:
		months = 12 * p.Interval
	default:
		return nil
	}

	first := dateOnly(p.StartDate)
	if ws := dateOnly(windowStart); first.Before(ws) {
		first = ws
	}

	upper := dateOnly(windowEnd)
	if p.EndDate != nil {
		if end := dateOnly(*p.EndDate); end.Before(upper) {
			upper = end
		}
	}
	if first.After(upper) {
		return nil
	}

	var occurrences []time.Time
	for k := 0; ; k++ {
		var occ time.Time
		if months > 0 {
			// Computed from the anchor each step so a short-month clamp
			// does not stick for later months.
			occ = addMonths(first, k*months)
		} else {
			occ = first.AddDate(0, 0, k*days)
		}
		if occ.After(upper) {
			break
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences
}

// addMonths advances t by the given number of months, preserving the
// day-of-month and clamping to the last valid day of shorter months.
func addMonths(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month = month % 12

	lastDay := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}
