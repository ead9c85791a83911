package expense

import (
	"regexp"
	"time"

	"github.com/mbaumgart/perdiem/pkg/formatting"
)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// CheckTotal reports whether the sum of invoice amounts matches the summary
// total within the money tolerance.
func CheckTotal(invoices *InvoicesExtraction, summary *SummaryExtraction) bool {
	return formatting.AmountsMatch(invoices.Sum(), summary.Total)
}

// ComparePeriods compares the travel periods stated in the header and summary.
// Periods match only when both ranges parse and share the same start and end.
// TripDays is taken from the longer of the two ranges so a single unreadable
// period still yields a usable trip length.
func ComparePeriods(headerPeriod, summaryPeriod *string) PeriodComparison {
	hStart, hEnd := extractRange(headerPeriod)
	sStart, sEnd := extractRange(summaryPeriod)

	hDays := rangeDays(hStart, hEnd)
	sDays := rangeDays(sStart, sEnd)

	match := hStart != nil && sStart != nil &&
		hStart.Equal(*sStart) && hEnd.Equal(*sEnd)

	if hDays == nil && sDays == nil {
		return PeriodComparison{Match: false}
	}

	days := longer(hDays, sDays)
	return PeriodComparison{Match: match, TripDays: days}
}

// CalculateAllowance recomputes the expected allowance from the daily rate
// and trip length and checks it against the allowance stated in the summary.
// Missing inputs produce a failed check rather than an error.
func CalculateAllowance(cmp PeriodComparison, dailyRate *float64, summaryAllowance float64) AllowanceCheck {
	if cmp.TripDays == nil || dailyRate == nil {
		var days int
		if cmp.TripDays != nil {
			days = *cmp.TripDays
		}
		return AllowanceCheck{Days: days}
	}

	expected := *dailyRate * float64(*cmp.TripDays)
	return AllowanceCheck{
		Days:           *cmp.TripDays,
		Expected:       expected,
		MatchesSummary: formatting.AmountsMatch(expected, summaryAllowance),
	}
}

// extractRange pulls the first two ISO dates out of a free-form period string.
// Reversed ranges are swapped so the start always precedes the end.
func extractRange(period *string) (*time.Time, *time.Time) {
	if period == nil || *period == "" {
		return nil, nil
	}

	matches := datePattern.FindAllString(*period, 2)
	if len(matches) < 2 {
		return nil, nil
	}

	start, err := time.Parse(time.DateOnly, matches[0])
	if err != nil {
		return nil, nil
	}
	end, err := time.Parse(time.DateOnly, matches[1])
	if err != nil {
		return nil, nil
	}

	if end.Before(start) {
		start, end = end, start
	}

	return &start, &end
}

// rangeDays returns the inclusive day count of a date range.
func rangeDays(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	days := int(end.Sub(*start).Hours()/24) + 1
	return &days
}

func longer(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *b > *a {
		return b
	}
	return a
}
