// Package expense defines the data model for travel expense audits and the
// deterministic checks applied to extracted report data.
package expense

// HeaderExtraction holds the fields read from the report header block.
// Nil values indicate the model could not locate the field.
type HeaderExtraction struct {
	Destination *string `json:"destination"`
	TimePeriod  *string `json:"time_period_header"`
	TicketID    *string `json:"ticket_id"`
}

// Invoice is a single line item from the invoices section.
type Invoice struct {
	Amount float64 `json:"amount"`
	Date   *string `json:"date"`
}

// InvoicesExtraction holds the line items read from the invoices section.
type InvoicesExtraction struct {
	Invoices []Invoice `json:"invoices"`
}

// Sum returns the total of all invoice amounts.
func (e *InvoicesExtraction) Sum() float64 {
	var sum float64
	for _, inv := range e.Invoices {
		sum += inv.Amount
	}
	return sum
}

// SummaryExtraction holds the totals read from the summary section.
// Missing numeric values are extracted as zero.
type SummaryExtraction struct {
	Total               float64 `json:"total"`
	Allowance           float64 `json:"allowance"`
	TransportationTotal float64 `json:"transportation_total"`
	AccommodationTotal  float64 `json:"accommodation_total"`
	TimePeriod          *string `json:"time_period_summary"`
}

// RateSelection is the daily allowance rate matched to the travel destination.
type RateSelection struct {
	MatchedCity *string  `json:"matched_city"`
	DailyRate   *float64 `json:"daily_rate"`
}

// PeriodComparison is the result of comparing the header and summary travel
// periods. TripDays is the inclusive day count of the longer period, nil when
// neither period yields a usable date range.
type PeriodComparison struct {
	Match    bool `json:"periods_match"`
	TripDays *int `json:"trip_days"`
}

// AllowanceCheck is the result of recomputing the expected allowance from the
// daily rate and trip length.
type AllowanceCheck struct {
	Days           int     `json:"days"`
	Expected       float64 `json:"expected_allowance"`
	MatchesSummary bool    `json:"matches_summary"`
}

// Decision is the final approval outcome for an expense report.
type Decision struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// Findings aggregates the boolean check results the approval decision is based on.
type Findings struct {
	TicketFound  bool `json:"ticket_found"`
	TotalOK      bool `json:"total_ok"`
	PeriodsMatch bool `json:"periods_match"`
	AllowanceOK  bool `json:"allowance_ok"`
}

// Approvable reports whether every check passed. A report is only ever
// approved when all findings hold.
func (f Findings) Approvable() bool {
	return f.TicketFound && f.TotalOK && f.PeriodsMatch && f.AllowanceOK
}
