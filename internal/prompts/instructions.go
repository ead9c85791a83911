package prompts

const headerInstructions = `You are reading the HEADER section of a travel expense report.

Extract exactly these fields:
- destination: the travel destination, address, or company visited.
- ticket_id: the ticket or booking ID.
- time_period_header: the date or date range stated in the header, verbatim.

Use null for any field that is not present. Copy values exactly as they
appear in the text; do not reformat dates or addresses.

Example header:
"2024-03-12   Maria Henderson (Employee 7721) Department: 445200 Destination: Microsoft HQ, One Microsoft Way, Redmond, WA Time Period: 2024-03-01 – 2024-03-05 Ticket ID: 992211"

Expected extraction:
destination = "Microsoft HQ, One Microsoft Way, Redmond, WA"
time_period_header = "2024-03-01 – 2024-03-05"
ticket_id = "992211"`

const invoicesInstructions = `You are reading the INVOICES section of a travel expense report and
extracting a list of line items.

For each entry:
- date: the first date (YYYY-MM-DD) appearing before the amount, or a date
  range when the entry spans multiple days. Null when no date is present.
- amount: the monetary amount (000.00) belonging to that entry.
- Every amount in the text produces exactly one entry.

Example input:
"Invoices Date Type Details Amount (USD) 2024-05-02 Transport Taxi 42.50 2024-05-03 Other Lunch 18.20 2024-05-05 – 2024-05-07 Accommodation Hotel 420.00 2024-05-08 Transport Train 67.00"

Expected entries:
(2024-05-02, 42.50), (2024-05-03, 18.20),
(2024-05-05 – 2024-05-07, 420.00), (2024-05-08, 67.00)`

const summaryInstructions = `You are reading the SUMMARY section of a travel expense report.

Extract:
- allowance: the value after the word "Allowance".
- transportation_total: the value after "Transportation".
- accommodation_total: the value after "Accommodation".
- time_period_summary: the text fragment containing "Time Period" and the
  date range, verbatim.
- total: the value after "TOTAL".

Rules:
- Amounts like "1,121.00 USD" become 1121.00.
- When a value is missing: numbers are 0.0, strings are null.

Example summary:
"Summary Time Period 2024-04-01 – 2024-04-03 Allowances 15.00 USD Transportation Details 300.00 USD Accommodation 450.00 USD TOTAL 765.00 USD"

Expected extraction:
allowance = 15.00, transportation_total = 300.00,
accommodation_total = 450.00,
time_period_summary = "2024-04-01 – 2024-04-03", total = 765.00`

const rateInstructions = `You are matching a travel destination to a table of city daily allowance rates.

You receive a destination string and a JSON mapping of city names to daily
rates. Find the city in the mapping that best matches the destination. The
destination may contain a full address, a company name, or a district; match
on the city it belongs to. Use null for matched_city and 0.0 for daily_rate
when no city in the mapping plausibly matches.`

const decisionInstructions = `You are a travel expense clerk deciding whether an expense report is
approved or rejected, and writing a short comment explaining the decision.

You receive the results of four checks:
- whether the invoice amounts add up to the stated total
- whether the referenced ticket exists in the backend system
- whether the allowance was computed correctly
- whether the travel periods in the header and summary agree

Rules:
- If ANY check failed, the report is rejected.
- Only when ALL checks passed is the report approved.
- The comment is at most two short sentences with a clear justification
  naming the failed checks, if any.`

var instructions = map[Stage]string{
	StageHeader:   headerInstructions,
	StageInvoices: invoicesInstructions,
	StageSummary:  summaryInstructions,
	StageRate:     rateInstructions,
	StageDecision: decisionInstructions,
}

// DefaultInstructions returns the hardcoded default instructions for a workflow stage.
// Returns ErrInvalidStage if the stage is not recognized.
func DefaultInstructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
