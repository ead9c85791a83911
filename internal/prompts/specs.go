package prompts

const headerSpec = `Respond with a JSON object matching this exact structure:

{
  "destination": "string or null",
  "time_period_header": "string or null",
  "ticket_id": "string or null"
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Copy field values verbatim from the header text
- Use null for fields that cannot be located`

const invoicesSpec = `Respond with a JSON object matching this exact structure:

{
  "invoices": [
    {
      "date": "string or null",
      "amount": 0.00
    }
  ]
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- One array entry per amount found in the text
- Amounts are plain numbers without currency symbols or separators
- An empty invoices section produces an empty array`

const summarySpec = `Respond with a JSON object matching this exact structure:

{
  "allowance": 0.00,
  "transportation_total": 0.00,
  "accommodation_total": 0.00,
  "time_period_summary": "string or null",
  "total": 0.00
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Amounts are plain numbers: "1,121.00 USD" becomes 1121.00
- Missing numeric values are 0.0, missing strings are null`

const rateSpec = `Respond with a JSON object matching this exact structure:

{
  "matched_city": "string or null",
  "daily_rate": 0.0
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- matched_city must be a key from the provided allowances mapping
- daily_rate must be the rate listed for the matched city
- When no city matches, matched_city is null and daily_rate is 0.0`

const decisionSpec = `Respond with a JSON object matching this exact structure:

{
  "approve": false,
  "comment": "string"
}

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- approve is true only when every check in the prompt passed
- comment is at most two short sentences naming the decisive checks`

var specs = map[Stage]string{
	StageHeader:   headerSpec,
	StageInvoices: invoicesSpec,
	StageSummary:  summarySpec,
	StageRate:     rateSpec,
	StageDecision: decisionSpec,
}

// DefaultSpec returns the hardcoded specification for a workflow stage.
// Specifications define the expected output format and behavioral constraints,
// and cannot be overridden from the database.
func DefaultSpec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
