package workflow

import "errors"

// Workflow node errors. Each node wraps its failures in the matching
// sentinel so callers can tell which stage of the audit broke.
var (
	ErrExtractFailed = errors.New("report text extraction failed")
	ErrAnalyzeFailed = errors.New("report analysis failed")
	ErrLookupFailed  = errors.New("backend lookup failed")
	ErrRateFailed    = errors.New("rate selection failed")
	ErrDecideFailed  = errors.New("approval decision failed")
	ErrUpdateFailed  = errors.New("ticket update failed")
)
