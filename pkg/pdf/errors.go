package pdf

import "errors"

// ErrExtractFailed is returned when text cannot be extracted from a PDF.
var ErrExtractFailed = errors.New("failed to extract pdf text")
