package backend

import "errors"

// Sentinel errors for backend operations.
var (
	ErrTicketNotFound   = errors.New("travel ticket not found")
	ErrUnexpectedStatus = errors.New("unexpected backend response")
)
