package database

import "errors"

// ErrNotReady indicates the connection pool has not been established yet.
var ErrNotReady = errors.New("database not ready")
