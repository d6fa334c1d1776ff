package entity

import "errors"

// ErrInvalidMonth reports a month parameter that does not match YYYY-MM with a
// month in 01-12. It is detected before any upstream call is made.
var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
