package leaderboard

import "errors"

var (
	// ErrMissingColumn means the table schema lacks a column the caller asked for.
	// Upstream schema drift, not a user error.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidLimit is returned for a non-positive row limit
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrNotNumeric is returned when a numeric column holds a value that cannot be parsed
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrRowShape is returned when an upstream row does not match its header count
	ErrRowShape = errors.New("row does not match headers")
)
