package domain

import "errors"

// Error kinds surfaced by every package in the module. Callers wrap them
// with context and test with errors.Is.
var (
	// ErrInvalidInput covers negative amounts, non-positive horizons and
	// malformed vesting schedules.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownJurisdiction is returned for a state code without tax tables.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	// ErrInvalidGrant is returned when vesting fractions add up to more than
	// the whole grant, or a grant cannot be placed on the timeline.
	ErrInvalidGrant = errors.New("invalid grant")
	// ErrUsage marks command line problems: unknown flags, bad values.
	ErrUsage = errors.New("usage error")
)
