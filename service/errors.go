package service

import "errors"

// Configuration errors reported synchronously to the invoking administrator.
// None of them leaves any state mutated.
var (
	ErrUnknownTimezone     = errors.New("unknown time zone or alias")
	ErrDuplicateTimezone   = errors.New("time zone already configured")
	ErrTimezoneNotListed   = errors.New("time zone not in the configured list")
	ErrNoChannelConfigured = errors.New("no clock channel configured")
)
