package model

import "errors"

// Validation errors. Callers match them with errors.Is.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidPlatform  = errors.New("unknown platform")
	ErrInvalidTripCount = errors.New("trip count must not be negative")
	ErrRewardWithTrips  = errors.New("a reward cannot carry a trip count")
	ErrInvalidCategory  = errors.New("unknown expense category")
	ErrIncompleteFuel   = errors.New("fuel details are incomplete")
	ErrInvalidFuelType  = errors.New("unknown fuel type")
	ErrUnexpectedFuel   = errors.New("fuel details are only allowed on fuel expenses")
	ErrIncompleteShift  = errors.New("shift needs a date, a start and an end")
)
