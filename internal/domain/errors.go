package domain

import "errors"

var (
	// ErrNoCountryData is returned when the reference dataset could not be
	// fetched and no cached list exists.
	ErrNoCountryData = errors.New("country data unavailable")
	// ErrInsufficientData is returned when the eligible pool is too small to
	// generate any question for the requested mode.
	ErrInsufficientData = errors.New("not enough countries to build a quiz")
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionComplete is returned when an answer arrives after the last
	// question has been answered.
	ErrSessionComplete = errors.New("quiz session already complete")
	// ErrUnknownMode indicates a requested quiz mode is not in the catalog.
	ErrUnknownMode = errors.New("unknown quiz mode")
)
