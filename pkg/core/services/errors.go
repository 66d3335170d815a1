package services

import "errors"

var (
	// ErrRosterNotFound is returned when an operation targets a date with
	// no stored roster
	ErrRosterNotFound = errors.New("no roster exists for this date")

	// ErrRosterLocked is returned when a generate or replacement attempt
	// targets a VALIDATED roster. The stored roster is left untouched;
	// the operator must unlock it first.
	ErrRosterLocked = errors.New("roster is validated and locked against edits")

	// ErrIneligibleCandidate is returned when a replacement commit names a
	// person who no longer satisfies the slot's eligibility rules
	ErrIneligibleCandidate = errors.New("candidate is not eligible for this slot")

	// ErrUnknownPerson is returned when a replacement names a person id
	// absent from the personnel roster
	ErrUnknownPerson = errors.New("unknown person")
)
