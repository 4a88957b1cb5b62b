package service

import "errors"

// Validation failures. Surfaced to the caller immediately; nothing is
// written when one fires.
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrInvalidPoints    = errors.New("points must be at least 1")
	ErrUnknownLabel     = errors.New("correct answer references a label not among the options")
	ErrNoOptions        = errors.New("question must offer at least one option")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")

	// ErrEditLimitReached rejects a whole submission round once the
	// participant has spent all edit rounds. Terminal: no side effects.
	ErrEditLimitReached = errors.New("submission limit reached")

	// ErrNoExportData rejects an export that would render an empty
	// document.
	ErrNoExportData = errors.New("no data available to export")
)

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	for _, v := range []error{ErrEmailTaken, ErrPasswordMismatch, ErrInvalidPoints, ErrUnknownLabel, ErrNoOptions} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
