// Package service implements the booking rules of the clinic: request
// validation, schedule window checks, conflict detection and
// capacity-aware slot allocation. Handlers translate the errors
// defined here into HTTP responses; repositories stay free of any
// scheduling policy.
package service

import "errors"

// Conflict kinds reported to the client alongside a 409 response.
const (
	ConflictDuplicateSlot      = "duplicate_slot"
	ConflictPatientProviderDup = "patient_provider_duplicate"
	ConflictPatientTimeClash   = "patient_time_clash"
	ConflictProviderTooClose   = "provider_too_close"
	ConflictCapacity           = "capacity"
	ConflictCapacityExhausted  = "capacity_exhausted"
)

// ConflictError reports a booking attempt rejected by the conflict or
// capacity rules. SuggestedTime, when set, carries an alternative
// slot the client may retry with.
type ConflictError struct {
	Kind          string
	SuggestedTime string
}

func (e *ConflictError) Error() string {
	if e.SuggestedTime != "" {
		return "booking conflict: " + e.Kind + " (suggested " + e.SuggestedTime + ")"
	}
	return "booking conflict: " + e.Kind
}

// ErrMissingFields is returned when a request omits a required field.
var ErrMissingFields = errors.New("missing required fields")

// ErrNonEnglish is returned when a text field contains characters
// outside the accepted English character set.
var ErrNonEnglish = errors.New("text fields must be in English")

// ErrEmptyPatch is returned when an update carries no recognized fields.
var ErrEmptyPatch = errors.New("no fields to update")
