// Package repository implements data access over the clinic's MySQL
// store. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios. For example,
// ErrEmailExists indicates that a registration collides with an
// existing patient account, while ErrBookingNotFound signals that an
// update or delete targets a booking row that does not exist.
package repository

import "errors"

// ErrEmailExists is returned when registering a patient whose email
// is already taken. Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")

// ErrPatientNotFound is returned when no patient matches the lookup
// email. The doctor booking flow reports it as an HTTP 404.
var ErrPatientNotFound = errors.New("patient not found")

// ErrBookingNotFound is returned by update and delete operations when
// no booking row matches the given identifier.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDoctorNotFound is returned when no doctor matches the requested
// identifier or name.
var ErrDoctorNotFound = errors.New("doctor not found")
