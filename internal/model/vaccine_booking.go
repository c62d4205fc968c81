package model

import "time"

// VaccineBooking records a vaccination appointment as stored in the
// `vaccine_bookings` table. Dates travel as `YYYY-MM-DD` strings and
// times as canonical `HH:MM:SS` strings; both are produced by the
// schedule package before a row is ever written, so the ledger never
// sees an unnormalized value. Patients are identified inline by name
// and national ID rather than by a foreign key.
//
// Fields:
//  ID               – primary key, assigned on insert.
//  AppointmentDate  – calendar date of the appointment (YYYY-MM-DD).
//  AppointmentTime  – canonical time of day (HH:MM:SS).
//  VaccineName      – booked vaccine (the slot subject).
//  PatientName      – free-text patient name.
//  PatientPhone     – contact number.
//  NationalID       – national identity number used for lookups.
//  BirthDate        – patient's date of birth (YYYY-MM-DD).
//  Gender           – patient's gender as submitted.
//  Service          – service type, e.g. "clinic" or "home".
//  Distance         – distance in km for home service.
//  LocationDetail   – address details for home service.
//  CreatedAt        – server timestamp, set once at insert.
type VaccineBooking struct {
	ID              int64     // vaccine_bookings.id
	AppointmentDate string    // vaccine_bookings.appointment_date
	AppointmentTime string    // vaccine_bookings.appointment_time
	VaccineName     string    // vaccine_bookings.vaccine_name
	PatientName     string    // vaccine_bookings.patient_name
	PatientPhone    string    // vaccine_bookings.patient_phone
	NationalID      string    // vaccine_bookings.national_id
	BirthDate       string    // vaccine_bookings.birth_date
	Gender          string    // vaccine_bookings.gender
	Service         string    // vaccine_bookings.service
	Distance        float64   // vaccine_bookings.distance
	LocationDetail  string    // vaccine_bookings.location_detail
	CreatedAt       time.Time // vaccine_bookings.created_at
}

// VaccineBookingPatch is a typed partial update for a vaccine booking.
// Nil fields are absent from the UPDATE statement entirely; non-nil
// fields are bound as parameters. Field presence is explicit so the
// repository can build the statement deterministically instead of
// reflecting over a request map.
type VaccineBookingPatch struct {
	AppointmentDate *string
	AppointmentTime *string // canonical HH:MM:SS
	VaccineName     *string
	PatientName     *string
	PatientPhone    *string
	NationalID      *string
	BirthDate       *string
	Gender          *string
	Service         *string
	Distance        *float64
	LocationDetail  *string
}

// Empty reports whether the patch carries no fields at all.
func (p VaccineBookingPatch) Empty() bool {
	return p.AppointmentDate == nil && p.AppointmentTime == nil && p.VaccineName == nil &&
		p.PatientName == nil && p.PatientPhone == nil && p.NationalID == nil && p.BirthDate == nil &&
		p.Gender == nil && p.Service == nil && p.Distance == nil && p.LocationDetail == nil
}
