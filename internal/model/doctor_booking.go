package model

import "time"

// DoctorBooking records a consultation appointment as stored in the
// `doctor_bookings` table. Unlike vaccine bookings, the patient is a
// registered account resolved by email at creation time and linked
// through PatientID. Date and time use the same canonical string
// representation as VaccineBooking.
//
// Fields:
//  ID              – primary key, assigned on insert.
//  PatientID       – foreign key into the patients table.
//  DoctorName      – booked practitioner (the slot subject).
//  AppointmentDate – calendar date of the appointment (YYYY-MM-DD).
//  AppointmentTime – canonical time of day (HH:MM:SS).
//  PatientName     – patient name as submitted with the booking.
//  PatientPhone    – contact number.
//  PatientEmail    – email the patient was resolved from.
//  PatientGender   – patient's gender as submitted.
//  BirthDate       – patient's date of birth (YYYY-MM-DD).
//  CreatedAt       – server timestamp, set once at insert.
type DoctorBooking struct {
	ID              int64     // doctor_bookings.id
	PatientID       int64     // doctor_bookings.patient_id
	DoctorName      string    // doctor_bookings.doctor_name
	AppointmentDate string    // doctor_bookings.appointment_date
	AppointmentTime string    // doctor_bookings.appointment_time
	PatientName     string    // doctor_bookings.patient_name
	PatientPhone    string    // doctor_bookings.patient_phone
	PatientEmail    string    // doctor_bookings.patient_email
	PatientGender   string    // doctor_bookings.patient_gender
	BirthDate       string    // doctor_bookings.birth_date
	CreatedAt       time.Time // doctor_bookings.created_at
}

// DoctorBookingPatch is a typed partial update for a doctor booking.
// Presence is explicit via pointers, matching VaccineBookingPatch.
type DoctorBookingPatch struct {
	AppointmentDate *string
	AppointmentTime *string // canonical HH:MM:SS
	DoctorName      *string
	PatientPhone    *string
	PatientGender   *string
	BirthDate       *string
}

// Empty reports whether the patch carries no fields at all.
func (p DoctorBookingPatch) Empty() bool {
	return p.AppointmentDate == nil && p.AppointmentTime == nil && p.DoctorName == nil &&
		p.PatientPhone == nil && p.PatientGender == nil && p.BirthDate == nil
}
