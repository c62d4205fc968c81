// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when an appointment is successfully
// booked through either flow. It contains enough information for
// downstream consumers to log, notify, or trigger analytics without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID       int64  `json:"booking_id"`
	Flow            string `json:"flow"` // "vaccine" or "doctor"
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	PatientName     string `json:"patient_name"`
	PatientPhone    string `json:"patient_phone"`
	Subject         string `json:"subject"` // vaccine name or doctor name
	CreatedAt       string `json:"created_at"`
}
