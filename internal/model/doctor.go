package model

// Doctor represents a practitioner offered by the clinic as stored in
// the `doctors` table. Listing endpoints project these rows directly;
// bookings reference a doctor by name, which mirrors how the booking
// ledger stores its subject column.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – practitioner's display name (booking subject).
//  Specialization – medical specialty shown in listings.
//  Phone          – clinic contact number.
//  ClinicLocation – address of the practice.
//  Description    – free-text profile blurb.
//  Rating         – average review score (nullable).
//  Fees           – consultation fee (nullable).
//  AvailableDays  – human readable availability, e.g. "Mon-Thu".
//  AvailableTimes – human readable hours, e.g. "9 AM - 2 PM".
//  Photo          – stored file name under the uploads directory.
type Doctor struct {
	ID             int64    // doctors.id
	Name           string   // doctors.name
	Specialization string   // doctors.specialization
	Phone          string   // doctors.phone
	ClinicLocation string   // doctors.clinic_location
	Description    string   // doctors.description
	Rating         *float64 // doctors.rating (nullable)
	Fees           *float64 // doctors.fees (nullable)
	AvailableDays  string   // doctors.available_days
	AvailableTimes string   // doctors.available_times
	Photo          *string  // doctors.photo (nullable)
}
