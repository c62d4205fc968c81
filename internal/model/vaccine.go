package model

// Vaccine represents a vaccine offered by the clinic as stored in the
// `vaccines` table. Vaccine bookings reference a vaccine by name in
// the same way doctor bookings reference a doctor.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – vaccine name (booking subject).
//  Description   – free-text description.
//  AgeRange      – recommended age range, e.g. "12+".
//  RequiredDoses – number of doses in the full course.
type Vaccine struct {
	ID            int64  // vaccines.id
	Name          string // vaccines.name
	Description   string // vaccines.description
	AgeRange      string // vaccines.age_range
	RequiredDoses int    // vaccines.required_doses
}
