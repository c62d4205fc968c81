package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/minamaher/clinic-booking/internal/model"
)

// DoctorBookingRepo persists consultation appointments with named
// providers. Unlike the vaccination ledger, past consultation rows
// are swept by PurgeStale so the active schedule only reflects
// upcoming appointments.
type DoctorBookingRepo struct{ DB *sql.DB }

func NewDoctorBookingRepo(db *sql.DB) *DoctorBookingRepo { return &DoctorBookingRepo{DB: db} }

const doctorBookingColumns = `b.id,b.patient_id,b.doctor_name,
	DATE_FORMAT(b.appointment_date,'%Y-%m-%d'),
	TIME_FORMAT(b.appointment_time,'%H:%i:%s'),
	b.patient_name,b.patient_phone,p.email,b.patient_gender,
	DATE_FORMAT(b.birth_date,'%Y-%m-%d'),
	b.created_at`

func scanDoctorBooking(row interface{ Scan(...any) error }) (model.DoctorBooking, error) {
	var b model.DoctorBooking
	err := row.Scan(&b.ID, &b.PatientID, &b.DoctorName, &b.AppointmentDate,
		&b.AppointmentTime, &b.PatientName, &b.PatientPhone, &b.PatientEmail,
		&b.PatientGender, &b.BirthDate, &b.CreatedAt)
	return b, err
}

// Insert stores a booking and returns its ID.
func (r *DoctorBookingRepo) Insert(ctx context.Context, b model.DoctorBooking) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO doctor_bookings
			(patient_id, doctor_name, appointment_date, appointment_time,
			 patient_name, patient_phone, patient_gender, birth_date)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.PatientID, b.DoctorName, b.AppointmentDate, b.AppointmentTime,
		b.PatientName, b.PatientPhone, b.PatientGender, b.BirthDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns every booking, soonest appointment first.
func (r *DoctorBookingRepo) List(ctx context.Context) ([]model.DoctorBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+doctorBookingColumns+` FROM doctor_bookings b
		 JOIN patients p ON p.id = b.patient_id
		 ORDER BY b.appointment_date ASC, b.appointment_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDoctorBookings(rows)
}

// ListByEmail returns a patient's bookings looked up by account email.
func (r *DoctorBookingRepo) ListByEmail(ctx context.Context, email string) ([]model.DoctorBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+doctorBookingColumns+` FROM doctor_bookings b
		 JOIN patients p ON p.id = b.patient_id
		 WHERE p.email=?
		 ORDER BY b.appointment_date ASC, b.appointment_time ASC`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDoctorBookings(rows)
}

func collectDoctorBookings(rows *sql.Rows) ([]model.DoctorBooking, error) {
	out := []model.DoctorBooking{}
	for rows.Next() {
		b, err := scanDoctorBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a booking by id.
func (r *DoctorBookingRepo) GetByID(ctx context.Context, id int64) (model.DoctorBooking, error) {
	b, err := scanDoctorBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+doctorBookingColumns+` FROM doctor_bookings b
		 JOIN patients p ON p.id = b.patient_id
		 WHERE b.id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.DoctorBooking{}, ErrBookingNotFound
	}
	return b, err
}

// HasPatientWithDoctor reports whether the patient already holds any
// upcoming booking with the given provider.
func (r *DoctorBookingRepo) HasPatientWithDoctor(ctx context.Context, patientID int64, doctorName string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM doctor_bookings WHERE patient_id=? AND doctor_name=? AND id<>?",
		patientID, doctorName, excludeID).Scan(&n)
	return n > 0, err
}

// HasPatientAtSlot reports whether the patient holds a booking at the
// exact date+time with any provider.
func (r *DoctorBookingRepo) HasPatientAtSlot(ctx context.Context, patientID int64, date, clock string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM doctor_bookings WHERE patient_id=? AND appointment_date=? AND appointment_time=? AND id<>?",
		patientID, date, clock, excludeID).Scan(&n)
	return n > 0, err
}

// TimesNearForDoctor returns the provider's booked times on the given
// date that fall strictly within the proximity window around clock,
// latest first. The caller derives a suggested alternative from the
// first element.
func (r *DoctorBookingRepo) TimesNearForDoctor(ctx context.Context, doctorName, date, clock string, proximityMinutes int, excludeID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT TIME_FORMAT(appointment_time,'%H:%i:%s')
		 FROM doctor_bookings
		 WHERE doctor_name=? AND appointment_date=?
		   AND ABS(TIME_TO_SEC(appointment_time) - TIME_TO_SEC(?)) < ?
		   AND id<>?
		 ORDER BY appointment_time DESC`,
		doctorName, date, clock, proximityMinutes*60, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// PurgeStale deletes consultation rows whose appointment moment is
// already in the past. now must be expressed in the clinic's zone so
// the comparison matches the stored wall-clock values.
func (r *DoctorBookingRepo) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM doctor_bookings
		 WHERE appointment_date < ?
		    OR (appointment_date = ? AND appointment_time < ?)`,
		now.Format("2006-01-02"), now.Format("2006-01-02"), now.Format("15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Update applies a partial patch to a booking. Existence is checked
// with GetByID by the caller.
func (r *DoctorBookingRepo) Update(ctx context.Context, id int64, p model.DoctorBookingPatch) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if p.AppointmentDate != nil {
		add("appointment_date", *p.AppointmentDate)
	}
	if p.AppointmentTime != nil {
		add("appointment_time", *p.AppointmentTime)
	}
	if p.DoctorName != nil {
		add("doctor_name", *p.DoctorName)
	}
	if p.PatientPhone != nil {
		add("patient_phone", *p.PatientPhone)
	}
	if p.PatientGender != nil {
		add("patient_gender", *p.PatientGender)
	}
	if p.BirthDate != nil {
		add("birth_date", *p.BirthDate)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE doctor_bookings SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a booking by id.
func (r *DoctorBookingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM doctor_bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
