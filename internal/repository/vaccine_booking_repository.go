package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/minamaher/clinic-booking/internal/model"
)

// VaccineBookingRepo persists walk-in vaccination appointments. Rows
// are kept indefinitely; the vaccination ledger doubles as the
// patient's dose history, so stale rows are never purged.
type VaccineBookingRepo struct{ DB *sql.DB }

func NewVaccineBookingRepo(db *sql.DB) *VaccineBookingRepo { return &VaccineBookingRepo{DB: db} }

// Dates and times are formatted in SQL so the rest of the code only
// ever sees canonical 'YYYY-MM-DD' and 'HH:MM:SS' strings.
const vaccineBookingColumns = `id,
	DATE_FORMAT(appointment_date,'%Y-%m-%d'),
	TIME_FORMAT(appointment_time,'%H:%i:%s'),
	vaccine_name,patient_name,patient_phone,national_id,
	DATE_FORMAT(birth_date,'%Y-%m-%d'),
	gender,service,distance,location_detail,created_at`

func scanVaccineBooking(row interface{ Scan(...any) error }) (model.VaccineBooking, error) {
	var b model.VaccineBooking
	err := row.Scan(&b.ID, &b.AppointmentDate, &b.AppointmentTime, &b.VaccineName,
		&b.PatientName, &b.PatientPhone, &b.NationalID, &b.BirthDate,
		&b.Gender, &b.Service, &b.Distance, &b.LocationDetail, &b.CreatedAt)
	return b, err
}

// Insert stores a booking and returns its ID.
func (r *VaccineBookingRepo) Insert(ctx context.Context, b model.VaccineBooking) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO vaccine_bookings
			(appointment_date, appointment_time, vaccine_name, patient_name,
			 patient_phone, national_id, birth_date, gender, service, distance, location_detail)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.AppointmentDate, b.AppointmentTime, b.VaccineName, b.PatientName,
		b.PatientPhone, b.NationalID, b.BirthDate, b.Gender, b.Service,
		b.Distance, b.LocationDetail)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns every booking, newest appointment first.
func (r *VaccineBookingRepo) List(ctx context.Context) ([]model.VaccineBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vaccineBookingColumns+" FROM vaccine_bookings ORDER BY appointment_date DESC, appointment_time DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVaccineBookings(rows)
}

// ListByNationalID returns all bookings recorded for one national ID,
// oldest first, which reads as the patient's dose history.
func (r *VaccineBookingRepo) ListByNationalID(ctx context.Context, nationalID string) ([]model.VaccineBooking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vaccineBookingColumns+" FROM vaccine_bookings WHERE national_id=? ORDER BY appointment_date ASC, appointment_time ASC",
		strings.TrimSpace(nationalID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVaccineBookings(rows)
}

func collectVaccineBookings(rows *sql.Rows) ([]model.VaccineBooking, error) {
	out := []model.VaccineBooking{}
	for rows.Next() {
		b, err := scanVaccineBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a booking by id.
func (r *VaccineBookingRepo) GetByID(ctx context.Context, id int64) (model.VaccineBooking, error) {
	b, err := scanVaccineBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+vaccineBookingColumns+" FROM vaccine_bookings WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.VaccineBooking{}, ErrBookingNotFound
	}
	return b, err
}

// CountSlotVaccine counts bookings of one vaccine at an exact
// date+time slot. excludeID skips the row being updated; pass 0 on
// create, where no row can match it.
func (r *VaccineBookingRepo) CountSlotVaccine(ctx context.Context, date, clock, vaccine string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vaccine_bookings WHERE appointment_date=? AND appointment_time=? AND vaccine_name=? AND id<>?",
		date, clock, vaccine, excludeID).Scan(&n)
	return n, err
}

// CountByHour counts bookings across a whole hour of one day.
func (r *VaccineBookingRepo) CountByHour(ctx context.Context, date string, hour int, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vaccine_bookings WHERE appointment_date=? AND HOUR(appointment_time)=? AND id<>?",
		date, hour, excludeID).Scan(&n)
	return n, err
}

// CountBySlot counts bookings at an exact date+time slot regardless
// of vaccine.
func (r *VaccineBookingRepo) CountBySlot(ctx context.Context, date, clock string, excludeID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vaccine_bookings WHERE appointment_date=? AND appointment_time=? AND id<>?",
		date, clock, excludeID).Scan(&n)
	return n, err
}

// Update applies a partial patch to a booking. Only set fields are
// written; the column list is fixed and values are always bound.
func (r *VaccineBookingRepo) Update(ctx context.Context, id int64, p model.VaccineBookingPatch) error {
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
	if p.VaccineName != nil {
		add("vaccine_name", *p.VaccineName)
	}
	if p.PatientName != nil {
		add("patient_name", *p.PatientName)
	}
	if p.PatientPhone != nil {
		add("patient_phone", *p.PatientPhone)
	}
	if p.NationalID != nil {
		add("national_id", *p.NationalID)
	}
	if p.BirthDate != nil {
		add("birth_date", *p.BirthDate)
	}
	if p.Gender != nil {
		add("gender", *p.Gender)
	}
	if p.Service != nil {
		add("service", *p.Service)
	}
	if p.Distance != nil {
		add("distance", *p.Distance)
	}
	if p.LocationDetail != nil {
		add("location_detail", *p.LocationDetail)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	// MySQL reports zero affected rows for a no-op write, so existence
	// is checked with GetByID by the caller rather than here.
	_, err := r.DB.ExecContext(ctx,
		"UPDATE vaccine_bookings SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a booking by id.
func (r *VaccineBookingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vaccine_bookings WHERE id=?", id)
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
