package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/minamaher/clinic-booking/internal/model"
)

// DoctorSearchQuery defines filters & pagination for browsing doctors.
type DoctorSearchQuery struct {
	Name           string
	Specialization string
	Page           int
	PageSize       int
}

// DoctorRepo provides read access to the 'doctors' catalog.
type DoctorRepo struct{ DB *sql.DB }

func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{DB: db} }

const doctorColumns = "id,name,specialization,phone,clinic_location,description,rating,fees,available_days,available_times,photo"

func scanDoctor(row interface{ Scan(...any) error }) (model.Doctor, error) {
	var d model.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.ClinicLocation,
		&d.Description, &d.Rating, &d.Fees, &d.AvailableDays, &d.AvailableTimes, &d.Photo)
	return d, err
}

// Search lists doctors matching the optional name/specialization
// filters, plus the total count for pagination.
func (r *DoctorRepo) Search(ctx context.Context, q DoctorSearchQuery) ([]model.Doctor, int64, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.Specialization != "" {
		where = append(where, "LOWER(specialization) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Specialization)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM doctors WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+doctorColumns+" FROM doctors WHERE "+cond+" ORDER BY name ASC LIMIT ? OFFSET ?",
		argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Doctor, 0, limit)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a doctor by id.
func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (model.Doctor, error) {
	d, err := scanDoctor(r.DB.QueryRowContext(ctx,
		"SELECT "+doctorColumns+" FROM doctors WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Doctor{}, ErrDoctorNotFound
	}
	return d, err
}

// GetByName fetches a doctor by exact name, case-insensitively.
func (r *DoctorRepo) GetByName(ctx context.Context, name string) (model.Doctor, error) {
	d, err := scanDoctor(r.DB.QueryRowContext(ctx,
		"SELECT "+doctorColumns+" FROM doctors WHERE LOWER(name)=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(name))))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Doctor{}, ErrDoctorNotFound
	}
	return d, err
}
