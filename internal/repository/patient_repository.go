package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/utils"
)

// PatientRepo provides access to the 'patients' table. Patients are
// the authenticated accounts of the platform and also the subjects of
// doctor bookings, which reference them by email.
type PatientRepo struct{ DB *sql.DB }

func NewPatientRepo(db *sql.DB) *PatientRepo { return &PatientRepo{DB: db} }

// Create inserts a patient account and returns its ID. The password
// is hashed here so plaintext never crosses the repository boundary.
func (r *PatientRepo) Create(ctx context.Context, fullName, email, password string, phone *string, cost int) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO patients (full_name, email, password_hash, phone) VALUES (?,?,?,?)",
		fullName, email, hash, phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail fetches a patient by normalized email.
func (r *PatientRepo) GetByEmail(ctx context.Context, email string) (model.Patient, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var p model.Patient
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password_hash,phone,created_at,updated_at FROM patients WHERE email=? LIMIT 1",
		email).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Patient{}, ErrPatientNotFound
	}
	return p, err
}

// GetByID fetches a patient by id.
func (r *PatientRepo) GetByID(ctx context.Context, id int64) (model.Patient, error) {
	var p model.Patient
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,password_hash,phone,created_at,updated_at FROM patients WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Patient{}, ErrPatientNotFound
	}
	return p, err
}
