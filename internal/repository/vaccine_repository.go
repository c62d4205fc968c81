package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/minamaher/clinic-booking/internal/model"
)

// VaccineSearchQuery defines filters & pagination for the vaccine catalog.
type VaccineSearchQuery struct {
	Name     string
	Page     int
	PageSize int
}

// VaccineRepo provides read access to the 'vaccines' catalog.
type VaccineRepo struct{ DB *sql.DB }

func NewVaccineRepo(db *sql.DB) *VaccineRepo { return &VaccineRepo{DB: db} }

// Search lists vaccines matching the optional name filter, plus the
// total count for pagination.
func (r *VaccineRepo) Search(ctx context.Context, q VaccineSearchQuery) ([]model.Vaccine, int64, error) {
	cond := "1=1"
	args := []any{}
	if q.Name != "" {
		cond = "LOWER(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM vaccines WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	argsData := append(append([]any{}, args...), limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,age_range,required_doses FROM vaccines WHERE "+cond+" ORDER BY name ASC LIMIT ? OFFSET ?",
		argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Vaccine, 0, limit)
	for rows.Next() {
		var v model.Vaccine
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.AgeRange, &v.RequiredDoses); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
