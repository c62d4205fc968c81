// This file defines handlers for the public catalog API. These routes
// let unauthenticated users browse doctors and vaccines before
// booking. Responses are paginated and carry only display fields.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/repository"
)

// CatalogHandler aggregates the read-only catalog repositories.
type CatalogHandler struct {
	Doctors  *repository.DoctorRepo
	Vaccines *repository.VaccineRepo
}

func NewCatalogHandler(d *repository.DoctorRepo, v *repository.VaccineRepo) *CatalogHandler {
	return &CatalogHandler{Doctors: d, Vaccines: v}
}

type doctorItem struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Phone          string   `json:"phone,omitempty"`
	ClinicLocation string   `json:"clinic_location,omitempty"`
	Description    string   `json:"description,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	Fees           *float64 `json:"fees,omitempty"`
	AvailableDays  string   `json:"available_days,omitempty"`
	AvailableTimes string   `json:"available_times,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}

type vaccineItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	AgeRange      string `json:"age_range,omitempty"`
	RequiredDoses int    `json:"required_doses,omitempty"`
}

func toDoctorItem(d model.Doctor) doctorItem {
	item := doctorItem{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		Phone:          d.Phone,
		ClinicLocation: d.ClinicLocation,
		Description:    d.Description,
		Rating:         d.Rating,
		Fees:           d.Fees,
		AvailableDays:  d.AvailableDays,
		AvailableTimes: d.AvailableTimes,
	}
	if d.Photo != nil && *d.Photo != "" {
		item.ImageURL = "/uploads/" + *d.Photo
	}
	return item
}

func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}

// ListDoctors returns doctors filtered by optional name and
// specialization query parameters.
func (h *CatalogHandler) ListDoctors(c echo.Context) error {
	page, size := pageParams(c)
	doctors, total, err := h.Doctors.Search(c.Request().Context(), repository.DoctorSearchQuery{
		Name:           c.QueryParam("name"),
		Specialization: c.QueryParam("specialization"),
		Page:           page,
		PageSize:       size,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]doctorItem, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, toDoctorItem(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}

// GetDoctor returns a single doctor by id.
func (h *CatalogHandler) GetDoctor(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Doctors.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDoctorItem(d))
}

// GetDoctorByName returns a single doctor by exact name. Booking forms
// submit provider names, so clients resolve details through this route.
func (h *CatalogHandler) GetDoctorByName(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	d, err := h.Doctors.GetByName(c.Request().Context(), name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDoctorItem(d))
}

// ListVaccines returns vaccines filtered by an optional name query.
func (h *CatalogHandler) ListVaccines(c echo.Context) error {
	page, size := pageParams(c)
	vaccines, total, err := h.Vaccines.Search(c.Request().Context(), repository.VaccineSearchQuery{
		Name:     c.QueryParam("name"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]vaccineItem, 0, len(vaccines))
	for _, v := range vaccines {
		items = append(items, vaccineItem{
			ID:            v.ID,
			Name:          v.Name,
			Description:   v.Description,
			AgeRange:      v.AgeRange,
			RequiredDoses: v.RequiredDoses,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}
