package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/schedule"
	"github.com/minamaher/clinic-booking/internal/service"
)

// VaccineBookingHandler exposes the walk-in vaccination booking API.
type VaccineBookingHandler struct {
	Svc *service.VaccineBookingService
}

func NewVaccineBookingHandler(svc *service.VaccineBookingService) *VaccineBookingHandler {
	return &VaccineBookingHandler{Svc: svc}
}

type vaccineBookingReq struct {
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	VaccineName     string  `json:"vaccine_name"`
	PatientName     string  `json:"patient_name"`
	PatientPhone    string  `json:"patient_phone"`
	NationalID      string  `json:"national_id"`
	BirthDate       string  `json:"birth_date"`
	Gender          string  `json:"gender"`
	Service         string  `json:"service"`
	Distance        float64 `json:"distance"`
	LocationDetail  string  `json:"location_detail"`
}

type vaccineBookingPatchReq struct {
	AppointmentDate *string  `json:"appointment_date"`
	AppointmentTime *string  `json:"appointment_time"`
	VaccineName     *string  `json:"vaccine_name"`
	PatientName     *string  `json:"patient_name"`
	PatientPhone    *string  `json:"patient_phone"`
	NationalID      *string  `json:"national_id"`
	BirthDate       *string  `json:"birth_date"`
	Gender          *string  `json:"gender"`
	Service         *string  `json:"service"`
	Distance        *float64 `json:"distance"`
	LocationDetail  *string  `json:"location_detail"`
}

type vaccineBookingResp struct {
	ID              int64   `json:"id"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	TimeDisplay     string  `json:"appointment_time_display"`
	VaccineName     string  `json:"vaccine_name"`
	PatientName     string  `json:"patient_name"`
	PatientPhone    string  `json:"patient_phone"`
	NationalID      string  `json:"national_id"`
	BirthDate       string  `json:"birth_date,omitempty"`
	Gender          string  `json:"gender,omitempty"`
	Service         string  `json:"service,omitempty"`
	Distance        float64 `json:"distance,omitempty"`
	LocationDetail  string  `json:"location_detail,omitempty"`
}

func toVaccineBookingResp(b model.VaccineBooking) vaccineBookingResp {
	return vaccineBookingResp{
		ID:              b.ID,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		TimeDisplay:     schedule.Clock12Seconds(b.AppointmentTime),
		VaccineName:     b.VaccineName,
		PatientName:     b.PatientName,
		PatientPhone:    b.PatientPhone,
		NationalID:      b.NationalID,
		BirthDate:       b.BirthDate,
		Gender:          b.Gender,
		Service:         b.Service,
		Distance:        b.Distance,
		LocationDetail:  b.LocationDetail,
	}
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// Create books a vaccination appointment.
func (h *VaccineBookingHandler) Create(c echo.Context) error {
	var req vaccineBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Create(ctx, model.VaccineBooking{
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		VaccineName:     req.VaccineName,
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		NationalID:      req.NationalID,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		Service:         req.Service,
		Distance:        req.Distance,
		LocationDetail:  req.LocationDetail,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toVaccineBookingResp(b))
}

// List returns every vaccination booking.
func (h *VaccineBookingHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]vaccineBookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toVaccineBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// History lists all doses recorded for one national ID.
func (h *VaccineBookingHandler) History(c echo.Context) error {
	nid := c.Param("national_id")
	if nid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "national_id required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Svc.History(ctx, nid)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]vaccineBookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toVaccineBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one booking by id.
func (h *VaccineBookingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toVaccineBookingResp(b))
}

// Update applies a partial patch to a booking.
func (h *VaccineBookingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req vaccineBookingPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Update(ctx, id, model.VaccineBookingPatch{
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		VaccineName:     req.VaccineName,
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		NationalID:      req.NationalID,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		Service:         req.Service,
		Distance:        req.Distance,
		LocationDetail:  req.LocationDetail,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toVaccineBookingResp(b))
}

// Delete removes a booking by id.
func (h *VaccineBookingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
