package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/schedule"
	"github.com/minamaher/clinic-booking/internal/service"
)

// DoctorBookingHandler exposes the consultation booking API.
type DoctorBookingHandler struct {
	Svc *service.DoctorBookingService
}

func NewDoctorBookingHandler(svc *service.DoctorBookingService) *DoctorBookingHandler {
	return &DoctorBookingHandler{Svc: svc}
}

type doctorBookingReq struct {
	PatientEmail    string `json:"patient_email"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	PatientName     string `json:"patient_name"`
	PatientPhone    string `json:"patient_phone"`
	PatientGender   string `json:"patient_gender"`
	BirthDate       string `json:"birth_date"`
}

type doctorBookingPatchReq struct {
	AppointmentDate *string `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
	DoctorName      *string `json:"doctor_name"`
	PatientPhone    *string `json:"patient_phone"`
	PatientGender   *string `json:"patient_gender"`
	BirthDate       *string `json:"birth_date"`
}

type doctorBookingResp struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patient_id"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	TimeDisplay     string `json:"appointment_time_display"`
	PatientName     string `json:"patient_name"`
	PatientPhone    string `json:"patient_phone"`
	PatientEmail    string `json:"patient_email"`
	PatientGender   string `json:"patient_gender,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
}

func toDoctorBookingResp(b model.DoctorBooking) doctorBookingResp {
	return doctorBookingResp{
		ID:              b.ID,
		PatientID:       b.PatientID,
		DoctorName:      b.DoctorName,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		TimeDisplay:     schedule.Clock12Seconds(b.AppointmentTime),
		PatientName:     b.PatientName,
		PatientPhone:    b.PatientPhone,
		PatientEmail:    b.PatientEmail,
		PatientGender:   b.PatientGender,
		BirthDate:       b.BirthDate,
	}
}

// Create books a consultation with a named provider.
func (h *DoctorBookingHandler) Create(c echo.Context) error {
	var req doctorBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.PatientEmail == "" {
		if email, ok := c.Get("email").(string); ok {
			req.PatientEmail = email
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Create(ctx, service.CreateDoctorBookingInput{
		PatientEmail:    req.PatientEmail,
		DoctorName:      req.DoctorName,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		PatientName:     req.PatientName,
		PatientPhone:    req.PatientPhone,
		PatientGender:   req.PatientGender,
		BirthDate:       req.BirthDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toDoctorBookingResp(b))
}

// List returns every upcoming consultation.
func (h *DoctorBookingHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Svc.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]doctorBookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toDoctorBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByEmail returns a patient's upcoming consultations.
func (h *DoctorBookingHandler) ListByEmail(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	bookings, err := h.Svc.ListByEmail(ctx, email)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]doctorBookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toDoctorBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get returns one booking by id.
func (h *DoctorBookingHandler) Get(c echo.Context) error {
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
	return c.JSON(http.StatusOK, toDoctorBookingResp(b))
}

// Update applies a partial patch to a booking.
func (h *DoctorBookingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req doctorBookingPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Svc.Update(ctx, id, model.DoctorBookingPatch{
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		DoctorName:      req.DoctorName,
		PatientPhone:    req.PatientPhone,
		PatientGender:   req.PatientGender,
		BirthDate:       req.BirthDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDoctorBookingResp(b))
}

// Delete removes a booking by id.
func (h *DoctorBookingHandler) Delete(c echo.Context) error {
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
