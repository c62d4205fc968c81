package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/minamaher/clinic-booking/internal/repository"
	"github.com/minamaher/clinic-booking/internal/schedule"
	"github.com/minamaher/clinic-booking/internal/service"
)

// respondError maps service and repository errors onto HTTP responses.
// Conflict rejections carry the rule kind and, when available, a
// suggested alternative slot so clients can retry without guessing.
// Anything unrecognized is reported opaquely as a 500.
func respondError(c echo.Context, err error) error {
	var ce *service.ConflictError
	if errors.As(err, &ce) {
		resp := echo.Map{"error": "booking conflict", "kind": ce.Kind}
		if ce.SuggestedTime != "" {
			resp["suggested_time"] = ce.SuggestedTime
		}
		return c.JSON(http.StatusConflict, resp)
	}

	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrNonEnglish),
		errors.Is(err, service.ErrEmptyPatch),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrPastBooking),
		errors.Is(err, schedule.ErrOutsideHours):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrPatientNotFound),
		errors.Is(err, repository.ErrDoctorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		// Storage and transport failures stay opaque to the client;
		// the full error is kept server-side for diagnosis.
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
