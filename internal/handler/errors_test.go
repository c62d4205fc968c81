package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minamaher/clinic-booking/internal/repository"
	"github.com/minamaher/clinic-booking/internal/schedule"
	"github.com/minamaher/clinic-booking/internal/service"
)

func record(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, respondError(c, err))
	return rec
}

func TestRespondError_ConflictWithSuggestion(t *testing.T) {
	rec := record(t, &service.ConflictError{
		Kind:          service.ConflictCapacity,
		SuggestedTime: "09:15:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"capacity"`)
	assert.Contains(t, rec.Body.String(), `"suggested_time":"09:15:00"`)
}

func TestRespondError_ConflictWithoutSuggestion(t *testing.T) {
	rec := record(t, &service.ConflictError{Kind: service.ConflictDuplicateSlot})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotContains(t, rec.Body.String(), "suggested_time")
}

func TestRespondError_BadRequest(t *testing.T) {
	for _, err := range []error{
		service.ErrMissingFields,
		service.ErrNonEnglish,
		schedule.ErrInvalidTime,
		schedule.ErrPastBooking,
		schedule.ErrOutsideHours,
	} {
		rec := record(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, err.Error())
	}
}

func TestRespondError_NotFound(t *testing.T) {
	for _, err := range []error{
		repository.ErrBookingNotFound,
		repository.ErrPatientNotFound,
		repository.ErrDoctorNotFound,
	} {
		rec := record(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code, err.Error())
	}
}

func TestRespondError_Opaque(t *testing.T) {
	rec := record(t, errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "driver")
}

func TestRespondError_LogsDiagnosticOn500(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	rec := record(t, errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "driver: bad connection")
	assert.Contains(t, buf.String(), `"path":"/"`)
}
