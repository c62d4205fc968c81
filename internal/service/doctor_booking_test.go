package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/repository"
)

func newDoctorSvc(ledger *fakeDoctorLedger) *DoctorBookingService {
	patients := &fakePatients{byEmail: map[string]model.Patient{
		"sara@example.com": {ID: 1, FullName: "Sara Adel", Email: "sara@example.com"},
		"omar@example.com": {ID: 2, FullName: "Omar Khaled", Email: "omar@example.com"},
	}}
	s := NewDoctorBookingService(ledger, patients, testRules(), nopLogger())
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 6, 0, 0, 0, testRules().Location)
	}
	s.publish = noopPublish
	return s
}

func doctorReq(email, doctor, clock string) CreateDoctorBookingInput {
	return CreateDoctorBookingInput{
		PatientEmail:    email,
		DoctorName:      doctor,
		AppointmentDate: "2026-09-01",
		AppointmentTime: clock,
		PatientName:     "Sara Adel",
		PatientPhone:    "01001234567",
		PatientGender:   "female",
		BirthDate:       "1998-01-01",
	}
}

func TestDoctorCreate_ResolvesPatient(t *testing.T) {
	ledger := &fakeDoctorLedger{}
	svc := newDoctorSvc(ledger)

	got, err := svc.Create(context.Background(), doctorReq("sara@example.com", "Dr Hany", "10:00 AM"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.PatientID)
	assert.Equal(t, "sara@example.com", got.PatientEmail)
	assert.Equal(t, "10:00:00", got.AppointmentTime)
}

func TestDoctorCreate_UnknownEmail(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	_, err := svc.Create(context.Background(), doctorReq("nobody@example.com", "Dr Hany", "10:00"))
	assert.ErrorIs(t, err, repository.ErrPatientNotFound)
}

func TestDoctorCreate_MissingFields(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	req := doctorReq("sara@example.com", "", "10:00")
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestDoctorCreate_NonEnglish(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	req := doctorReq("sara@example.com", "دكتور هاني", "10:00")
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNonEnglish)
}

func TestDoctorCreate_SameProviderTwice(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "13:00"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictPatientProviderDup, ce.Kind)
}

func TestDoctorCreate_PatientTimeClash(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, doctorReq("sara@example.com", "Dr Mona", "10:00"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictPatientTimeClash, ce.Kind)
}

func TestDoctorCreate_ProviderTooClose(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00"))
	require.NoError(t, err)

	// 10 minutes later with the same provider is inside the window.
	_, err = svc.Create(ctx, doctorReq("omar@example.com", "Dr Hany", "10:10"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictProviderTooClose, ce.Kind)
	assert.Equal(t, "10:15 AM", ce.SuggestedTime)
}

func TestDoctorCreate_ProviderGapAccepted(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00"))
	require.NoError(t, err)

	got, err := svc.Create(ctx, doctorReq("omar@example.com", "Dr Hany", "10:20"))
	require.NoError(t, err)
	assert.Equal(t, "10:20:00", got.AppointmentTime)
}

func TestDoctorList_PurgesStaleRows(t *testing.T) {
	ledger := &fakeDoctorLedger{}
	svc := newDoctorSvc(ledger)
	ctx := context.Background()

	_, err := ledger.Insert(ctx, model.DoctorBooking{
		PatientID: 1, DoctorName: "Dr Hany",
		AppointmentDate: "2026-08-31", AppointmentTime: "10:00:00",
	})
	require.NoError(t, err)
	_, err = ledger.Insert(ctx, model.DoctorBooking{
		PatientID: 2, DoctorName: "Dr Mona",
		AppointmentDate: "2026-09-01", AppointmentTime: "10:00:00",
	})
	require.NoError(t, err)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dr Mona", got[0].DoctorName)
}

func TestDoctorUpdate_RechecksProximity(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00"))
	require.NoError(t, err)
	mine, err := svc.Create(ctx, doctorReq("omar@example.com", "Dr Hany", "11:00"))
	require.NoError(t, err)

	clock := "10:10"
	_, err = svc.Update(ctx, mine.ID, model.DoctorBookingPatch{AppointmentTime: &clock})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictProviderTooClose, ce.Kind)
}

func TestDoctorUpdate_EmptyPatch(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	_, err := svc.Update(context.Background(), 1, model.DoctorBookingPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestDoctorCreate_NonEnglishPhone(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})

	req := doctorReq("sara@example.com", "Dr Hany", "10:00 AM")
	req.PatientPhone = "٠١٠٠١٢٣٤٥٦٧"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNonEnglish)
}

func TestDoctorDelete_RoundTrip(t *testing.T) {
	ledger := &fakeDoctorLedger{}
	svc := newDoctorSvc(ledger)
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, before)

	created, err := svc.Create(ctx, doctorReq("sara@example.com", "Dr Hany", "10:00 AM"))
	require.NoError(t, err)

	during, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, during, 1)
	assert.Equal(t, created.ID, during[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestDoctorDelete_NotFound(t *testing.T) {
	svc := newDoctorSvc(&fakeDoctorLedger{})
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
