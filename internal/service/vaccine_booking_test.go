package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/repository"
	"github.com/minamaher/clinic-booking/internal/schedule"
)

func newVaccineSvc(ledger *fakeVaccineLedger) *VaccineBookingService {
	s := NewVaccineBookingService(ledger, testRules(), nopLogger())
	// 06:00 clinic time on the booking day, so same-day slots are upcoming.
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 6, 0, 0, 0, testRules().Location)
	}
	s.publish = noopPublish
	return s
}

func vaccineReq(clock, vaccine string) model.VaccineBooking {
	return model.VaccineBooking{
		AppointmentDate: "2026-09-01",
		AppointmentTime: clock,
		VaccineName:     vaccine,
		PatientName:     "Sara Adel",
		PatientPhone:    "01001234567",
		NationalID:      "29801010101234",
		BirthDate:       "1998-01-01",
		Gender:          "female",
	}
}

// seed books n rows at the given clock, each with a distinct vaccine
// so the duplicate rule stays out of the way.
func seed(t *testing.T, ledger *fakeVaccineLedger, clock string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := ledger.Insert(context.Background(), model.VaccineBooking{
			AppointmentDate: "2026-09-01",
			AppointmentTime: clock,
			VaccineName:     fmt.Sprintf("Vaccine-%s-%d", clock, i),
			PatientName:     "Seeded",
			PatientPhone:    "0100000000",
			NationalID:      fmt.Sprintf("3000000000%04d", i),
		})
		require.NoError(t, err)
	}
}

func TestVaccineCreate_NormalizesTime(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)

	got, err := svc.Create(context.Background(), vaccineReq("9:30 AM", "MMR"))
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got.AppointmentTime)
	assert.NotZero(t, got.ID)
}

func TestVaccineCreate_MissingFields(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})

	req := vaccineReq("09:30", "MMR")
	req.NationalID = ""
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestVaccineCreate_NonEnglish(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})

	req := vaccineReq("09:30", "MMR")
	req.PatientName = "سارة عادل"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNonEnglish)
}

func TestVaccineCreate_ScheduleWindow(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})
	ctx := context.Background()

	past := vaccineReq("09:00", "MMR")
	past.AppointmentDate = "2026-08-31"
	_, err := svc.Create(ctx, past)
	assert.ErrorIs(t, err, schedule.ErrPastBooking)

	_, err = svc.Create(ctx, vaccineReq("07:00", "MMR"))
	assert.ErrorIs(t, err, schedule.ErrOutsideHours)

	_, err = svc.Create(ctx, vaccineReq("15:00", "MMR"))
	assert.ErrorIs(t, err, schedule.ErrOutsideHours)
}

func TestVaccineCreate_DuplicateSlot(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	ctx := context.Background()

	_, err := svc.Create(ctx, vaccineReq("10:00", "BCG"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, vaccineReq("10:00", "BCG"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictDuplicateSlot, ce.Kind)
	assert.Empty(t, ce.SuggestedTime)
}

func TestVaccineCreate_HourFullSuggestsNextSlot(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	seed(t, ledger, "09:00:00", 10)

	_, err := svc.Create(context.Background(), vaccineReq("09:00", "Polio"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictCapacity, ce.Kind)
	assert.Equal(t, "09:15:00", ce.SuggestedTime)
}

func TestVaccineCreate_ReducedTailCapacity(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	seed(t, ledger, "14:00:00", 5)

	// Five bookings already fill the reduced final-stretch capacity.
	_, err := svc.Create(context.Background(), vaccineReq("14:00", "Polio"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictCapacity, ce.Kind)
	assert.Equal(t, "14:15:00", ce.SuggestedTime)
}

func TestVaccineCreate_CapacityExhausted(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	seed(t, ledger, "14:30:00", 5)

	// The last slot of the day is full and no later slot exists.
	_, err := svc.Create(context.Background(), vaccineReq("14:30", "Polio"))
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ConflictCapacityExhausted, ce.Kind)
	assert.Empty(t, ce.SuggestedTime)
}

func TestVaccineUpdate_OwnRowExcluded(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	ctx := context.Background()

	created, err := svc.Create(ctx, vaccineReq("09:00", "MMR"))
	require.NoError(t, err)
	seed(t, ledger, "09:00:00", 9)

	// The hour now holds 10 rows, but one is the row being updated.
	clock := "09:00"
	got, err := svc.Update(ctx, created.ID, model.VaccineBookingPatch{AppointmentTime: &clock})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", got.AppointmentTime)
}

func TestVaccineUpdate_EmptyPatch(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})
	_, err := svc.Update(context.Background(), 1, model.VaccineBookingPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestVaccineUpdate_NotFound(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})
	name := "MMR"
	_, err := svc.Update(context.Background(), 42, model.VaccineBookingPatch{VaccineName: &name})
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestVaccineHistory(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	ctx := context.Background()

	first := vaccineReq("09:00", "Hepatitis B")
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)
	second := vaccineReq("10:00", "MMR")
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	other := vaccineReq("11:00", "MMR")
	other.NationalID = "30102020202345"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	got, err := svc.History(ctx, first.NationalID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestVaccineCreate_NonEnglishPhone(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})

	req := vaccineReq("09:00", "MMR")
	req.PatientPhone = "٠١٠٠١٢٣٤٥٦٧"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrNonEnglish)
}

func TestVaccineUpdate_NationalID(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	ctx := context.Background()

	created, err := svc.Create(ctx, vaccineReq("09:00", "MMR"))
	require.NoError(t, err)

	nid := "30203030303456"
	got, err := svc.Update(ctx, created.ID, model.VaccineBookingPatch{NationalID: &nid})
	require.NoError(t, err)
	assert.Equal(t, nid, got.NationalID)

	hist, err := svc.History(ctx, nid)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestVaccineDelete_RoundTrip(t *testing.T) {
	ledger := &fakeVaccineLedger{}
	svc := newVaccineSvc(ledger)
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, before)

	created, err := svc.Create(ctx, vaccineReq("09:00", "MMR"))
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

func TestVaccineDelete_NotFound(t *testing.T) {
	svc := newVaccineSvc(&fakeVaccineLedger{})
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
