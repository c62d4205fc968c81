package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/queue"
	"github.com/minamaher/clinic-booking/internal/repository"
	"github.com/minamaher/clinic-booking/internal/schedule"
)

func testRules() schedule.Rules {
	return schedule.Rules{
		Location:           time.FixedZone("EET", 2*60*60),
		OpenMinute:         495,
		CloseMinute:        870,
		StepMinutes:        15,
		ProximityMinutes:   15,
		DefaultCapacity:    10,
		ReducedCapacity:    5,
		ReducedTailMinutes: 30,
	}
}

func clockHour(clock string) int {
	h, _ := strconv.Atoi(clock[:2])
	return h
}

func clockSeconds(clock string) int {
	parts := strings.Split(clock, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s := 0
	if len(parts) > 2 {
		s, _ = strconv.Atoi(parts[2])
	}
	return h*3600 + m*60 + s
}

// fakeVaccineLedger keeps rows in memory and derives the counts the
// allocator asks for, so tests exercise both counting granularities
// against real data.
type fakeVaccineLedger struct {
	rows   []model.VaccineBooking
	nextID int64
}

func (f *fakeVaccineLedger) Insert(_ context.Context, b model.VaccineBooking) (int64, error) {
	f.nextID++
	b.ID = f.nextID
	f.rows = append(f.rows, b)
	return b.ID, nil
}

func (f *fakeVaccineLedger) List(context.Context) ([]model.VaccineBooking, error) {
	return f.rows, nil
}

func (f *fakeVaccineLedger) ListByNationalID(_ context.Context, nid string) ([]model.VaccineBooking, error) {
	out := []model.VaccineBooking{}
	for _, r := range f.rows {
		if r.NationalID == nid {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeVaccineLedger) GetByID(_ context.Context, id int64) (model.VaccineBooking, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return model.VaccineBooking{}, repository.ErrBookingNotFound
}

func (f *fakeVaccineLedger) CountSlotVaccine(_ context.Context, date, clock, vaccine string, excludeID int64) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.ID != excludeID && r.AppointmentDate == date && r.AppointmentTime == clock && r.VaccineName == vaccine {
			n++
		}
	}
	return n, nil
}

func (f *fakeVaccineLedger) CountByHour(_ context.Context, date string, hour int, excludeID int64) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.ID != excludeID && r.AppointmentDate == date && clockHour(r.AppointmentTime) == hour {
			n++
		}
	}
	return n, nil
}

func (f *fakeVaccineLedger) CountBySlot(_ context.Context, date, clock string, excludeID int64) (int, error) {
	n := 0
	for _, r := range f.rows {
		if r.ID != excludeID && r.AppointmentDate == date && r.AppointmentTime == clock {
			n++
		}
	}
	return n, nil
}

func (f *fakeVaccineLedger) Update(_ context.Context, id int64, p model.VaccineBookingPatch) error {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		if p.AppointmentDate != nil {
			f.rows[i].AppointmentDate = *p.AppointmentDate
		}
		if p.AppointmentTime != nil {
			f.rows[i].AppointmentTime = *p.AppointmentTime
		}
		if p.VaccineName != nil {
			f.rows[i].VaccineName = *p.VaccineName
		}
		if p.PatientName != nil {
			f.rows[i].PatientName = *p.PatientName
		}
		if p.PatientPhone != nil {
			f.rows[i].PatientPhone = *p.PatientPhone
		}
		if p.NationalID != nil {
			f.rows[i].NationalID = *p.NationalID
		}
		return nil
	}
	return repository.ErrBookingNotFound
}

func (f *fakeVaccineLedger) Delete(_ context.Context, id int64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrBookingNotFound
}

// fakeDoctorLedger mirrors the consultation queries in memory.
type fakeDoctorLedger struct {
	rows   []model.DoctorBooking
	nextID int64
}

func (f *fakeDoctorLedger) Insert(_ context.Context, b model.DoctorBooking) (int64, error) {
	f.nextID++
	b.ID = f.nextID
	f.rows = append(f.rows, b)
	return b.ID, nil
}

func (f *fakeDoctorLedger) List(context.Context) ([]model.DoctorBooking, error) {
	return f.rows, nil
}

func (f *fakeDoctorLedger) ListByEmail(_ context.Context, email string) ([]model.DoctorBooking, error) {
	out := []model.DoctorBooking{}
	for _, r := range f.rows {
		if r.PatientEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDoctorLedger) GetByID(_ context.Context, id int64) (model.DoctorBooking, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return model.DoctorBooking{}, repository.ErrBookingNotFound
}

func (f *fakeDoctorLedger) HasPatientWithDoctor(_ context.Context, patientID int64, doctorName string, excludeID int64) (bool, error) {
	for _, r := range f.rows {
		if r.ID != excludeID && r.PatientID == patientID && r.DoctorName == doctorName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctorLedger) HasPatientAtSlot(_ context.Context, patientID int64, date, clock string, excludeID int64) (bool, error) {
	for _, r := range f.rows {
		if r.ID != excludeID && r.PatientID == patientID && r.AppointmentDate == date && r.AppointmentTime == clock {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctorLedger) TimesNearForDoctor(_ context.Context, doctorName, date, clock string, proximityMinutes int, excludeID int64) ([]string, error) {
	want := clockSeconds(clock)
	out := []string{}
	for _, r := range f.rows {
		if r.ID == excludeID || r.DoctorName != doctorName || r.AppointmentDate != date {
			continue
		}
		diff := clockSeconds(r.AppointmentTime) - want
		if diff < 0 {
			diff = -diff
		}
		if diff < proximityMinutes*60 {
			out = append(out, r.AppointmentTime)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func (f *fakeDoctorLedger) PurgeStale(_ context.Context, now time.Time) (int64, error) {
	date := now.Format("2006-01-02")
	clock := now.Format("15:04:05")
	kept := f.rows[:0]
	var purged int64
	for _, r := range f.rows {
		if r.AppointmentDate < date || (r.AppointmentDate == date && r.AppointmentTime < clock) {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return purged, nil
}

func (f *fakeDoctorLedger) Update(_ context.Context, id int64, p model.DoctorBookingPatch) error {
	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		if p.AppointmentDate != nil {
			f.rows[i].AppointmentDate = *p.AppointmentDate
		}
		if p.AppointmentTime != nil {
			f.rows[i].AppointmentTime = *p.AppointmentTime
		}
		if p.DoctorName != nil {
			f.rows[i].DoctorName = *p.DoctorName
		}
		return nil
	}
	return repository.ErrBookingNotFound
}

func (f *fakeDoctorLedger) Delete(_ context.Context, id int64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrBookingNotFound
}

// fakePatients resolves a fixed set of accounts.
type fakePatients struct {
	byEmail map[string]model.Patient
}

func (f *fakePatients) GetByEmail(_ context.Context, email string) (model.Patient, error) {
	p, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.Patient{}, repository.ErrPatientNotFound
	}
	return p, nil
}

func noopPublish(context.Context, queue.BookingCreatedEvent) error { return nil }

func nopLogger() zerolog.Logger { return zerolog.Nop() }
