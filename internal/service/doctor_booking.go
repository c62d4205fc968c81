package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/minamaher/clinic-booking/internal/metrics"
	"github.com/minamaher/clinic-booking/internal/model"
	"github.com/minamaher/clinic-booking/internal/queue"
	"github.com/minamaher/clinic-booking/internal/schedule"
)

// DoctorLedger is the storage surface the consultation flow needs.
// *repository.DoctorBookingRepo satisfies it.
type DoctorLedger interface {
	Insert(ctx context.Context, b model.DoctorBooking) (int64, error)
	List(ctx context.Context) ([]model.DoctorBooking, error)
	ListByEmail(ctx context.Context, email string) ([]model.DoctorBooking, error)
	GetByID(ctx context.Context, id int64) (model.DoctorBooking, error)
	HasPatientWithDoctor(ctx context.Context, patientID int64, doctorName string, excludeID int64) (bool, error)
	HasPatientAtSlot(ctx context.Context, patientID int64, date, clock string, excludeID int64) (bool, error)
	TimesNearForDoctor(ctx context.Context, doctorName, date, clock string, proximityMinutes int, excludeID int64) ([]string, error)
	PurgeStale(ctx context.Context, now time.Time) (int64, error)
	Update(ctx context.Context, id int64, p model.DoctorBookingPatch) error
	Delete(ctx context.Context, id int64) error
}

// PatientDirectory resolves patient accounts by email.
// *repository.PatientRepo satisfies it.
type PatientDirectory interface {
	GetByEmail(ctx context.Context, email string) (model.Patient, error)
}

// CreateDoctorBookingInput is a consultation request. The patient is
// identified by account email and resolved to an ID before booking.
type CreateDoctorBookingInput struct {
	PatientEmail    string
	DoctorName      string
	AppointmentDate string
	AppointmentTime string
	PatientName     string
	PatientPhone    string
	PatientGender   string
	BirthDate       string
}

// DoctorBookingService books consultations with named providers.
// Every entry point that reads or writes the schedule first sweeps
// rows whose appointment moment has passed.
type DoctorBookingService struct {
	ledger   DoctorLedger
	patients PatientDirectory
	rules    schedule.Rules
	now      func() time.Time
	publish  func(ctx context.Context, ev queue.BookingCreatedEvent) error
	logger   zerolog.Logger
}

func NewDoctorBookingService(ledger DoctorLedger, patients PatientDirectory, rules schedule.Rules, logger zerolog.Logger) *DoctorBookingService {
	return &DoctorBookingService{
		ledger:   ledger,
		patients: patients,
		rules:    rules,
		now:      time.Now,
		publish:  queue.PublishBookingCreated,
		logger:   logger,
	}
}

// Create validates and books a consultation. Three rules run in
// order: a patient may not hold two bookings with the same provider,
// may not hold two bookings at the same moment, and a provider's
// bookings must not sit closer together than the proximity window. A
// proximity rejection suggests the latest clashing time plus one
// proximity step, in 12-hour form.
func (s *DoctorBookingService) Create(ctx context.Context, in CreateDoctorBookingInput) (model.DoctorBooking, error) {
	s.purge(ctx)

	if in.PatientEmail == "" || in.DoctorName == "" || in.AppointmentDate == "" ||
		in.AppointmentTime == "" || in.PatientName == "" || in.PatientPhone == "" {
		return model.DoctorBooking{}, ErrMissingFields
	}
	if !englishOK(reASCIIText, in.DoctorName, in.PatientName, in.PatientPhone, in.PatientEmail, in.PatientGender) {
		return model.DoctorBooking{}, ErrNonEnglish
	}

	patient, err := s.patients.GetByEmail(ctx, in.PatientEmail)
	if err != nil {
		return model.DoctorBooking{}, err
	}

	clock, err := schedule.NormalizeTime(in.AppointmentTime)
	if err != nil {
		return model.DoctorBooking{}, err
	}
	if _, err := s.rules.Validate(in.AppointmentDate, clock, s.now()); err != nil {
		return model.DoctorBooking{}, err
	}

	if err := s.checkConflicts(ctx, patient.ID, in.DoctorName, in.AppointmentDate, clock, 0); err != nil {
		return model.DoctorBooking{}, err
	}

	b := model.DoctorBooking{
		PatientID:       patient.ID,
		DoctorName:      in.DoctorName,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: clock,
		PatientName:     in.PatientName,
		PatientPhone:    in.PatientPhone,
		PatientEmail:    patient.Email,
		PatientGender:   in.PatientGender,
		BirthDate:       in.BirthDate,
	}
	id, err := s.ledger.Insert(ctx, b)
	if err != nil {
		return model.DoctorBooking{}, err
	}
	b.ID = id

	metrics.IncBookingCreated("doctor")
	s.publishCreated(ctx, b)
	return b, nil
}

// Update patches a booking. When the date, time or provider changes,
// the conflict rules re-run against the merged values, excluding the
// booking's own row.
func (s *DoctorBookingService) Update(ctx context.Context, id int64, p model.DoctorBookingPatch) (model.DoctorBooking, error) {
	if p.Empty() {
		return model.DoctorBooking{}, ErrEmptyPatch
	}
	s.purge(ctx)

	existing, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return model.DoctorBooking{}, err
	}

	var patchText []string
	for _, v := range []*string{p.DoctorName, p.PatientPhone, p.PatientGender} {
		if v != nil {
			patchText = append(patchText, *v)
		}
	}
	if !englishOK(reASCIIText, patchText...) {
		return model.DoctorBooking{}, ErrNonEnglish
	}

	if p.AppointmentTime != nil {
		clock, err := schedule.NormalizeTime(*p.AppointmentTime)
		if err != nil {
			return model.DoctorBooking{}, err
		}
		p.AppointmentTime = &clock
	}

	date, clock, doctor := existing.AppointmentDate, existing.AppointmentTime, existing.DoctorName
	reslot := false
	if p.AppointmentDate != nil {
		date, reslot = *p.AppointmentDate, true
	}
	if p.AppointmentTime != nil {
		clock, reslot = *p.AppointmentTime, true
	}
	if p.DoctorName != nil {
		doctor, reslot = *p.DoctorName, true
	}
	if reslot {
		if _, err := s.rules.Validate(date, clock, s.now()); err != nil {
			return model.DoctorBooking{}, err
		}
		if err := s.checkConflicts(ctx, existing.PatientID, doctor, date, clock, id); err != nil {
			return model.DoctorBooking{}, err
		}
	}

	if err := s.ledger.Update(ctx, id, p); err != nil {
		return model.DoctorBooking{}, err
	}
	return s.ledger.GetByID(ctx, id)
}

func (s *DoctorBookingService) Delete(ctx context.Context, id int64) error {
	return s.ledger.Delete(ctx, id)
}

func (s *DoctorBookingService) List(ctx context.Context) ([]model.DoctorBooking, error) {
	s.purge(ctx)
	return s.ledger.List(ctx)
}

func (s *DoctorBookingService) ListByEmail(ctx context.Context, email string) ([]model.DoctorBooking, error) {
	s.purge(ctx)
	return s.ledger.ListByEmail(ctx, email)
}

func (s *DoctorBookingService) Get(ctx context.Context, id int64) (model.DoctorBooking, error) {
	return s.ledger.GetByID(ctx, id)
}

func (s *DoctorBookingService) checkConflicts(ctx context.Context, patientID int64, doctor, date, clock string, excludeID int64) error {
	dup, err := s.ledger.HasPatientWithDoctor(ctx, patientID, doctor, excludeID)
	if err != nil {
		return err
	}
	if dup {
		metrics.IncBookingConflict("doctor", ConflictPatientProviderDup)
		return &ConflictError{Kind: ConflictPatientProviderDup}
	}

	clash, err := s.ledger.HasPatientAtSlot(ctx, patientID, date, clock, excludeID)
	if err != nil {
		return err
	}
	if clash {
		metrics.IncBookingConflict("doctor", ConflictPatientTimeClash)
		return &ConflictError{Kind: ConflictPatientTimeClash}
	}

	near, err := s.ledger.TimesNearForDoctor(ctx, doctor, date, clock, s.rules.ProximityMinutes, excludeID)
	if err != nil {
		return err
	}
	if len(near) > 0 {
		// near is ordered latest first; push the suggestion one
		// proximity step past the latest clash.
		metrics.IncBookingConflict("doctor", ConflictProviderTooClose)
		sug, err := schedule.AddMinutes(near[0], s.rules.ProximityMinutes)
		if err != nil {
			return &ConflictError{Kind: ConflictProviderTooClose}
		}
		return &ConflictError{Kind: ConflictProviderTooClose, SuggestedTime: schedule.Clock12(sug)}
	}
	return nil
}

func (s *DoctorBookingService) purge(ctx context.Context) {
	n, err := s.ledger.PurgeStale(ctx, s.now().In(s.rules.Location))
	if err != nil {
		s.logger.Warn().Err(err).Msg("purge stale bookings failed")
		return
	}
	if n > 0 {
		metrics.AddStalePurged(n)
		s.logger.Info().Int64("purged", n).Msg("swept stale consultation bookings")
	}
}

func (s *DoctorBookingService) publishCreated(ctx context.Context, b model.DoctorBooking) {
	ev := queue.BookingCreatedEvent{
		BookingID:       b.ID,
		Flow:            "doctor",
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		PatientName:     b.PatientName,
		PatientPhone:    b.PatientPhone,
		Subject:         b.DoctorName,
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", b.ID).Msg("publish booking.created failed")
	}
}
