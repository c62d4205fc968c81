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

// VaccineLedger is the storage surface the vaccination flow needs.
// *repository.VaccineBookingRepo satisfies it.
type VaccineLedger interface {
	Insert(ctx context.Context, b model.VaccineBooking) (int64, error)
	List(ctx context.Context) ([]model.VaccineBooking, error)
	ListByNationalID(ctx context.Context, nationalID string) ([]model.VaccineBooking, error)
	GetByID(ctx context.Context, id int64) (model.VaccineBooking, error)
	CountSlotVaccine(ctx context.Context, date, clock, vaccine string, excludeID int64) (int, error)
	CountByHour(ctx context.Context, date string, hour int, excludeID int64) (int, error)
	CountBySlot(ctx context.Context, date, clock string, excludeID int64) (int, error)
	Update(ctx context.Context, id int64, p model.VaccineBookingPatch) error
	Delete(ctx context.Context, id int64) error
}

// VaccineBookingService books walk-in vaccination appointments.
// Capacity is enforced per hour at the requested slot and per exact
// slot during the forward search for an alternative.
type VaccineBookingService struct {
	ledger  VaccineLedger
	rules   schedule.Rules
	now     func() time.Time
	publish func(ctx context.Context, ev queue.BookingCreatedEvent) error
	logger  zerolog.Logger
}

func NewVaccineBookingService(ledger VaccineLedger, rules schedule.Rules, logger zerolog.Logger) *VaccineBookingService {
	return &VaccineBookingService{
		ledger:  ledger,
		rules:   rules,
		now:     time.Now,
		publish: queue.PublishBookingCreated,
		logger:  logger,
	}
}

// Create validates and books a vaccination appointment. On a capacity
// conflict the returned ConflictError carries the first free slot
// later the same day, in 24-hour form.
func (s *VaccineBookingService) Create(ctx context.Context, b model.VaccineBooking) (model.VaccineBooking, error) {
	if b.AppointmentDate == "" || b.AppointmentTime == "" || b.VaccineName == "" ||
		b.PatientName == "" || b.PatientPhone == "" || b.NationalID == "" {
		return model.VaccineBooking{}, ErrMissingFields
	}
	if !englishOK(reVaccineText, b.VaccineName, b.PatientName, b.PatientPhone, b.NationalID, b.Gender, b.Service, b.LocationDetail) {
		return model.VaccineBooking{}, ErrNonEnglish
	}

	clock, err := schedule.NormalizeTime(b.AppointmentTime)
	if err != nil {
		return model.VaccineBooking{}, err
	}
	b.AppointmentTime = clock

	slot, err := s.rules.Validate(b.AppointmentDate, clock, s.now())
	if err != nil {
		return model.VaccineBooking{}, err
	}

	if err := s.checkSlot(ctx, b.AppointmentDate, clock, b.VaccineName, slot, 0); err != nil {
		return model.VaccineBooking{}, err
	}

	id, err := s.ledger.Insert(ctx, b)
	if err != nil {
		return model.VaccineBooking{}, err
	}
	b.ID = id

	metrics.IncBookingCreated("vaccine")
	s.publishCreated(ctx, b)
	return b, nil
}

// Update patches a booking. When the date, time or vaccine changes,
// the resulting slot is re-validated against the schedule window and
// the conflict rules, excluding the booking's own row.
func (s *VaccineBookingService) Update(ctx context.Context, id int64, p model.VaccineBookingPatch) (model.VaccineBooking, error) {
	if p.Empty() {
		return model.VaccineBooking{}, ErrEmptyPatch
	}
	existing, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return model.VaccineBooking{}, err
	}

	var patchText []string
	for _, v := range []*string{p.VaccineName, p.PatientName, p.PatientPhone, p.NationalID, p.Gender, p.Service, p.LocationDetail} {
		if v != nil {
			patchText = append(patchText, *v)
		}
	}
	if !englishOK(reVaccineText, patchText...) {
		return model.VaccineBooking{}, ErrNonEnglish
	}

	if p.AppointmentTime != nil {
		clock, err := schedule.NormalizeTime(*p.AppointmentTime)
		if err != nil {
			return model.VaccineBooking{}, err
		}
		p.AppointmentTime = &clock
	}

	date, clock, vaccine := existing.AppointmentDate, existing.AppointmentTime, existing.VaccineName
	reslot := false
	if p.AppointmentDate != nil {
		date, reslot = *p.AppointmentDate, true
	}
	if p.AppointmentTime != nil {
		clock, reslot = *p.AppointmentTime, true
	}
	if p.VaccineName != nil {
		vaccine, reslot = *p.VaccineName, true
	}
	if reslot {
		slot, err := s.rules.Validate(date, clock, s.now())
		if err != nil {
			return model.VaccineBooking{}, err
		}
		if err := s.checkSlot(ctx, date, clock, vaccine, slot, id); err != nil {
			return model.VaccineBooking{}, err
		}
	}

	if err := s.ledger.Update(ctx, id, p); err != nil {
		return model.VaccineBooking{}, err
	}
	return s.ledger.GetByID(ctx, id)
}

func (s *VaccineBookingService) Delete(ctx context.Context, id int64) error {
	return s.ledger.Delete(ctx, id)
}

func (s *VaccineBookingService) List(ctx context.Context) ([]model.VaccineBooking, error) {
	return s.ledger.List(ctx)
}

// History lists every dose recorded for a national ID. Vaccination
// rows are never purged, so this is the patient's full record.
func (s *VaccineBookingService) History(ctx context.Context, nationalID string) ([]model.VaccineBooking, error) {
	return s.ledger.ListByNationalID(ctx, nationalID)
}

func (s *VaccineBookingService) Get(ctx context.Context, id int64) (model.VaccineBooking, error) {
	return s.ledger.GetByID(ctx, id)
}

// checkSlot runs the duplicate and capacity rules for one candidate
// slot. The capacity value is computed once from the requested time
// and reused for every probed alternative.
func (s *VaccineBookingService) checkSlot(ctx context.Context, date, clock, vaccine string, slot schedule.Slot, excludeID int64) error {
	dup, err := s.ledger.CountSlotVaccine(ctx, date, clock, vaccine, excludeID)
	if err != nil {
		return err
	}
	if dup > 0 {
		metrics.IncBookingConflict("vaccine", ConflictDuplicateSlot)
		return &ConflictError{Kind: ConflictDuplicateSlot}
	}

	capacity := s.rules.Capacity(slot.Hour, slot.Minute)
	hourCount, err := s.ledger.CountByHour(ctx, date, slot.Hour, excludeID)
	if err != nil {
		return err
	}
	if hourCount < capacity {
		return nil
	}

	// The hour is full. Probe later slots in step increments until the
	// clinic closes; the first one with room becomes the suggestion.
	for m := slot.MinuteOfDay() + s.rules.StepMinutes; m <= s.rules.CloseMinute; m += s.rules.StepMinutes {
		alt := schedule.ClockAt(m)
		n, err := s.ledger.CountBySlot(ctx, date, alt, excludeID)
		if err != nil {
			return err
		}
		if n < capacity {
			metrics.IncBookingConflict("vaccine", ConflictCapacity)
			return &ConflictError{Kind: ConflictCapacity, SuggestedTime: alt}
		}
	}
	metrics.IncBookingConflict("vaccine", ConflictCapacityExhausted)
	return &ConflictError{Kind: ConflictCapacityExhausted}
}

func (s *VaccineBookingService) publishCreated(ctx context.Context, b model.VaccineBooking) {
	ev := queue.BookingCreatedEvent{
		BookingID:       b.ID,
		Flow:            "vaccine",
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		PatientName:     b.PatientName,
		PatientPhone:    b.PatientPhone,
		Subject:         b.VaccineName,
		CreatedAt:       s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", b.ID).Msg("publish booking.created failed")
	}
}
