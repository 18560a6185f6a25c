package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	appointmenterrors "clinicbook/internal/appointments/errors"
	"clinicbook/internal/appointments/repository"
	"clinicbook/internal/appointments/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/kafka"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"
)

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables event emission entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AppointmentService interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Confirm(ctx context.Context, id string) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)

	Search(ctx context.Context, locationID, from, to, phone string, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	locks     repository.LockRepository
	validator *validator.AppointmentValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	locks repository.LockRepository,
	validator *validator.AppointmentValidator,
	publisher EventPublisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		locks:     locks,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create books one slot. A short-lived lock on the slot coordinate serializes
// concurrent bookings of the same slot across instances; the duplicate check
// inside the transaction then sees any booking that won the race.
func (s *appointmentService) Create(ctx context.Context, appointment *model.Appointment) error {
	s.sanitize(appointment)
	if appointment.Status == "" {
		appointment.Status = model.StatusPending
	}

	if err := s.validator.Validate(appointment); err != nil {
		s.cfg.Log.Warn("Appointment validation failed",
			"location_id", appointment.LocationID,
			"date", appointment.Date,
			"start", appointment.Start,
			"error", err,
		)
		return apperrors.Validation("Appointment validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	lockKey := repository.SlotLockKey(appointment.LocationID, appointment.Date, appointment.Start)
	if err := s.locks.Acquire(ctx, lockKey); err != nil {
		if errors.Is(err, appointmenterrors.ErrSlotLocked) {
			return apperrors.Conflict("This slot is currently being booked, please try again")
		}
		s.cfg.Log.Error("Failed to acquire slot lock", "key", lockKey, "error", err)
		return apperrors.Internal("Failed to reserve slot", err)
	}
	defer func() {
		// Best effort. The TTL index reaps the lock if this fails.
		if err := s.locks.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "key", lockKey, "error", err)
		}
	}()

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		occupying, err := s.repo.FindActiveBySlot(sessCtx, appointment.LocationID, appointment.Date, appointment.Start)
		if err != nil {
			return fmt.Errorf("failed to check slot occupancy: %w", err)
		}
		if len(occupying) > 0 {
			return apperrors.Conflict(fmt.Sprintf(
				"Slot %s %s is already booked at this location",
				appointment.Date, appointment.Start,
			))
		}

		if err := s.repo.Create(sessCtx, appointment); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to book appointment",
			"location_id", appointment.LocationID,
			"date", appointment.Date,
			"start", appointment.Start,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Appointment booked successfully",
		"id", appointment.ID,
		"location_id", appointment.LocationID,
		"date", appointment.Date,
		"start", appointment.Start,
		"treatment", appointment.TreatmentName,
	)

	s.publishEvent(ctx, kafka.EventAppointmentCreated, appointment)

	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id)
	}

	return appointment, nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		appointments, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all appointments",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve appointments", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

func (s *appointmentService) Confirm(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.transitionStatus(ctx, id, model.StatusConfirmed, func(a *model.Appointment) error {
		if a.Status == model.StatusConfirmed {
			return nil
		}
		if a.Status != model.StatusPending {
			return apperrors.Conflict(fmt.Sprintf(
				"Appointment in status %q cannot be confirmed", a.Status,
			))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Appointment confirmed", "id", id)
	s.publishEvent(ctx, kafka.EventAppointmentConfirmed, appointment)

	return appointment, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.transitionStatus(ctx, id, model.StatusCancelled, func(a *model.Appointment) error {
		if !a.CanBeCancelled() {
			return apperrors.Conflict(fmt.Sprintf(
				"Appointment in status %q cannot be cancelled", a.Status,
			))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Appointment cancelled", "id", id)
	s.publishEvent(ctx, kafka.EventAppointmentCancelled, appointment)

	return appointment, nil
}

func (s *appointmentService) Search(ctx context.Context, locationID, from, to, phone string, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if locationID == "" {
		return nil, 0, apperrors.InvalidInput("location_id is required")
	}
	if phone != "" {
		phone = sanitizer.NormalizePhone(phone)
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.CountSearch(ctx, locationID, from, to, phone)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointment search", "location_id", locationID, "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		appointments, err = s.repo.Search(ctx, locationID, from, to, phone, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search appointments", "location_id", locationID, "error", err)
			errFind = apperrors.Internal("Failed to search appointments", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

// transitionStatus loads, checks and updates one appointment inside a
// transaction so a concurrent transition cannot interleave.
func (s *appointmentService) transitionStatus(ctx context.Context, id string, status string, check func(*model.Appointment) error) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	var appointment *model.Appointment
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		found, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.translateLookupError(err, id)
		}

		if err := check(found); err != nil {
			return err
		}

		if found.Status != status {
			if _, err := s.repo.UpdateStatus(sessCtx, id, status); err != nil {
				return s.translateLookupError(err, id)
			}
			found.Status = status
		}

		appointment = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *appointmentService) translateLookupError(err error, id string) error {
	if errors.Is(err, appointmenterrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Appointment", id)
	}
	if errors.Is(err, appointmenterrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid appointment ID format")
	}
	s.cfg.Log.Error("Appointment lookup failed", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve appointment", err)
}

func (s *appointmentService) sanitize(appointment *model.Appointment) {
	appointment.PatientName = sanitizer.NormalizeName(appointment.PatientName)
	appointment.PatientPhone = sanitizer.NormalizePhone(appointment.PatientPhone)
	appointment.TreatmentName = sanitizer.NormalizeName(appointment.TreatmentName)
	appointment.Notes = sanitizer.TrimAndNormalize(appointment.Notes)
}

// publishEvent emits an appointment event keyed by location so events for
// one clinic stay ordered. Publish failures are logged, never surfaced; the
// booking already committed.
func (s *appointmentService) publishEvent(ctx context.Context, eventType string, appointment *model.Appointment) {
	if s.publisher == nil {
		return
	}

	event := kafka.AppointmentEvent{
		EventType:     eventType,
		AppointmentID: appointment.ID,
		LocationID:    appointment.LocationID,
		Appointment:   appointment,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	msg := kafka.NewMessage().
		WithKey(appointment.LocationID).
		WithValue(event).
		WithEventType(eventType).
		WithSource("appointments").
		Build()

	if err := s.publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		s.cfg.Log.Error("Failed to publish appointment event",
			"event_type", eventType,
			"appointment_id", appointment.ID,
			"error", err,
		)
	}
}
