package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	appointmenterrors "clinicbook/internal/appointments/errors"
	"clinicbook/internal/appointments/validator"
	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/kafka"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type mockAppointmentRepository struct {
	createFunc           func(ctx context.Context, a *model.Appointment) error
	findByIDFunc         func(ctx context.Context, id string) (*model.Appointment, error)
	findActiveBySlotFunc func(ctx context.Context, locationID, date, start string) ([]*model.Appointment, error)
	updateStatusFunc     func(ctx context.Context, id, status string) (*mongo.UpdateResult, error)
	searchFunc           func(ctx context.Context, locationID, from, to, phone string, limit int, offset int64) ([]*model.Appointment, error)
	countSearchFunc      func(ctx context.Context, locationID, from, to, phone string) (int64, error)
}

func (m *mockAppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, a)
	}
	a.ID = "64f000000000000000000099"
	return nil
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %s", appointmenterrors.ErrNotFound, id)
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) UpdateStatus(ctx context.Context, id, status string) (*mongo.UpdateResult, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockAppointmentRepository) Search(ctx context.Context, locationID, from, to, phone string, limit int, offset int64) ([]*model.Appointment, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, locationID, from, to, phone, limit, offset)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) CountSearch(ctx context.Context, locationID, from, to, phone string) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, locationID, from, to, phone)
	}
	return 0, nil
}

func (m *mockAppointmentRepository) FindActiveBySlot(ctx context.Context, locationID, date, start string) ([]*model.Appointment, error) {
	if m.findActiveBySlotFunc != nil {
		return m.findActiveBySlotFunc(ctx, locationID, date, start)
	}
	return nil, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) CompletePastAppointments(ctx context.Context, before string) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	acquireErr error
	acquired   []string
	released   []string
}

func (m *mockLockRepository) Acquire(ctx context.Context, key string) error {
	if m.acquireErr != nil {
		return m.acquireErr
	}
	m.acquired = append(m.acquired, key)
	return nil
}

func (m *mockLockRepository) Release(ctx context.Context, key string) error {
	m.released = append(m.released, key)
	return nil
}

func (m *mockLockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.LevelError,
			Format:  logger.FormatJSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		LockTTL:      30 * time.Second,
	}
}

func testValidator(t *testing.T) *validator.AppointmentValidator {
	t.Helper()
	v, err := validator.NewAppointmentValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	return v
}

func validAppointment() *model.Appointment {
	return &model.Appointment{
		LocationID:      "64f000000000000000000009",
		TreatmentID:     "11111111-1111-4111-8111-111111111111",
		TreatmentName:   "Dental Cleaning",
		DurationMinutes: 60,
		Date:            "2026-09-01",
		Start:           "10:00",
		PatientName:     "Jordan Smith",
		PatientPhone:    "+12125551234",
	}
}

func TestCreateBooksSlotAndPublishesEvent(t *testing.T) {
	repo := &mockAppointmentRepository{}
	locks := &mockLockRepository{}
	publisher := &mockPublisher{}
	svc := NewAppointmentService(repo, locks, testValidator(t), publisher, testConfig(t))

	appointment := validAppointment()
	if err := svc.Create(context.Background(), appointment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appointment.Status != model.StatusPending {
		t.Errorf("expected status pending, got %s", appointment.Status)
	}
	if appointment.ID == "" {
		t.Error("expected appointment ID to be assigned")
	}

	if len(locks.acquired) != 1 || len(locks.released) != 1 {
		t.Errorf("expected one acquire and one release, got %d/%d", len(locks.acquired), len(locks.released))
	}
	wantKey := "64f000000000000000000009|2026-09-01|10:00"
	if locks.acquired[0] != wantKey {
		t.Errorf("unexpected lock key: %s", locks.acquired[0])
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.published))
	}
	msg := publisher.published[0]
	if msg.Key != appointment.LocationID {
		t.Errorf("expected event keyed by location, got %s", msg.Key)
	}
	if msg.GetEventType() != kafka.EventAppointmentCreated {
		t.Errorf("unexpected event type: %s", msg.GetEventType())
	}
}

func TestCreateRejectsInvalidAppointment(t *testing.T) {
	repo := &mockAppointmentRepository{}
	locks := &mockLockRepository{}
	svc := NewAppointmentService(repo, locks, testValidator(t), nil, testConfig(t))

	appointment := validAppointment()
	appointment.PatientPhone = "not-a-phone"

	err := svc.Create(context.Background(), appointment)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if len(locks.acquired) != 0 {
		t.Error("no lock should be taken for an invalid appointment")
	}
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	existing := validAppointment()
	existing.ID = "64f000000000000000000001"
	existing.Status = model.StatusConfirmed

	repo := &mockAppointmentRepository{
		findActiveBySlotFunc: func(ctx context.Context, locationID, date, start string) ([]*model.Appointment, error) {
			return []*model.Appointment{existing}, nil
		},
	}
	locks := &mockLockRepository{}
	publisher := &mockPublisher{}
	svc := NewAppointmentService(repo, locks, testValidator(t), publisher, testConfig(t))

	err := svc.Create(context.Background(), validAppointment())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}

	if len(publisher.published) != 0 {
		t.Error("no event should be published for a failed booking")
	}
	if len(locks.released) != 1 {
		t.Error("lock should be released even when the booking fails")
	}
}

func TestCreateRejectsLockedSlot(t *testing.T) {
	repo := &mockAppointmentRepository{}
	locks := &mockLockRepository{
		acquireErr: fmt.Errorf("%w: key", appointmenterrors.ErrSlotLocked),
	}
	svc := NewAppointmentService(repo, locks, testValidator(t), nil, testConfig(t))

	err := svc.Create(context.Background(), validAppointment())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestConfirmPendingAppointment(t *testing.T) {
	stored := validAppointment()
	stored.ID = "64f000000000000000000001"
	stored.Status = model.StatusPending

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			copied := *stored
			return &copied, nil
		},
	}
	publisher := &mockPublisher{}
	svc := NewAppointmentService(repo, &mockLockRepository{}, testValidator(t), publisher, testConfig(t))

	appointment, err := svc.Confirm(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", appointment.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].GetEventType() != kafka.EventAppointmentConfirmed {
		t.Error("expected a confirmed event")
	}
}

func TestConfirmRejectsCancelledAppointment(t *testing.T) {
	stored := validAppointment()
	stored.ID = "64f000000000000000000001"
	stored.Status = model.StatusCancelled

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			copied := *stored
			return &copied, nil
		},
	}
	svc := NewAppointmentService(repo, &mockLockRepository{}, testValidator(t), nil, testConfig(t))

	_, err := svc.Confirm(context.Background(), stored.ID)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestCancelActiveAppointment(t *testing.T) {
	stored := validAppointment()
	stored.ID = "64f000000000000000000001"
	stored.Status = model.StatusConfirmed

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			copied := *stored
			return &copied, nil
		},
	}
	publisher := &mockPublisher{}
	svc := NewAppointmentService(repo, &mockLockRepository{}, testValidator(t), publisher, testConfig(t))

	appointment, err := svc.Cancel(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointment.Status != model.StatusCancelled {
		t.Errorf("expected status cancelled, got %s", appointment.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].GetEventType() != kafka.EventAppointmentCancelled {
		t.Error("expected a cancelled event")
	}
}

func TestCancelRejectsCompletedAppointment(t *testing.T) {
	stored := validAppointment()
	stored.ID = "64f000000000000000000001"
	stored.Status = model.StatusCompleted

	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			copied := *stored
			return &copied, nil
		},
	}
	svc := NewAppointmentService(repo, &mockLockRepository{}, testValidator(t), nil, testConfig(t))

	_, err := svc.Cancel(context.Background(), stored.ID)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestSearchRequiresLocation(t *testing.T) {
	svc := NewAppointmentService(&mockAppointmentRepository{}, &mockLockRepository{}, testValidator(t), nil, testConfig(t))

	_, _, err := svc.Search(context.Background(), "", "", "", "", 10, 0)
	if err == nil {
		t.Fatal("expected invalid input error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}
