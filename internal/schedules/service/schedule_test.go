package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	scheduleerrors "clinicbook/internal/schedules/errors"
	"clinicbook/internal/schedules/validator"
	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type mockScheduleRepository struct {
	byID    map[string]*model.Schedule
	updated *model.Schedule
}

func newMockScheduleRepository(schedules ...*model.Schedule) *mockScheduleRepository {
	m := &mockScheduleRepository{byID: make(map[string]*model.Schedule)}
	for _, sc := range schedules {
		m.byID[sc.ID] = sc
	}
	return m
}

func (m *mockScheduleRepository) Create(ctx context.Context, sc *model.Schedule) error {
	for _, existing := range m.byID {
		if existing.LocationID == sc.LocationID {
			return fmt.Errorf("%w: %s", scheduleerrors.ErrDuplicateLocation, sc.LocationID)
		}
	}
	sc.ID = fmt.Sprintf("64f00000000000000000%04d", len(m.byID)+1)
	m.byID[sc.ID] = sc
	return nil
}

func (m *mockScheduleRepository) FindByID(ctx context.Context, id string) (*model.Schedule, error) {
	sc, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scheduleerrors.ErrNotFound, id)
	}
	copied := *sc
	return &copied, nil
}

func (m *mockScheduleRepository) FindByLocationID(ctx context.Context, locationID string) (*model.Schedule, error) {
	for _, sc := range m.byID {
		if sc.LocationID == locationID {
			copied := *sc
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: location %s", scheduleerrors.ErrNotFound, locationID)
}

func (m *mockScheduleRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, error) {
	var out []*model.Schedule
	for _, sc := range m.byID {
		out = append(out, sc)
	}
	return out, nil
}

func (m *mockScheduleRepository) Update(ctx context.Context, id string, sc *model.Schedule) (*mongo.UpdateResult, error) {
	if _, ok := m.byID[id]; !ok {
		return nil, fmt.Errorf("%w: %s", scheduleerrors.ErrNotFound, id)
	}
	copied := *sc
	m.byID[id] = &copied
	m.updated = &copied
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrNotFound, id)
	}
	delete(m.byID, id)
	return nil
}

func (m *mockScheduleRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *mockScheduleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
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
	}
}

func testValidator(t *testing.T) *validator.ScheduleValidator {
	t.Helper()
	v, err := validator.NewScheduleValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	return v
}

func storedSchedule() *model.Schedule {
	return &model.Schedule{
		ID:         "64f000000000000000000001",
		LocationID: "64f000000000000000000009",
		Weekly: model.WeeklyHours{
			Monday: model.DayHours{
				Enabled: true,
				Windows: []model.TimeWindow{{Start: "09:00", End: "17:00"}},
			},
		},
	}
}

func TestCreateRejectsSecondScheduleForLocation(t *testing.T) {
	repo := newMockScheduleRepository(storedSchedule())
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	dup := &model.Schedule{
		LocationID: "64f000000000000000000009",
		Weekly:     storedSchedule().Weekly,
	}

	err := svc.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestUpdateReplacesWeeklyHours(t *testing.T) {
	repo := newMockScheduleRepository(storedSchedule())
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	weekly := model.WeeklyHours{
		Tuesday: model.DayHours{
			Enabled: true,
			Windows: []model.TimeWindow{{Start: "10:00", End: "14:00"}},
		},
	}

	err := svc.Update(context.Background(), "64f000000000000000000001", &model.ScheduleUpdate{Weekly: &weekly})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updated == nil {
		t.Fatal("repository Update was not called")
	}
	if !repo.updated.Weekly.Tuesday.Enabled || repo.updated.Weekly.Monday.Enabled {
		t.Error("weekly hours were not replaced")
	}
}

func TestUpdateRejectsInvertedWindow(t *testing.T) {
	repo := newMockScheduleRepository(storedSchedule())
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	weekly := model.WeeklyHours{
		Monday: model.DayHours{
			Enabled: true,
			Windows: []model.TimeWindow{{Start: "17:00", End: "09:00"}},
		},
	}

	err := svc.Update(context.Background(), "64f000000000000000000001", &model.ScheduleUpdate{Weekly: &weekly})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestAddOverrideAssignsIDAndPersists(t *testing.T) {
	repo := newMockScheduleRepository(storedSchedule())
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	override := &model.DateOverride{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Closed:    true,
		Reason:    "maintenance",
	}

	updated, err := svc.AddOverride(context.Background(), "64f000000000000000000001", override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if override.ID == "" {
		t.Error("expected override ID to be assigned")
	}
	if len(updated.Overrides) != 1 {
		t.Fatalf("expected 1 override, got %d", len(updated.Overrides))
	}
	if updated.Overrides[0].Reason != "maintenance" {
		t.Errorf("unexpected override persisted: %+v", updated.Overrides[0])
	}
}

func TestAddOverrideRejectsInvertedRange(t *testing.T) {
	repo := newMockScheduleRepository(storedSchedule())
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	override := &model.DateOverride{
		StartDate: "2026-09-10",
		EndDate:   "2026-09-01",
		Closed:    true,
	}

	_, err := svc.AddOverride(context.Background(), "64f000000000000000000001", override)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestRemoveOverride(t *testing.T) {
	sc := storedSchedule()
	sc.Overrides = []model.DateOverride{
		{ID: "11111111-1111-4111-8111-111111111111", StartDate: "2026-09-01", EndDate: "2026-09-01", Closed: true},
	}
	repo := newMockScheduleRepository(sc)
	svc := NewScheduleService(repo, testValidator(t), testConfig(t))

	err := svc.RemoveOverride(context.Background(), sc.ID, "11111111-1111-4111-8111-111111111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.byID[sc.ID].Overrides) != 0 {
		t.Error("override was not removed")
	}

	err = svc.RemoveOverride(context.Background(), sc.ID, "missing")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}
