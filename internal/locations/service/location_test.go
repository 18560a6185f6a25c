package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicbook/internal/locations/validator"
	"clinicbook/pkg/config"
	mongotx "clinicbook/pkg/db/mongo"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type mockLocationRepository struct {
	createFunc   func(ctx context.Context, loc *model.Location) error
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Location, error)
	findByIDFunc func(ctx context.Context, id string) (*model.Location, error)
	searchFunc   func(ctx context.Context, city string, labels []string, limit int, offset int64) ([]*model.Location, error)
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockLocationRepository) Create(ctx context.Context, loc *model.Location) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, loc)
	}
	return nil
}

func (m *mockLocationRepository) FindByID(ctx context.Context, id string) (*model.Location, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLocationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Location, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Location{}, nil
}

func (m *mockLocationRepository) Update(ctx context.Context, id string, loc *model.Location) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockLocationRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockLocationRepository) Search(ctx context.Context, city string, labels []string, limit int, offset int64) ([]*model.Location, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, city, labels, limit, offset)
	}
	return []*model.Location{}, nil
}

func (m *mockLocationRepository) CountSearch(ctx context.Context, city string, labels []string) (int64, error) {
	return 0, nil
}

func (m *mockLocationRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockLocationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	// The mock runs the transaction body on the plain context.
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

func testValidator(t *testing.T) *validator.LocationValidator {
	t.Helper()
	v, err := validator.NewLocationValidator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	return v
}

func validLocation() *model.Location {
	return &model.Location{
		Name:    "Downtown Clinic",
		City:    "new york",
		Address: "1 Main St",
		Phone:   "+12125551234",
		Treatments: []model.Treatment{
			{Name: "Consultation", DurationMinutes: 30},
		},
	}
}

func TestCreateAssignsTreatmentIDs(t *testing.T) {
	var created *model.Location
	mockRepo := &mockLocationRepository{
		createFunc: func(ctx context.Context, loc *model.Location) error {
			created = loc
			return nil
		},
	}

	svc := NewLocationService(mockRepo, testValidator(t), testConfig(t))

	loc := validLocation()
	if err := svc.Create(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("repository Create was not called")
	}
	if created.Treatments[0].ID == "" {
		t.Error("expected treatment ID to be assigned")
	}
	if !created.Active {
		t.Error("expected new location to be active")
	}
}

func TestCreateRejectsInvalidLocation(t *testing.T) {
	svc := NewLocationService(&mockLocationRepository{}, testValidator(t), testConfig(t))

	loc := validLocation()
	loc.Phone = "not-a-phone"

	err := svc.Create(context.Background(), loc)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	mockRepo := &mockLocationRepository{
		searchFunc: func(ctx context.Context, city string, labels []string, limit int, offset int64) ([]*model.Location, error) {
			return []*model.Location{
				{ID: "64f000000000000000000001", Name: "Downtown Clinic", Address: "1 Main St"},
			}, nil
		},
	}

	svc := NewLocationService(mockRepo, testValidator(t), testConfig(t))

	err := svc.Create(context.Background(), validLocation())
	if err == nil {
		t.Fatal("expected conflict error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestGetAllRunsCountAndFindConcurrently(t *testing.T) {
	mockRepo := &mockLocationRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Location, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Location{
				{ID: "1", Name: "Clinic 1"},
				{ID: "2", Name: "Clinic 2"},
			}, nil
		},
	}

	svc := NewLocationService(mockRepo, testValidator(t), testConfig(t))

	locations, count, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count 42, got %d", count)
	}
	if len(locations) != 2 {
		t.Errorf("expected 2 locations, got %d", len(locations))
	}
}

func TestSearchRequiresCriteria(t *testing.T) {
	svc := NewLocationService(&mockLocationRepository{}, testValidator(t), testConfig(t))

	_, _, err := svc.Search(context.Background(), "", nil, 10, 0)
	if err == nil {
		t.Fatal("expected error for empty criteria")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}
