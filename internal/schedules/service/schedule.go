package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	scheduleerrors "clinicbook/internal/schedules/errors"
	"clinicbook/internal/schedules/repository"
	"clinicbook/internal/schedules/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
)

type ScheduleService interface {
	Create(ctx context.Context, sc *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	GetByLocationID(ctx context.Context, locationID string) (*model.Schedule, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, int64, error)
	Update(ctx context.Context, id string, updates *model.ScheduleUpdate) error
	Delete(ctx context.Context, id string) error

	AddOverride(ctx context.Context, id string, override *model.DateOverride) (*model.Schedule, error)
	RemoveOverride(ctx context.Context, id string, overrideID string) error
}

type scheduleService struct {
	repo      repository.ScheduleRepository
	validator *validator.ScheduleValidator
	cfg       *config.Config
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	validator *validator.ScheduleValidator,
	cfg *config.Config,
) ScheduleService {
	return &scheduleService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *scheduleService) Create(ctx context.Context, sc *model.Schedule) error {
	s.applyDefaults(sc)

	if err := s.validator.Validate(sc); err != nil {
		s.cfg.Log.Warn("Schedule validation failed",
			"location_id", sc.LocationID,
			"error", err,
		)
		return apperrors.Validation("Schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return s.repo.Create(sessCtx, sc)
	})
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrDuplicateLocation) {
			return apperrors.Conflict("A schedule already exists for this location")
		}
		s.cfg.Log.Error("Failed to create schedule",
			"location_id", sc.LocationID,
			"error", err,
		)
		return apperrors.Internal("Failed to create schedule", err)
	}

	s.cfg.Log.Info("Schedule created successfully",
		"id", sc.ID,
		"location_id", sc.LocationID,
		"overrides", len(sc.Overrides),
	)
	return nil
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id)
	}

	return sc, nil
}

func (s *scheduleService) GetByLocationID(ctx context.Context, locationID string) (*model.Schedule, error) {
	if locationID == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}

	sc, err := s.repo.FindByLocationID(ctx, locationID)
	if err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			return nil, apperrors.NotFound("No schedule configured for location " + locationID)
		}
		s.cfg.Log.Error("Failed to get schedule by location",
			"location_id", locationID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve schedule", err)
	}

	return sc, nil
}

func (s *scheduleService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Schedule, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var schedules []*model.Schedule
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
			s.cfg.Log.Error("Failed to count schedules", "error", err)
			errCount = apperrors.Internal("Failed to count schedules", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		schedules, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all schedules",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve schedules", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return schedules, count, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, updates *model.ScheduleUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}
	if updates.Weekly == nil {
		return apperrors.InvalidInput("Nothing to update")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateLookupError(err, id)
	}

	merged := *existing
	merged.Weekly = *updates.Weekly

	if err := s.validator.Validate(&merged); err != nil {
		s.cfg.Log.Warn("Schedule validation failed", "id", id, "error", err)
		return apperrors.Validation("Schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update schedule", "id", id, "error", err)
		return apperrors.Internal("Failed to update schedule", err)
	}

	s.cfg.Log.Info("Schedule updated successfully", "id", id)

	return nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Schedule", id)
		}
		if errors.Is(err, scheduleerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid schedule ID format")
		}
		s.cfg.Log.Error("Failed to delete schedule", "id", id, "error", err)
		return apperrors.Internal("Failed to delete schedule", err)
	}

	s.cfg.Log.Info("Schedule deleted successfully", "id", id)

	return nil
}

// AddOverride appends a date override inside a transaction so concurrent
// edits cannot drop each other's entries.
func (s *scheduleService) AddOverride(ctx context.Context, id string, override *model.DateOverride) (*model.Schedule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Schedule ID cannot be empty")
	}

	if override.ID == "" {
		override.ID = uuid.New().String()
	}

	var updated *model.Schedule
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return err
		}

		merged := *existing
		merged.Overrides = append(append([]model.DateOverride{}, existing.Overrides...), *override)

		if err := s.validator.Validate(&merged); err != nil {
			return apperrors.Validation("Override validation failed", map[string]any{
				"error": err.Error(),
			})
		}

		if _, err := s.repo.Update(sessCtx, id, &merged); err != nil {
			return err
		}

		updated = &merged
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		translated := s.translateLookupError(err, id)
		s.cfg.Log.Error("Failed to add schedule override", "id", id, "error", err)
		return nil, translated
	}

	s.cfg.Log.Info("Schedule override added",
		"id", id,
		"override_id", override.ID,
		"start_date", override.StartDate,
		"end_date", override.EndDate,
		"closed", override.Closed,
	)

	return updated, nil
}

func (s *scheduleService) RemoveOverride(ctx context.Context, id string, overrideID string) error {
	if id == "" {
		return apperrors.InvalidInput("Schedule ID cannot be empty")
	}
	if overrideID == "" {
		return apperrors.InvalidInput("Override ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return err
		}

		remaining := make([]model.DateOverride, 0, len(existing.Overrides))
		for _, o := range existing.Overrides {
			if o.ID != overrideID {
				remaining = append(remaining, o)
			}
		}

		if len(remaining) == len(existing.Overrides) {
			return apperrors.NotFoundWithID("Override", overrideID)
		}

		merged := *existing
		merged.Overrides = remaining

		_, err = s.repo.Update(sessCtx, id, &merged)
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to remove schedule override",
			"id", id,
			"override_id", overrideID,
			"error", err,
		)
		return s.translateLookupError(err, id)
	}

	s.cfg.Log.Info("Schedule override removed", "id", id, "override_id", overrideID)

	return nil
}

func (s *scheduleService) applyDefaults(sc *model.Schedule) {
	for i := range sc.Overrides {
		if sc.Overrides[i].ID == "" {
			sc.Overrides[i].ID = uuid.New().String()
		}
	}
}

func (s *scheduleService) translateLookupError(err error, id string) error {
	if errors.Is(err, scheduleerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Schedule", id)
	}
	if errors.Is(err, scheduleerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid schedule ID format")
	}
	s.cfg.Log.Error("Schedule lookup failed", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve schedule", err)
}
