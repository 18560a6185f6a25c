package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	locationserrors "clinicbook/internal/locations/errors"
	"clinicbook/internal/locations/repository"
	"clinicbook/internal/locations/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"
)

type LocationService interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id string) (*model.Location, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Location, int64, error)
	Update(ctx context.Context, id string, updates *model.LocationUpdate) error
	Delete(ctx context.Context, id string) error

	Search(ctx context.Context, city string, labels []string, limit int, offset int64) ([]*model.Location, int64, error)
}

type locationService struct {
	repo      repository.LocationRepository
	validator *validator.LocationValidator
	cfg       *config.Config
}

func NewLocationService(
	repo repository.LocationRepository,
	validator *validator.LocationValidator,
	cfg *config.Config,
) LocationService {
	return &locationService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *locationService) Create(ctx context.Context, loc *model.Location) error {
	s.sanitize(loc)
	s.applyDefaults(loc)
	loc.Active = true

	if err := s.validator.Validate(loc); err != nil {
		s.cfg.Log.Warn("Location validation failed",
			"name", loc.Name,
			"city", loc.City,
			"error", err,
		)
		return apperrors.Validation("Location validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.Search(sessCtx, loc.City, nil, config.DefaultPaginationLimit, 0)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		for _, other := range existing {
			if other.Name == loc.Name && other.Address == loc.Address {
				return apperrors.Conflict(fmt.Sprintf(
					"Location with the same name and address already exists (id: %s)",
					other.ID,
				))
			}
		}

		if err := s.repo.Create(sessCtx, loc); err != nil {
			return fmt.Errorf("failed to create location: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create location",
			"name", loc.Name,
			"city", loc.City,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Location created successfully",
		"id", loc.ID,
		"name", loc.Name,
		"city", loc.City,
		"treatments", len(loc.Treatments),
	)

	return nil
}

func (s *locationService) GetByID(ctx context.Context, id string) (*model.Location, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Location ID cannot be empty")
	}

	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Location", id)
		}
		if errors.Is(err, locationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid location ID format")
		}
		s.cfg.Log.Error("Failed to get location by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve location", err)
	}

	return loc, nil
}

func (s *locationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Location, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var locations []*model.Location
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
			s.cfg.Log.Error("Failed to count locations", "error", err)
			errCount = apperrors.Internal("Failed to count locations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		locations, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all locations",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve locations", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return locations, count, nil
}

func (s *locationService) Update(ctx context.Context, id string, updates *model.LocationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Location ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Location", id)
		}
		if errors.Is(err, locationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid location ID format")
		}
		return apperrors.Internal("Failed to check location existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)
	s.applyDefaults(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Location validation failed",
			"id", id,
			"name", merged.Name,
			"error", err,
		)
		return apperrors.Validation("Location validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update location", "id", id, "error", err)
		return apperrors.Internal("Failed to update location", err)
	}

	s.cfg.Log.Info("Location updated successfully", "id", id, "name", merged.Name)

	return nil
}

func (s *locationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Location ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, locationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Location", id)
		}
		if errors.Is(err, locationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid location ID format")
		}
		s.cfg.Log.Error("Failed to delete location", "id", id, "error", err)
		return apperrors.Internal("Failed to delete location", err)
	}

	s.cfg.Log.Info("Location deleted successfully", "id", id)

	return nil
}

func (s *locationService) Search(ctx context.Context, city string, labels []string, limit int, offset int64) ([]*model.Location, int64, error) {
	if city == "" && len(labels) == 0 {
		return nil, 0, apperrors.InvalidInput("At least one of 'city' or 'labels' must be provided")
	}

	city = sanitizer.NormalizeCity(city)
	labels = sanitizer.NormalizeLabels(labels)
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var locations []*model.Location
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.CountSearch(ctx, city, labels)
		if err != nil {
			s.cfg.Log.Error("Failed to count location search", "city", city, "labels", labels, "error", err)
			errCount = apperrors.Internal("Failed to count locations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		locations, err = s.repo.Search(ctx, city, labels, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search locations", "city", city, "labels", labels, "error", err)
			errFind = apperrors.Internal("Failed to search locations", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Location search completed",
		"city", city,
		"labels", labels,
		"results_count", len(locations),
	)

	return locations, count, nil
}

func (s *locationService) sanitize(loc *model.Location) {
	loc.Name = sanitizer.NormalizeName(loc.Name)
	loc.City = sanitizer.NormalizeCity(loc.City)
	loc.Address = sanitizer.TrimAndNormalize(loc.Address)
	loc.Phone = sanitizer.NormalizePhone(loc.Phone)
	loc.Labels = sanitizer.NormalizeLabels(loc.Labels)
	for i := range loc.Treatments {
		loc.Treatments[i].Name = sanitizer.NormalizeName(loc.Treatments[i].Name)
	}
}

func (s *locationService) sanitizeUpdate(updates *model.LocationUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.City != "" {
		updates.City = sanitizer.NormalizeCity(updates.City)
	}
	if updates.Address != "" {
		updates.Address = sanitizer.TrimAndNormalize(updates.Address)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Labels != nil {
		normalized := sanitizer.NormalizeLabels(*updates.Labels)
		updates.Labels = &normalized
	}
	if updates.Treatments != nil {
		treatments := *updates.Treatments
		for i := range treatments {
			treatments[i].Name = sanitizer.NormalizeName(treatments[i].Name)
		}
	}
}

// applyDefaults assigns IDs to new embedded treatments. Treatments keep
// stable UUIDs so appointments can reference them after list edits.
func (s *locationService) applyDefaults(loc *model.Location) {
	for i := range loc.Treatments {
		if loc.Treatments[i].ID == "" {
			loc.Treatments[i].ID = uuid.New().String()
		}
	}
}

func (s *locationService) mergeUpdates(existing *model.Location, updates *model.LocationUpdate) *model.Location {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Labels != nil {
		merged.Labels = *updates.Labels
	}
	if updates.Treatments != nil {
		merged.Treatments = *updates.Treatments
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
