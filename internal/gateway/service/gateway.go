package service

import (
	"context"

	"clinicbook/internal/availability"
	"clinicbook/internal/gateway/core"
	"clinicbook/internal/gateway/flows"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/timeutil"
)

type GatewayService interface {
	DaySlots(ctx context.Context, locationID, date, treatmentID string) ([]availability.Slot, error)
	SelectableDays(ctx context.Context, locationID, from string, days int) ([]flows.SelectableDay, error)
	Book(ctx context.Context, appointment *model.Appointment, headers map[string]string) (*model.Appointment, error)

	Stop()
}

type gatewayService struct {
	engine *core.Engine
	deps   *core.Deps
	cache  *availability.SlotCache
	cfg    *config.Config
}

func NewGatewayService(cfg *config.Config) GatewayService {
	return &gatewayService{
		engine: core.NewEngine(
			flows.DaySlotsFlow{},
			flows.SelectableDaysFlow{},
			flows.BookAppointmentFlow{},
		),
		deps: &core.Deps{
			Client: cfg.Client,
			Calc:   availability.NewCalculator(cfg.Location()),
			Cfg:    cfg,
		},
		cache: availability.NewSlotCache(cfg.SlotCacheSize, cfg.SlotCacheTTL),
		cfg:   cfg,
	}
}

// DaySlots returns the slot list for one location, date and treatment,
// served from the bounded cache when fresh.
func (s *gatewayService) DaySlots(ctx context.Context, locationID, date, treatmentID string) ([]availability.Slot, error) {
	if locationID == "" || date == "" || treatmentID == "" {
		return nil, apperrors.InvalidInput("location_id, date and treatment_id are required")
	}
	if !timeutil.IsValidDay(date) {
		return nil, apperrors.InvalidInput("date must be a YYYY-MM-DD date")
	}

	cacheKey := availability.Key(locationID, date, treatmentID)
	if slots, ok := s.cache.Get(cacheKey); ok {
		s.cfg.Log.Debug("Slot cache hit", "key", cacheKey)
		return slots, nil
	}

	fc := core.NewFlowContext(ctx, map[string]any{
		flows.LOCATION_ID:  locationID,
		flows.DATE:         date,
		flows.TREATMENT_ID: treatmentID,
	}, s.deps)

	if err := s.engine.Run(flows.DaySlotsFlowName, fc); err != nil {
		s.cfg.Log.Error("Day slots flow failed",
			"location_id", locationID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	slots := fc.Output[flows.OUT_SLOTS].([]availability.Slot)
	s.cache.Set(cacheKey, slots)

	return slots, nil
}

func (s *gatewayService) SelectableDays(ctx context.Context, locationID, from string, days int) ([]flows.SelectableDay, error) {
	if locationID == "" {
		return nil, apperrors.InvalidInput("location_id is required")
	}

	fc := core.NewFlowContext(ctx, map[string]any{
		flows.LOCATION_ID: locationID,
		flows.FROM:        from,
		flows.DAYS:        days,
	}, s.deps)

	if err := s.engine.Run(flows.SelectableDaysFlowName, fc); err != nil {
		s.cfg.Log.Error("Selectable days flow failed",
			"location_id", locationID,
			"from", from,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	return fc.Output[flows.OUT_DAYS].([]flows.SelectableDay), nil
}

// Book runs the booking flow and drops the location's cached slot lists so
// the next availability lookup sees the new appointment.
func (s *gatewayService) Book(ctx context.Context, appointment *model.Appointment, headers map[string]string) (*model.Appointment, error) {
	if appointment.LocationID == "" || appointment.TreatmentID == "" {
		return nil, apperrors.InvalidInput("location_id and treatment_id are required")
	}
	if !timeutil.IsValidDay(appointment.Date) {
		return nil, apperrors.InvalidInput("date must be a YYYY-MM-DD date")
	}
	if !timeutil.IsValidClock(appointment.Start) {
		return nil, apperrors.InvalidInput("start must be an HH:MM time")
	}

	fc := core.NewFlowContext(ctx, map[string]any{
		flows.LOCATION_ID:  appointment.LocationID,
		flows.TREATMENT_ID: appointment.TreatmentID,
		flows.DATE:         appointment.Date,
		flows.APPOINTMENT:  appointment,
		flows.HEADERS:      headers,
	}, s.deps)

	if err := s.engine.Run(flows.BookAppointmentFlowName, fc); err != nil {
		s.cfg.Log.Error("Book appointment flow failed",
			"location_id", appointment.LocationID,
			"date", appointment.Date,
			"start", appointment.Start,
			"error", err,
		)
		return nil, apperrors.AsAppError(err)
	}

	s.cache.Invalidate(appointment.LocationID)

	created := fc.Output[flows.OUT_APPOINTMENT].(*model.Appointment)
	s.cfg.Log.Info("Appointment booked via gateway",
		"id", created.ID,
		"location_id", created.LocationID,
		"date", created.Date,
		"start", created.Start,
	)

	return created, nil
}

func (s *gatewayService) Stop() {
	s.cache.Stop()
}
