package main

import (
	"clinicbook/internal/schedules/handler"
	"clinicbook/internal/schedules/repository"
	"clinicbook/internal/schedules/service"
	"clinicbook/internal/schedules/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
)

const ServiceName = "schedules"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Schedules service")
	scheduleService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewScheduleHandler(scheduleService, cfg.Log))
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ScheduleService {
	scheduleValidator, err := validator.NewScheduleValidator()
	if err != nil {
		cfg.Log.Fatal("Failed to build schedule validator", "error", err)
	}
	scheduleRepo := repository.NewMongoScheduleRepository(cfg)
	scheduleService := service.NewScheduleService(
		scheduleRepo,
		scheduleValidator,
		cfg,
	)

	cfg.Log.Info("Schedules service initialized", "database", cfg.MongoDatabaseName)
	return scheduleService
}
