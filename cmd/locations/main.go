package main

import (
	"clinicbook/internal/locations/handler"
	"clinicbook/internal/locations/repository"
	"clinicbook/internal/locations/service"
	"clinicbook/internal/locations/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
)

const ServiceName = "locations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Locations service")
	locationService := initServices(cfg)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewLocationHandler(locationService, cfg.Log))
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.LocationService {
	locationValidator, err := validator.NewLocationValidator()
	if err != nil {
		cfg.Log.Fatal("Failed to build location validator", "error", err)
	}
	locationRepo := repository.NewMongoLocationRepository(cfg)
	locationService := service.NewLocationService(
		locationRepo,
		locationValidator,
		cfg,
	)

	cfg.Log.Info("Locations service initialized", "database", cfg.MongoDatabaseName)
	return locationService
}
