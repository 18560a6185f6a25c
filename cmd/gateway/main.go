package main

import (
	"clinicbook/internal/gateway/handler"
	"clinicbook/internal/gateway/service"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
)

const ServiceName = "gateway"

// The gateway holds no database connection; it orchestrates the three
// domain services over HTTP and runs the availability calculator locally.
func main() {
	cfg := config.Load(ServiceName)
	cfg.Client.SetLocationClient(cfg.LocationsURL)
	cfg.Client.SetScheduleClient(cfg.SchedulesURL)
	cfg.Client.SetAppointmentClient(cfg.AppointmentsURL)

	cfg.Log.Info("Starting Gateway service",
		"locations_url", cfg.LocationsURL,
		"schedules_url", cfg.SchedulesURL,
		"appointments_url", cfg.AppointmentsURL,
	)

	gatewayService := service.NewGatewayService(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewGatewayHandler(gatewayService, cfg.Log))
	serverApp.OnShutdown(gatewayService.Stop)
	serverApp.Run()
}
