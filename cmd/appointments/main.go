package main

import (
	"clinicbook/internal/appointments/handler"
	"clinicbook/internal/appointments/repository"
	"clinicbook/internal/appointments/service"
	"clinicbook/internal/appointments/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
	"clinicbook/pkg/kafka"
	kafka_config "clinicbook/pkg/kafka/config"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")

	producer := initProducer(cfg)
	appointmentService, sweeper := initServices(cfg, producer)

	if err := sweeper.Start(); err != nil {
		cfg.Log.Fatal("Failed to start appointment sweeper", "error", err)
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.OnShutdown(sweeper.Stop)
	if producer != nil {
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		})
	}
	serverApp.OnShutdown(cfg.GracefulShutdown)
	serverApp.Run()
}

// initProducer builds the appointment event producer. A broken Kafka
// configuration degrades to running without events rather than refusing to
// serve bookings.
func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Error("Invalid Kafka configuration, events disabled", "error", err)
		return nil
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicAppointments, kafka.TopicAppointmentsDLQ, cfg.Log)
	if err != nil {
		cfg.Log.Error("Failed to build Kafka producer, events disabled", "error", err)
		return nil
	}

	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) (service.AppointmentService, *service.Sweeper) {
	appointmentValidator, err := validator.NewAppointmentValidator()
	if err != nil {
		cfg.Log.Fatal("Failed to build appointment validator", "error", err)
	}

	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	lockRepo := repository.NewMongoLockRepository(cfg)

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		appointmentValidator,
		publisher,
		cfg,
	)
	sweeper := service.NewSweeper(appointmentRepo, lockRepo, cfg)

	cfg.Log.Info("Appointments service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService, sweeper
}
