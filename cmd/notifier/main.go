package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"clinicbook/internal/notifier"
	"clinicbook/pkg/config"
	"clinicbook/pkg/kafka"
	kafka_config "clinicbook/pkg/kafka/config"
	"clinicbook/pkg/logger"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "clinicbook-notifier"
)

func main() {
	log := logger.New(logger.Config{
		Level:   config.DefaultLogLevel,
		Format:  logger.FormatJSON,
		Service: ServiceName,
	})

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(log.Info)

	dispatcher := notifier.NewDispatcher(log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafka.TopicAppointments,
		ConsumerGroup,
		kafka.TopicAppointmentsDLQ,
		dispatcher.Handle,
		log,
	)
	if err != nil {
		log.Fatal("Failed to build Kafka consumer", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Notifier consuming appointment events", "topic", kafka.TopicAppointments, "group", ConsumerGroup)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}

	log.Info("Notifier stopped")
}
