package client

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicbook/pkg/logger"
)

// Client bundles every outbound connection a binary may need: the shared
// Mongo client for the domain services and HTTP clients for the gateway.
// Each binary sets only what it uses.
type Client struct {
	Mongo *mongo.Client

	Locations    *LocationClient
	Schedules    *ScheduleClient
	Appointments *AppointmentClient

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	c.log = log

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := mc.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = mc
}

func (c *Client) SetLocationClient(baseURL string) {
	c.Locations = NewLocationClient(baseURL)
}

func (c *Client) SetScheduleClient(baseURL string) {
	c.Schedules = NewScheduleClient(baseURL)
}

func (c *Client) SetAppointmentClient(baseURL string) {
	c.Appointments = NewAppointmentClient(baseURL)
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Mongo.Disconnect(ctx); err != nil && c.log != nil {
		c.log.Error("Failed to disconnect MongoDB client", "error", err)
	}
}
