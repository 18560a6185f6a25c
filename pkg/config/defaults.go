package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "clinicbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// DefaultReferenceTimeZone is the single zone every date and clock
	// comparison runs in, regardless of where servers or patients sit.
	DefaultReferenceTimeZone = "America/New_York"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultSlotStepMinutes is the candidate step used only when no
	// treatment duration is known. Slot generation normally steps by the
	// treatment duration itself.
	DefaultSlotStepMinutes = 30

	DefaultSlotCacheSize = 512
	DefaultSlotCacheTTL  = 30 * time.Second

	DefaultLockTTL = 10 * time.Second

	DefaultLocationsURL    = "http://localhost:8081"
	DefaultSchedulesURL    = "http://localhost:8082"
	DefaultAppointmentsURL = "http://localhost:8083"

	DefaultPaginationLimit = 100

	// Selectable-days lookups scan forward from a start date; the horizon
	// caps how many days a single request may cover.
	DefaultSelectableDaysHorizon = 14
	MaxSelectableDaysHorizon     = 90
)
