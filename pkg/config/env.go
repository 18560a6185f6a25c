package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvReferenceTimeZone = "REFERENCE_TIMEZONE"

	EnvSessionSecret   = "SESSION_JWT_SECRET"
	EnvSessionIssuer   = "SESSION_JWT_ISSUER"
	EnvSessionAudience = "SESSION_JWT_AUDIENCE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotStepMinutes = "SLOT_STEP_MINUTES"
	EnvSlotCacheSize   = "SLOT_CACHE_SIZE"
	EnvSlotCacheTTL    = "SLOT_CACHE_TTL"
	EnvLockTTL         = "APPOINTMENT_LOCK_TTL"

	EnvLocationsURL    = "LOCATIONS_URL"
	EnvSchedulesURL    = "SCHEDULES_URL"
	EnvAppointmentsURL = "APPOINTMENTS_URL"
)
