package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// User roles. "renter" is the default membership role, "owner" holds the
// privileged role: schedule maintenance, cancel any booking, manage users.
const (
	RoleRenter = "renter"
	RoleOwner  = "owner"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// ScheduleLockKey is the advisory lock key serializing every
// check-then-insert on the shared aircraft schedule. One aircraft,
// one key.
const ScheduleLockKey int64 = 7_340_001

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
)

// Asynq task types
const (
	TaskBookingCreated = "booking:created"
)

// Oil log bounds: a top-up beyond 8 quarts is a data-entry error for
// this airframe.
const (
	OilQuartsMax = 8.0
)
