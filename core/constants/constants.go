package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 5 * time.Second

	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Echo context keys
const (
	ContextTokenData = "token_data"
	ContextActor     = "actor"
)

// Redis keys
const (
	RedisKeyApplyLock        = "apply:lock:"
	RedisKeyApplyRateLimit   = "apply:rate:"
	RedisKeyOpportunityViews = "opportunity:views:"

	ApplyLockTTL         = 15 * time.Second
	ApplyRateLimit       = 5
	ApplyRateLimitWindow = time.Minute

	// Buffered views are written to Postgres once this many accumulate.
	ViewFlushThreshold = 20
)

// Asynq task types
const (
	TaskNotifyApplicationCreated  = "notification:application_created"
	TaskNotifyApplicationReviewed = "notification:application_reviewed"
	TaskNotifyOpportunityStatus   = "notification:opportunity_status"
	TaskNotifyApplicationMessage  = "notification:application_message"
)
