package config

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv                = "PROMO_APP_ENV"
	EnvHTTPPort              = "PROMO_HTTP_PORT"
	EnvTimezone              = "PROMO_TIMEZONE"
	EnvRedisAddr             = "PROMO_REDIS_ADDR"
	EnvPreviewSampleQuantity = "PROMO_PREVIEW_SAMPLE_QUANTITY"
	EnvSpannerDatabaseID     = "PROMO_SPANNER_DATABASE_ID"
	EnvOutboxFailedRetention = "PROMO_OUTBOX_FAILED_RETENTION"
)
