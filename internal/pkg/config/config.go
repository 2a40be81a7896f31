package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // store timezones must resolve without host zoneinfo

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable the service reads.
const EnvPrefix = "PROMO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config is the full service configuration, read from the environment.
type Config struct {
	App     AppConfig
	Spanner SpannerConfig
	Redis   RedisConfig
	Preview PreviewConfig
	Outbox  OutboxConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Preview.SampleQuantity <= 0 {
		return fmt.Errorf("%s must be positive, got %d", EnvPreviewSampleQuantity, c.Preview.SampleQuantity)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%s: %w", EnvTimezone, err)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"PROMO_APP_ENV" default:"dev"`
	HTTPPort     string `envconfig:"PROMO_HTTP_PORT" default:"8080"`
	GRPCPort     string `envconfig:"PROMO_GRPC_PORT" default:"9090"`
	LogLevel     string `envconfig:"PROMO_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PROMO_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PROMO_LOG_WARN_STACK" default:"false"`

	// Timezone decides when a promotion's calendar day starts and ends.
	Timezone        string        `envconfig:"PROMO_TIMEZONE" default:"Asia/Jakarta"`
	ShutdownTimeout time.Duration `envconfig:"PROMO_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location loads the configured timezone.
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

type SpannerConfig struct {
	ProjectID  string `envconfig:"PROMO_SPANNER_PROJECT_ID" default:"test-project"`
	InstanceID string `envconfig:"PROMO_SPANNER_INSTANCE_ID" default:"dev-instance"`
	DatabaseID string `envconfig:"PROMO_SPANNER_DATABASE_ID" default:"promo-db"`
}

// Database returns the fully qualified database path.
func (s SpannerConfig) Database() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", s.ProjectID, s.InstanceID, s.DatabaseID)
}

// RedisConfig configures the product catalog cache. An empty Address
// disables caching.
type RedisConfig struct {
	Address      string        `envconfig:"PROMO_REDIS_ADDR"`
	Password     string        `envconfig:"PROMO_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMO_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"PROMO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMO_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"PROMO_REDIS_WRITE_TIMEOUT" default:"2s"`
	ProductTTL   time.Duration `envconfig:"PROMO_REDIS_PRODUCT_TTL" default:"5m"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

type PreviewConfig struct {
	// SampleQuantity is the default purchase size for buy-X-get-Y previews.
	SampleQuantity int64 `envconfig:"PROMO_PREVIEW_SAMPLE_QUANTITY" default:"6"`
}

type OutboxConfig struct {
	CompletedRetention time.Duration `envconfig:"PROMO_OUTBOX_COMPLETED_RETENTION" default:"720h"`
	FailedRetention    time.Duration `envconfig:"PROMO_OUTBOX_FAILED_RETENTION" default:"2160h"`
}
