package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/HookFox/internal/pkg/env"
)

// ErrInvalid is returned when the loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

type AppConfig struct {
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=dev test prod"`
	// RootProvider mounts one provider's webhook on "/" as well.
	RootProvider string `validate:"omitempty,oneof=polar onesignal"`
}

type DatabaseConfig struct {
	Driver   string `validate:"oneof=mysql sqlite"`
	Path     string
	User     string `validate:"required_if=Driver mysql"`
	Password string
	Host     string `validate:"required_if=Driver mysql"`
	Port     string `validate:"required_if=Driver mysql"`
	Name     string `validate:"required_if=Driver mysql"`
}

type CacheConfig struct {
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     string `validate:"required_if=Enabled true"`
	Password string
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ProviderConfig holds the signing settings of one webhook provider. An empty
// Secret is not a load error: requests fail closed until it is set.
type ProviderConfig struct {
	Secret             string
	VerifySignatures   bool
	TimestampTolerance time.Duration `validate:"gte=0"`
}

type WebhookConfig struct {
	AckCorrelationFailures bool
	AckDuplicates          bool
	BodyLimit              int `validate:"gt=0"`
	// RateLimit is the per-IP request budget per minute; 0 disables limiting.
	RateLimit int           `validate:"gte=0"`
	Timeout   time.Duration `validate:"gt=0"`
}

type MetricsConfig struct {
	User     string
	Password string
}

func (m MetricsConfig) Enabled() bool {
	return m.User != "" && m.Password != ""
}

type ArchiveConfig struct {
	Enabled         bool
	AccessKeyID     string `validate:"required_if=Enabled true"`
	SecretAccessKey string `validate:"required_if=Enabled true"`
	Region          string
	BucketName      string `validate:"required_if=Enabled true"`
	EndpointURL     string `validate:"omitempty,url"`
}

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Polar     ProviderConfig
	OneSignal ProviderConfig
	Webhook   WebhookConfig
	Metrics   MetricsConfig
	Archive   ArchiveConfig
}

// Load reads the configuration from the environment (see env.SetupEnvFile)
// and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Host:         env.GetEnv("APP_HOST", "localhost"),
			Port:         env.GetEnv("APP_PORT", "4000"),
			Env:          env.GetEnv("APP_ENV", "prod"),
			RootProvider: strings.ToLower(env.GetEnv("WEBHOOK_ROOT_PROVIDER", "")),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(env.GetEnv("DB_DRIVER", "mysql")),
			Path:     env.GetEnv("DB_PATH", "hookfox.db"),
			User:     env.GetEnv("DB_USER", ""),
			Password: env.GetEnv("DB_PASSWORD", ""),
			Host:     env.GetEnv("DB_HOST", "localhost"),
			Port:     env.GetEnv("DB_PORT", "3306"),
			Name:     env.GetEnv("DB_NAME", ""),
		},
		Cache: CacheConfig{
			Enabled:  env.GetBool("CACHE_ENABLED", false),
			Host:     env.GetEnv("CACHE_HOST", "localhost"),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		Polar: ProviderConfig{
			Secret:             env.GetEnv("POLAR_WEBHOOK_SECRET", ""),
			VerifySignatures:   env.GetBool("POLAR_ENABLE_SIGNATURE_VERIFICATION", true),
			TimestampTolerance: env.GetDuration("POLAR_WEBHOOK_TOLERANCE", 0),
		},
		OneSignal: ProviderConfig{
			Secret:           env.GetEnv("ONESIGNAL_WEBHOOK_SECRET", ""),
			VerifySignatures: env.GetBool("ONESIGNAL_ENABLE_SIGNATURE_VERIFICATION", true),
		},
		Webhook: WebhookConfig{
			AckCorrelationFailures: env.GetBool("WEBHOOK_ACK_CORRELATION_FAILURES", false),
			AckDuplicates:          env.GetBool("WEBHOOK_ACK_DUPLICATES", false),
			BodyLimit:              env.GetInt("WEBHOOK_BODY_LIMIT", 1<<20),
			RateLimit:              env.GetInt("WEBHOOK_RATE_LIMIT", 120),
			Timeout:                env.GetDuration("WEBHOOK_TIMEOUT", 15*time.Second),
		},
		Metrics: MetricsConfig{
			User:     env.GetEnv("METRICS_USER", ""),
			Password: env.GetEnv("METRICS_PASSWORD", ""),
		},
		Archive: ArchiveConfig{
			Enabled:         env.GetBool("S3_ARCHIVE_ENABLED", false),
			AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
			Region:          env.GetEnv("S3_REGION", "us-east-1"),
			BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
			EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}
