package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		App       App
		HTTP      HTTP
		Log       Log
		S3        S3
		Replicate Replicate
		Sweeper   Sweeper
		Swagger   Swagger
	}

	App struct {
		// BaseURL is used to compose shareable /view links.
		BaseURL string `env:"APP_BASE_URL,required"`
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		Region         string        `env:"S3_REGION" envDefault:"auto"`
		UsePathStyle   bool          `env:"S3_USE_PATH_STYLE" envDefault:"false"`
		PublicURL      string        `env:"S3_PUBLIC_URL"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Replicate struct {
		APIToken        string        `env:"REPLICATE_API_TOKEN,required"`
		BaseURL         string        `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com/v1"`
		Model           string        `env:"REPLICATE_MODEL" envDefault:"bytedance/seedream-4.5"`
		GenerateTimeout time.Duration `env:"REPLICATE_GENERATE_TIMEOUT" envDefault:"2m"`
		PollInterval    time.Duration `env:"REPLICATE_POLL_INTERVAL" envDefault:"2s"`
	}

	Sweeper struct {
		Enabled         bool          `env:"SWEEPER_ENABLED" envDefault:"true"`
		Interval        time.Duration `env:"SWEEPER_INTERVAL" envDefault:"1h"`
		GracePeriod     time.Duration `env:"SWEEPER_GRACE_PERIOD" envDefault:"30m"`
		ShutdownTimeout time.Duration `env:"SWEEPER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
