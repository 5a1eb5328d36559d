package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Comma-separated list of allowed CORS origins
		AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	// Postgres connection settings
	Database struct {
		Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
		User     string `env:"POSTGRES_USER" envDefault:"postgres"`
		Password string `env:"POSTGRES_PASSWORD" envDefault:""`
		Name     string `env:"POSTGRES_DB" envDefault:"homesight"`
		SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	}

	// External property-analysis webhook
	Analysis struct {
		WebhookURL string `env:"ANALYSIS_WEBHOOK_URL" envDefault:"http://localhost:5678/webhook/property-analysis"`

		// Hard timeout for a single analysis request (in seconds)
		TimeoutSeconds int `env:"ANALYSIS_TIMEOUT" envDefault:"120"`
	}

	// Image blob store
	Storage struct {
		BaseDir string `env:"STORAGE_DIR" envDefault:"./storage/images"`

		// Public URL prefix under which stored images are served
		PublicPrefix string `env:"STORAGE_PUBLIC_PREFIX" envDefault:"/images"`
	}

	// Geocoding cache directory (empty disables comparable distances)
	GeocodeCacheDir string `env:"GEOCODE_CACHE_DIR" envDefault:""`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
