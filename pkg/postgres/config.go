package postgres

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config holds the configuration for the Postgres client. If DatabaseURL is
// set it is used verbatim as the connection string (the hosting environment
// supplies it together with the privileged credential); otherwise the
// discrete fields are assembled into one.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	Database string `env:"POSTGRES_DB" envDefault:"charity"`
	Username string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:""`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	MaxOpenConns    int `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"5"`
	MaxIdleConns    int `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"10"` // minutes
}

// Load loads Postgres configuration from environment variables
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		// Create a temporary logger for error reporting during config loading
		logger, logErr := zap.NewProduction()
		if logErr == nil {
			logger.Sugar().Errorw("failed to parse postgres config", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "failed to parse postgres config: %v\n", err)
		}
		os.Exit(1)
	}
	return cfg
}

// DSN returns the lib/pq connection string for this configuration.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode)
}
