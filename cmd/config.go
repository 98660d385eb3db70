package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required,notEmpty"`
	DBPassword string `env:"DB_PASSWORD,required,notEmpty"`
	DBName     string `env:"DB_NAME,required,notEmpty"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	JWTSecret  string `env:"JWT_SECRET"`

	// TimeZone is the planning time zone; calendar days and the current week use it.
	TimeZone       string        `env:"PLANNER_TIME_ZONE" envDefault:"Europe/London"`
	LookAheadWeeks int           `env:"PLANNER_LOOK_AHEAD_WEEKS" envDefault:"8"`
	ClientChunk    int           `env:"PLANNER_CLIENT_CHUNK" envDefault:"30"`
	SweepSpec      string        `env:"PLANNER_SWEEP_SPEC" envDefault:"0 30 2 * * *"`
	SweepTimeout   time.Duration `env:"PLANNER_SWEEP_TIMEOUT" envDefault:"10m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile, when set, also writes logs to a size-rotated file.
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
}

// LoadConfig reads the optional env files, then the process environment.
// Variables already set in the environment win over the files.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves TimeZone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid PLANNER_TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
