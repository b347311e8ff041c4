package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string

	HTTPHost string
	HTTPPort int

	DBDSN             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	Timezone  string
	JWTSecret string
	JWTIssuer string
	BlobRoot  string

	ReconcileSchedule     string
	RatingRefreshSchedule string
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// LoadConfig reads the optional env files, then the environment. Values set
// in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing file is fine, the environment may carry everything.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("APP_TIMEZONE", "Europe/Berlin")
	v.SetDefault("JWT_ISSUER", "dispatch")
	v.SetDefault("BLOB_ROOT", "./data/blobs")
	v.SetDefault("RECONCILE_SCHEDULE", "0 */15 * * * *")
	v.SetDefault("RATING_REFRESH_SCHEDULE", "0 0 3 * * *")

	cfg := Config{
		AppEnv:                v.GetString("APP_ENV"),
		HTTPHost:              v.GetString("HTTP_HOST"),
		HTTPPort:              v.GetInt("HTTP_PORT"),
		DBDSN:                 v.GetString("DB_DSN"),
		DBMaxOpenConns:        v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:        v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:     v.GetDuration("DB_CONN_MAX_LIFETIME"),
		Timezone:              v.GetString("APP_TIMEZONE"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		BlobRoot:              v.GetString("BLOB_ROOT"),
		ReconcileSchedule:     v.GetString("RECONCILE_SCHEDULE"),
		RatingRefreshSchedule: v.GetString("RATING_REFRESH_SCHEDULE"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.ReconcileSchedule); err != nil {
		errs = append(errs, fmt.Errorf("RECONCILE_SCHEDULE: %w", err))
	}
	if _, err := parser.Parse(c.RatingRefreshSchedule); err != nil {
		errs = append(errs, fmt.Errorf("RATING_REFRESH_SCHEDULE: %w", err))
	}
	return errors.Join(errs...)
}
