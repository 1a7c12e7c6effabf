package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	DefaultHTTPPort          = "8080"
	DefaultBackendTimeout    = 10 * time.Second
	DefaultResyncSchedule    = "*/30 * * * * *"
	DefaultResyncConcurrency = 4
)

type Config struct {
	HTTPPort          string
	OrdersBackendURL  string
	RefundsBackendURL string
	BackendTimeout    time.Duration
	ResyncSchedule    string
	ResyncConcurrency int
	LogLevel          slog.Level
}

// LoadConfig reads the environment, after applying envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return ParseConfig(os.Getenv)
}

// ParseConfig builds and validates a Config from getenv, collecting every
// problem instead of stopping at the first.
func ParseConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:          valueOr(getenv("HTTP_PORT"), DefaultHTTPPort),
		OrdersBackendURL:  strings.TrimSpace(getenv("ORDERS_BACKEND_URL")),
		RefundsBackendURL: strings.TrimSpace(getenv("REFUNDS_BACKEND_URL")),
		BackendTimeout:    DefaultBackendTimeout,
		ResyncSchedule:    valueOr(getenv("RESYNC_SCHEDULE"), DefaultResyncSchedule),
		ResyncConcurrency: DefaultResyncConcurrency,
		LogLevel:          slog.LevelInfo,
	}

	var problems []error

	if port, err := strconv.Atoi(cfg.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("HTTP_PORT", cfg.HTTPPort, 1, 65535))
	}
	problems = append(problems,
		validateURL("ORDERS_BACKEND_URL", cfg.OrdersBackendURL),
		validateURL("REFUNDS_BACKEND_URL", cfg.RefundsBackendURL),
	)

	if raw := strings.TrimSpace(getenv("BACKEND_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		switch {
		case err != nil:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("BACKEND_TIMEOUT", err))
		case timeout <= 0:
			problems = append(problems, errs.NewValueIsInvalidError("BACKEND_TIMEOUT"))
		default:
			cfg.BackendTimeout = timeout
		}
	}

	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(cfg.ResyncSchedule); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("RESYNC_SCHEDULE", err))
	}

	if raw := strings.TrimSpace(getenv("RESYNC_CONCURRENCY")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("RESYNC_CONCURRENCY", err))
		case n < 1 || n > commands.MaxResyncConcurrency:
			problems = append(problems,
				errs.NewValueIsOutOfRangeError("RESYNC_CONCURRENCY", n, 1, commands.MaxResyncConcurrency))
		default:
			cfg.ResyncConcurrency = n
		}
	}

	if raw := strings.TrimSpace(getenv("LOG_LEVEL")); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return errs.NewValueIsRequiredError(name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidError(name)
	}
	return nil
}

func valueOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
