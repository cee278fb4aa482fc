// Package worker holds the scheduling, health, and metrics plumbing for the
// background ingest binary.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/pkg/config"
)

// Config controls the scheduled ingest job.
//
// Loading is fail-open: an invalid value falls back to its default with a
// warning and a metrics increment, so a bad deployment variable degrades the
// schedule instead of keeping the worker down.
type Config struct {
	// CronSchedule is a five-field cron expression for the ingest job.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string

	// Topics are the topics requested from the collaborator on each run.
	Topics []string

	// Count is the total number of items requested per run.
	Count int

	// IngestTimeout bounds a single ingest run.
	IngestTimeout time.Duration

	// HealthPort is the port for the worker's health and metrics endpoints.
	HealthPort int
}

// DefaultConfig returns the production defaults: ingest every six hours,
// nine items across the three most-read categories.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "0 */6 * * *",
		Timezone:     "UTC",
		Topics: []string{
			entity.CategoryTechnology,
			entity.CategoryBusiness,
			entity.CategoryScience,
		},
		Count:         9,
		IngestTimeout: 5 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate reports all invalid fields at once.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if len(c.Topics) == 0 {
		errs = append(errs, fmt.Errorf("topics: at least one topic is required"))
	}
	if err := config.ValidateIntRange(c.Count, 1, 20); err != nil {
		errs = append(errs, fmt.Errorf("count: %w", err))
	}
	if err := config.ValidateDurationRange(c.IngestTimeout, 30*time.Second, 30*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("ingest timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfig reads the worker configuration from the environment.
//
// Environment variables:
//   - INGEST_CRON_SCHEDULE: five-field cron expression (default "0 */6 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default "UTC")
//   - INGEST_TOPICS: comma-separated topic list
//   - INGEST_COUNT: items per run, 1-20 (default 9)
//   - INGEST_TIMEOUT: duration string, 30s-30m (default 5m)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
//
// Each invalid value is replaced with its default and recorded on metrics;
// the returned config is always valid.
func LoadConfig(logger *slog.Logger, metrics *IngestMetrics) Config {
	defaults := DefaultConfig()
	cfg := Config{
		CronSchedule:  config.GetEnvString("INGEST_CRON_SCHEDULE", defaults.CronSchedule),
		Timezone:      config.GetEnvString("WORKER_TIMEZONE", defaults.Timezone),
		Topics:        config.GetEnvStringList("INGEST_TOPICS", defaults.Topics),
		Count:         config.GetEnvInt("INGEST_COUNT", defaults.Count),
		IngestTimeout: config.GetEnvDuration("INGEST_TIMEOUT", defaults.IngestTimeout),
		HealthPort:    config.GetEnvInt("WORKER_HEALTH_PORT", defaults.HealthPort),
	}

	fallback := func(field string, err error) {
		metrics.RecordConfigFallback(field)
		logger.Warn("worker configuration fallback applied",
			slog.String("field", field),
			slog.Any("error", err))
	}

	if err := config.ValidateCronSchedule(cfg.CronSchedule); err != nil {
		fallback("cron_schedule", err)
		cfg.CronSchedule = defaults.CronSchedule
	}
	if err := config.ValidateTimezone(cfg.Timezone); err != nil {
		fallback("timezone", err)
		cfg.Timezone = defaults.Timezone
	}
	if err := config.ValidateIntRange(cfg.Count, 1, 20); err != nil {
		fallback("count", err)
		cfg.Count = defaults.Count
	}
	if err := config.ValidateDurationRange(cfg.IngestTimeout, 30*time.Second, 30*time.Minute); err != nil {
		fallback("ingest_timeout", err)
		cfg.IngestTimeout = defaults.IngestTimeout
	}
	if err := config.ValidateIntRange(cfg.HealthPort, 1024, 65535); err != nil {
		fallback("health_port", err)
		cfg.HealthPort = defaults.HealthPort
	}

	return cfg
}
