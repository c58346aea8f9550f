package scheduler

import "time"

// Config contains tuning knobs for the runtime scheduler.
type Config struct {
	// CompletionCheckInterval is the period of the low-frequency sweep that
	// catches completion missed by the per-dispatch check.
	CompletionCheckInterval time.Duration `json:"completion_check_interval"`

	// ProgressLogInterval bounds how often the completion sweep logs task
	// progress.
	ProgressLogInterval time.Duration `json:"progress_log_interval"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		CompletionCheckInterval: 60 * time.Second,
		ProgressLogInterval:     5 * time.Minute,
	}
}
