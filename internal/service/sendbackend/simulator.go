package sendbackend

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Mailcadence/mailcadence/internal/domain"
	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/Mailcadence/mailcadence/pkg/ratelimiter"
	"github.com/google/uuid"
)

// SimulatorConfig tunes the simulated transport.
type SimulatorConfig struct {
	// Latency bounds for one simulated delivery.
	MinLatency time.Duration `json:"min_latency"`
	MaxLatency time.Duration `json:"max_latency"`

	// SuccessRate is the probability of a simulated delivery succeeding.
	SuccessRate float64 `json:"success_rate"`

	// Anti-spam envelope per sender.
	PerMinuteLimit int `json:"per_minute_limit"`
	PerHourLimit   int `json:"per_hour_limit"`
}

// DefaultSimulatorConfig returns a configuration with sensible defaults
func DefaultSimulatorConfig() *SimulatorConfig {
	return &SimulatorConfig{
		MinLatency:     100 * time.Millisecond,
		MaxLatency:     1000 * time.Millisecond,
		SuccessRate:    0.95,
		PerMinuteLimit: 30,
		PerHourLimit:   500,
	}
}

// Simulator is a send backend that performs no network I/O: it sleeps for a
// bounded random latency, succeeds with a configurable probability and
// enforces the per-sender anti-spam envelope. Every completed delivery
// attempt, successful or not, consumes envelope budget; rejections do not.
type Simulator struct {
	config   *SimulatorConfig
	envelope *ratelimiter.SlidingWindows
	logger   logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSimulator creates a simulated send backend.
func NewSimulator(config *SimulatorConfig, logger logger.Logger) *Simulator {
	if config == nil {
		config = DefaultSimulatorConfig()
	}

	envelope := ratelimiter.NewSlidingWindows(
		ratelimiter.WindowPolicy{Name: "minute", MaxEvents: config.PerMinuteLimit, Window: time.Minute},
		ratelimiter.WindowPolicy{Name: "hour", MaxEvents: config.PerHourLimit, Window: time.Hour},
	)

	return &Simulator{
		config:   config,
		envelope: envelope,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Send simulates one dispatch.
func (s *Simulator) Send(ctx context.Context, senderID, recipientID, subject, body string) (*domain.SendReceipt, error) {
	if s.envelope.Exceeded(senderID) {
		return nil, &AntiSpamError{SenderID: senderID, Window: "minute/hour"}
	}

	if err := s.sleepLatency(ctx); err != nil {
		return nil, err
	}

	// The delivery attempt reached the simulated remote; it counts toward
	// the envelope whatever the outcome.
	s.envelope.Record(senderID)

	if s.roll() >= s.config.SuccessRate {
		return nil, s.randomFailure()
	}

	return &domain.SendReceipt{
		MessageID: uuid.New().String(),
		SentAt:    time.Now(),
	}, nil
}

// Stop releases the envelope's cleanup goroutine.
func (s *Simulator) Stop() {
	s.envelope.Stop()
}

func (s *Simulator) sleepLatency(ctx context.Context) error {
	spread := s.config.MaxLatency - s.config.MinLatency
	latency := s.config.MinLatency
	if spread > 0 {
		s.rngMu.Lock()
		latency += time.Duration(s.rng.Int63n(int64(spread)))
		s.rngMu.Unlock()
	}
	if latency <= 0 {
		return nil
	}

	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Simulator) roll() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) randomFailure() error {
	failures := []error{
		ErrMailboxFull,
		ErrTransientServer,
		ErrInvalidRecipient,
		ErrSpamBlocked,
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return failures[s.rng.Intn(len(failures))]
}
