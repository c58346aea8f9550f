package sendbackend

import (
	"context"
	"testing"
	"time"

	"github.com/Mailcadence/mailcadence/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFastSimulator(t *testing.T, successRate float64, perMinute int) *Simulator {
	sim := NewSimulator(&SimulatorConfig{
		MinLatency:     0,
		MaxLatency:     0,
		SuccessRate:    successRate,
		PerMinuteLimit: perMinute,
		PerHourLimit:   perMinute * 60,
	}, logger.NewTestLogger(t))
	t.Cleanup(sim.Stop)
	return sim
}

func TestSimulator_SendSuccess(t *testing.T) {
	sim := newFastSimulator(t, 1.0, 100)

	receipt, err := sim.Send(context.Background(), "s-1", "r-1", "subject", "body")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.NotEmpty(t, receipt.MessageID)
	assert.False(t, receipt.SentAt.IsZero())
}

func TestSimulator_SendFailureUsesTaxonomy(t *testing.T) {
	sim := newFastSimulator(t, 0.0, 100)

	_, err := sim.Send(context.Background(), "s-1", "r-1", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, []error{ErrMailboxFull, ErrTransientServer, ErrInvalidRecipient, ErrSpamBlocked}, err)
	assert.False(t, IsAntiSpam(err))
}

func TestSimulator_AntiSpamEnvelope(t *testing.T) {
	sim := newFastSimulator(t, 1.0, 3)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := sim.Send(ctx, "s-1", "r-1", "subject", "body")
		require.NoError(t, err, "send %d should pass the envelope", i)
	}

	_, err := sim.Send(ctx, "s-1", "r-1", "subject", "body")
	require.Error(t, err)
	assert.True(t, IsAntiSpam(err))

	// Another sender has its own envelope.
	_, err = sim.Send(ctx, "s-2", "r-1", "subject", "body")
	assert.NoError(t, err)
}

func TestSimulator_FailedAttemptsConsumeEnvelope(t *testing.T) {
	// Completed attempts count toward the envelope whatever the remote
	// outcome; only rejections are free.
	sim := newFastSimulator(t, 0.0, 2)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := sim.Send(ctx, "s-1", "r-1", "subject", "body")
		require.Error(t, err)
		require.False(t, IsAntiSpam(err))
	}

	_, err := sim.Send(ctx, "s-1", "r-1", "subject", "body")
	require.Error(t, err)
	assert.True(t, IsAntiSpam(err))
}

func TestSimulator_ContextCancelledDuringLatency(t *testing.T) {
	sim := NewSimulator(&SimulatorConfig{
		MinLatency:     5 * time.Second,
		MaxLatency:     5 * time.Second,
		SuccessRate:    1.0,
		PerMinuteLimit: 10,
		PerHourLimit:   100,
	}, logger.NewTestLogger(t))
	defer sim.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := sim.Send(ctx, "s-1", "r-1", "subject", "body")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAntiSpamError_Message(t *testing.T) {
	err := &AntiSpamError{SenderID: "s-9", Window: "minute/hour"}
	assert.Contains(t, err.Error(), "s-9")
	assert.Contains(t, err.Error(), "anti-spam")
}
