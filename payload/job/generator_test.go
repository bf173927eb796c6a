package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUntilSaturatesAtZero(t *testing.T) {
	past := uint64(time.Now().Unix()) - 100
	assert.Equal(t, time.Duration(0), durationUntil(past))
}

func TestDurationUntilFuture(t *testing.T) {
	future := uint64(time.Now().Unix()) + 10
	got := durationUntil(future)
	assert.Greater(t, got, 8*time.Second)
	assert.LessOrEqual(t, got, 10*time.Second)
}

func TestMaxJobDurationPastSlotIsJustTheDeadline(t *testing.T) {
	deadline := 2 * time.Second
	past := uint64(time.Now().Unix()) - 100
	assert.Equal(t, deadline, maxJobDuration(past, deadline))
}

func TestMaxJobDurationClampsAgainstBadClocks(t *testing.T) {
	deadline := 2 * time.Second
	farFuture := uint64(time.Now().Unix()) + 1000
	got := maxJobDuration(farFuture, deadline)
	// until is clamped to deadline*3, so the total must never exceed
	// deadline + deadline*3 regardless of how far out slotTimestamp is.
	assert.LessOrEqual(t, got, deadline+deadline*3)
	assert.Equal(t, deadline+deadline*3, got)
}

func TestNewGeneratorPanicsOnNonPositiveMaxPayloadTasks(t *testing.T) {
	cfg := DefaultGeneratorConfig
	cfg.MaxPayloadTasks = 0

	assert.Panics(t, func() {
		NewGenerator(nil, nil, nil, nil, nil, nil, cfg)
	})
}
