package tickq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWallClock_Tick(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	original := nowFunc
	nowFunc = func() time.Time { return current }
	defer func() { nowFunc = original }()

	clock := NewWallClock()
	delta, elapsed := clock.Tick()
	assert.Equal(t, time.Duration(0), delta)
	assert.Equal(t, time.Duration(0), elapsed)

	current = base.Add(16 * time.Millisecond)
	delta, elapsed = clock.Tick()
	assert.Equal(t, 16*time.Millisecond, delta)
	assert.Equal(t, 16*time.Millisecond, elapsed)

	current = base.Add(48 * time.Millisecond)
	delta, elapsed = clock.Tick()
	assert.Equal(t, 32*time.Millisecond, delta)
	assert.Equal(t, 48*time.Millisecond, elapsed)
}

func TestManualClock_Tick(t *testing.T) {
	clock := NewManualClock()

	delta, elapsed := clock.Tick()
	assert.Equal(t, time.Duration(0), delta)
	assert.Equal(t, time.Duration(0), elapsed)

	clock.Advance(10 * time.Millisecond)
	clock.Advance(5 * time.Millisecond)
	delta, elapsed = clock.Tick()
	assert.Equal(t, 15*time.Millisecond, delta, "pending deltas coalesce into one tick")
	assert.Equal(t, 15*time.Millisecond, elapsed)

	delta, elapsed = clock.Tick()
	assert.Equal(t, time.Duration(0), delta)
	assert.Equal(t, 15*time.Millisecond, elapsed)
	assert.Equal(t, 15*time.Millisecond, clock.Elapsed())
}
