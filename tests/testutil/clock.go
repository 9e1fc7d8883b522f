package testutil

import (
	"time"

	"github.com/light-bringer/fnb-pricing-service/internal/pkg/clock"
)

// FixedTime is the evaluation time used by tests that need a stable clock.
var FixedTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) clock.Clock {
	return clock.NewMockClock(t)
}
