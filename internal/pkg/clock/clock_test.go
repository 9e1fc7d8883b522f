package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_UTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	c := NewMockClock(start)

	assert.True(t, c.Now().Equal(start))
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(90 * time.Minute)
	assert.Equal(t, 10, c.Now().Hour())

	c.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.January, c.Now().Month())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Second)
			_ = c.Now()
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, c.Now().Second())
}
