package clock

import (
	"time"
)

// FakeClock counts sleeps instead of sleeping.
type FakeClock struct {
	Sleeps  int
	Elapsed time.Duration

	// Called at the start of every sleep, if set. Since the generators sleep
	// once at the end of each tick, this sees the state after every tick.
	OnSleep func()
}

func (c *FakeClock) Sleep(d time.Duration) {
	if c.OnSleep != nil {
		c.OnSleep()
	}

	c.Sleeps++
	c.Elapsed += d
}
