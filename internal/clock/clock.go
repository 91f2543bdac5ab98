package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current UTC instant. Time-dependent components take it
// as a dependency so tests can pin time with a FakeClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func NewSystemClock() Clock {
	return systemClock{}
}

// Module wires the system clock.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
