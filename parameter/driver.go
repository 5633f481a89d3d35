package parameter

import "time"

// Frame Driver
const (
	// TargetTickRate is the nominal host refresh rate (ticks per second)
	TargetTickRate = 60

	// MaxTickClamp caps a single delta step. A backgrounded host that
	// resumes after seconds of silence produces one clamped step instead
	// of a runaway catch-up burst
	MaxTickClamp = 100 * time.Millisecond
)
