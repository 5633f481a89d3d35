package parameter

// Gesture Scheduler
const (
	// PoseRelaxRate is the exponential return rate of pose hints toward
	// neutral (1/sec). Higher snaps back faster
	PoseRelaxRate = 6.0

	// PoseMaxOffset bounds accumulated pose displacement (cells)
	PoseMaxOffset = 12.0

	// PoseMaxScale bounds the pose scale hint
	PoseMaxScale = 2.5

	// GestureBurstCount is the particle burst requested by burst-style
	// gesture steps
	GestureBurstCount = 24
)
