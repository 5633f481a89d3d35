package parameter

// Particle Engine
const (
	// PoolCapacity is the fixed particle slot count. Spawns beyond this
	// are dropped, never grown
	PoolCapacity = 256

	// ParticleMinSpeed is minimum initial velocity magnitude (cells/sec)
	ParticleMinSpeed = 3.0
	// ParticleMaxSpeed is maximum initial velocity magnitude (cells/sec)
	ParticleMaxSpeed = 9.0

	// ParticleMinAge/MaxAge bound initial lifetimes (seconds)
	ParticleMinAge = 1.2
	ParticleMaxAge = 4.0

	// OrbitAttraction is orbital attraction strength toward origin (cells/sec²)
	OrbitAttraction = 40.0
	// OrbitDamping circularizes orbits (1/sec)
	OrbitDamping = 1.8

	// RiseAccel is upward buoyancy for rising particles (cells/sec²)
	RiseAccel = 6.0
	// FallAccel is gravity for falling particles (cells/sec²)
	FallAccel = 9.0

	// BurstDrag is quadratic drag on burst particles (1/cell), prevents
	// overshoot: drag scales with speed²
	BurstDrag = 0.04

	// ScatterInterval is mean seconds between direction changes for
	// scattering particles
	ScatterInterval = 0.35

	// JitterSpeed is random velocity added per second to aggressive
	// particles (cells/sec)
	JitterSpeed = 14.0

	// ConnectEase is the approach rate toward origin for connecting
	// particles (1/sec)
	ConnectEase = 2.2

	// AmbientSway is horizontal sine sway amplitude (cells/sec)
	AmbientSway = 1.5

	// SpawnRateScale converts emotion profile emission into ambient
	// spawns per second at full intensity
	SpawnRateScale = 18.0
)
