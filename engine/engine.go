package engine

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/emote/emotion"
	"github.com/lixenwraith/emote/gesture"
	"github.com/lixenwraith/emote/parameter"
	"github.com/lixenwraith/emote/particle"
	"github.com/lixenwraith/emote/status"
)

// Config carries construction-time settings. Validation happens once in
// New; nothing here is consulted again mid-run
type Config struct {
	// ParticleCapacity is the fixed pool size. 0 means parameter.PoolCapacity
	ParticleCapacity int

	// MaxTickClamp caps one delta step. 0 means parameter.MaxTickClamp
	MaxTickClamp time.Duration

	// Seed drives the particle RNG. 0 derives one from the clock
	Seed uint64

	// Reporter receives degraded-operation reports. nil means LogReporter
	Reporter status.Reporter

	// Registry receives counters. nil allocates a private one
	Registry *status.Registry

	// Clock is the time source. nil means SystemClock
	Clock Clock
}

// Engine wires the frame driver, emotional state machine, gesture
// scheduler and particle pool into one assembly. All construction is
// explicit dependency injection; there is no package-level state
type Engine struct {
	reporter status.Reporter
	registry *status.Registry
	clock    Clock

	driver    *FrameDriver
	machine   *emotion.Machine
	scheduler *gesture.Scheduler
	pool      *particle.Pool

	// Pose hints snapshotted from the scheduler each tick
	pose gesture.Pose

	// Ambient emission accumulator, spawns when it crosses 1
	emitAcc float64

	// Breath cycle phase in [0,1), advanced at the current emotion's tempo
	breathPhase float64

	// Mascot anchor the particles spawn around
	originX, originY float64

	contextLost bool
	destroyed   bool

	statDropped   *atomic.Int64
	statActive    *atomic.Int64
	statIntensity *status.AtomicFloat
	statBreath    *status.AtomicFloat
}

// New builds a fully wired engine. The only fatal errors in the system
// happen here, on genuinely unusable configuration
func New(cfg Config) (*Engine, error) {
	if cfg.Reporter == nil {
		cfg.Reporter = status.LogReporter{}
	}
	if cfg.Registry == nil {
		cfg.Registry = status.NewRegistry()
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.ParticleCapacity == 0 {
		cfg.ParticleCapacity = parameter.PoolCapacity
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(cfg.Clock.Now().UnixNano())
	}
	if cfg.MaxTickClamp < 0 {
		return nil, fmt.Errorf("max tick clamp must not be negative, got %v", cfg.MaxTickClamp)
	}

	pool, err := particle.NewPool(cfg.ParticleCapacity, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("particle pool: %w", err)
	}

	e := &Engine{
		reporter:      cfg.Reporter,
		registry:      cfg.Registry,
		clock:         cfg.Clock,
		driver:        NewFrameDriver(cfg.Reporter, cfg.Registry, cfg.MaxTickClamp),
		machine:       emotion.NewMachine(cfg.Reporter),
		scheduler:     gesture.NewScheduler(cfg.Reporter),
		pool:          pool,
		pose:          gesture.NeutralPose(),
		statDropped:   cfg.Registry.Ints.Get("particle.dropped"),
		statActive:    cfg.Registry.Ints.Get("particle.active"),
		statIntensity: cfg.Registry.Floats.Get("emotion.intensity"),
		statBreath:    cfg.Registry.Floats.Get("engine.breath"),
	}

	// Fixed in-tick order: emotional state settles first, gestures read
	// and fire against it, particles integrate last with fresh intensity
	e.driver.Register(e.tickEmotion, TierHigh)
	e.driver.Register(e.tickGestures, TierMedium)
	e.driver.Register(e.tickParticles, TierLow)

	return e, nil
}

// Tick advances the whole assembly by one frame. The host calls this
// once per display refresh with a monotonic now. While the rendering
// context is lost, ticks are no-ops
func (e *Engine) Tick(now time.Time) {
	if e.destroyed || e.contextLost {
		return
	}
	e.driver.Tick(now)
}

func (e *Engine) tickEmotion(ctx TickContext) {
	e.machine.Update(ctx.DeltaSeconds)

	st := e.machine.Current()
	tempo := parameter.BreathTempoBase * emotion.ProfileOf(st.Emotion).BreathTempo *
		emotion.RateModifier(st.Undertone, st.UndertoneWeight)
	e.breathPhase += tempo * ctx.DeltaSeconds
	e.breathPhase -= math.Floor(e.breathPhase)

	e.statIntensity.Store(st.Intensity)
	e.statBreath.Store(e.breathPhase)
}

func (e *Engine) tickGestures(ctx TickContext) {
	e.scheduler.Update(ctx.Now)

	// Consume the burst request before snapshotting the pose, so the
	// published hints never advertise an already-spawned burst. The spawn
	// reads the intensity the machine settled moments ago, never a stale
	// one
	n := e.scheduler.TakeBurst()
	e.pose = e.scheduler.Pose()
	if n > 0 {
		st := e.machine.Current()
		behavior := particle.BehaviorFor(st.Emotion)
		for i := 0; i < n; i++ {
			if _, ok := e.pool.Spawn(behavior, e.originX+e.pose.OffsetX, e.originY+e.pose.OffsetY); !ok {
				e.statDropped.Add(int64(n - i))
				break
			}
		}
	}
}

func (e *Engine) tickParticles(ctx TickContext) {
	st := e.machine.Current()

	// Ambient emission, dt-scaled through an accumulator so rates below
	// one per tick still emit over time
	e.emitAcc += emotion.EmissionRate(st) * ctx.DeltaSeconds
	behavior := particle.BehaviorFor(st.Emotion)
	for e.emitAcc >= 1 {
		e.emitAcc--
		if _, ok := e.pool.Spawn(behavior, e.originX+e.pose.OffsetX, e.originY+e.pose.OffsetY); !ok {
			e.statDropped.Add(1)
			e.emitAcc = 0
			break
		}
	}

	e.pool.Update(ctx.DeltaSeconds, st)
	e.statActive.Store(int64(e.pool.ActiveCount()))
}

// SetEmotion requests an emotional transition. A duration of zero or
// less resolves instantly
func (e *Engine) SetEmotion(em emotion.Emotion, tone emotion.Undertone, duration time.Duration) {
	if e.destroyed {
		return
	}
	e.machine.SetEmotion(em, tone, duration.Seconds())
}

// Perform schedules a named gesture starting at the clock's now
func (e *Engine) Perform(name string) (uint64, bool) {
	if e.destroyed {
		return 0, false
	}
	return e.scheduler.Perform(name, e.clock.Now())
}

// Chain schedules an explicit step list as one cancellable sequence
func (e *Engine) Chain(specs []gesture.StepSpec) uint64 {
	if e.destroyed {
		return 0
	}
	return e.scheduler.Chain(specs, e.clock.Now())
}

// Cancel retires one sequence; once it returns, no step of that
// sequence will ever apply
func (e *Engine) Cancel(id uint64) {
	if e.destroyed {
		return
	}
	e.scheduler.Cancel(id)
}

// CancelAll retires every live sequence
func (e *Engine) CancelAll() {
	if e.destroyed {
		return
	}
	e.scheduler.CancelAll()
}

// Burst spawns an immediate particle burst of the current emotion's
// behavior around the mascot anchor. Saturated spawns are dropped and
// counted, not reported
func (e *Engine) Burst(n int) {
	if e.destroyed {
		return
	}
	st := e.machine.Current()
	behavior := particle.BehaviorFor(st.Emotion)
	for i := 0; i < n; i++ {
		if _, ok := e.pool.Spawn(behavior, e.originX, e.originY); !ok {
			e.statDropped.Add(int64(n - i))
			return
		}
	}
}

// SetOrigin moves the mascot anchor particles spawn around
func (e *Engine) SetOrigin(x, y float64) {
	e.originX, e.originY = x, y
}

// ContextLost pauses the simulation: ticks become no-ops until
// ContextRestored. The host should also stop calling Tick; this gate
// keeps a straggler frame harmless
func (e *Engine) ContextLost() {
	e.contextLost = true
}

// ContextRestored resumes ticking
func (e *Engine) ContextRestored() {
	e.contextLost = false
}

// Snapshot is the render-facing view of one frame: emotional state,
// blended color, pose hints, breath phase and live particle count.
// Particle views stay separate so the buffer can be reused
type Snapshot struct {
	State  emotion.State
	Color  colorful.Color
	Pose   gesture.Pose
	Breath float64
	Live   int
}

// Snapshot returns the render-facing view as of the last tick
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:  e.machine.Current(),
		Color:  e.machine.Color(),
		Pose:   e.pose,
		Breath: e.Breath(),
		Live:   e.pool.ActiveCount(),
	}
}

// State returns the current emotional state snapshot
func (e *Engine) State() emotion.State {
	return e.machine.Current()
}

// Color returns the current blended glow color
func (e *Engine) Color() colorful.Color {
	return e.machine.Color()
}

// Pose returns the pose hints as of the last tick
func (e *Engine) Pose() gesture.Pose {
	return e.pose
}

// Breath returns the idle breathing oscillation in [0,1], smooth at the
// cycle boundary. The cycle rate follows the current emotion's tempo
// scaled by the undertone
func (e *Engine) Breath() float64 {
	return 0.5 - 0.5*math.Cos(2*math.Pi*e.breathPhase)
}

// Particles appends renderer views for all live particles into buf,
// tinted with the current emotion color. Reuse buf across frames
func (e *Engine) Particles(buf []particle.View) []particle.View {
	return e.pool.Views(buf, e.machine.Color())
}

// ParticleCount returns live particles; ParticleCapacity the fixed cap
func (e *Engine) ParticleCount() int    { return e.pool.ActiveCount() }
func (e *Engine) ParticleCapacity() int { return e.pool.Capacity() }

// Gestures returns the registered gesture names
func (e *Engine) Gestures() []string {
	return e.scheduler.Gestures()
}

// RegisterGesture extends the gesture library
func (e *Engine) RegisterGesture(name string, specs []gesture.StepSpec) error {
	return e.scheduler.RegisterGesture(name, specs)
}

// Destroy tears the assembly down leaf to root: particles, gestures,
// emotion, driver. Idempotent; the engine never runs again
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.pool.Reset()
	e.scheduler.CancelAll()
	e.machine.Reset()
	e.driver.Destroy()
}
