package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/emote/emotion"
	"github.com/lixenwraith/emote/gesture"
	"github.com/lixenwraith/emote/parameter"
	"github.com/lixenwraith/emote/particle"
	"github.com/lixenwraith/emote/status"
)

// testEngine builds an engine on a mock clock with a recorder, so tests
// drive time explicitly and observe reports
func testEngine(t *testing.T, capacity int) (*Engine, *MockClock, *status.Recorder, *status.Registry) {
	t.Helper()
	clock := NewMockClock(t0)
	rec := &status.Recorder{}
	reg := status.NewRegistry()
	e, err := New(Config{
		ParticleCapacity: capacity,
		Seed:             42,
		Reporter:         rec,
		Registry:         reg,
		Clock:            clock,
	})
	if err != nil {
		t.Fatalf("Unexpected construction error: %v", err)
	}
	return e, clock, rec, reg
}

// step advances the clock one 16ms frame and ticks
func step(e *Engine, clock *MockClock) {
	clock.Advance(16 * time.Millisecond)
	e.Tick(clock.Now())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative capacity", Config{ParticleCapacity: -1}},
		{"negative clamp", Config{MaxTickClamp: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("Expected construction error")
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer e.Destroy()

	if e.ParticleCapacity() != parameter.PoolCapacity {
		t.Errorf("Expected default capacity %d, got %d", parameter.PoolCapacity, e.ParticleCapacity())
	}
	if st := e.State(); st.Emotion != emotion.Neutral {
		t.Errorf("Expected neutral start, got %v", st.Emotion)
	}
}

func TestInstantEmotionVisibleNextTick(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"zero duration", 0},
		{"negative duration", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock, _, _ := testEngine(t, 64)
			defer e.Destroy()

			e.SetEmotion(emotion.Joy, emotion.UndertoneClear, tt.duration)
			step(e, clock)

			st := e.State()
			if st.Emotion != emotion.Joy {
				t.Errorf("Expected joy, got %v", st.Emotion)
			}
			if !st.Stable() {
				t.Errorf("Expected instant transition, got progress %v", st.BlendProgress)
			}
			if st.Intensity != emotion.ProfileOf(emotion.Joy).Intensity {
				t.Errorf("Expected profile intensity, got %v", st.Intensity)
			}
		})
	}
}

func TestAmbientEmission(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.SetEmotion(emotion.Joy, emotion.UndertoneClear, -1)
	for i := 0; i < 60; i++ {
		step(e, clock)
	}

	if e.ParticleCount() == 0 {
		t.Error("Expected ambient emission to spawn particles over a second")
	}
	if e.ParticleCount() > e.ParticleCapacity() {
		t.Errorf("Live count %d exceeds capacity %d", e.ParticleCount(), e.ParticleCapacity())
	}
}

func TestBurstBoundedByCapacity(t *testing.T) {
	e, _, _, reg := testEngine(t, 32)
	defer e.Destroy()

	e.Burst(1000)

	if e.ParticleCount() != 32 {
		t.Errorf("Expected pool saturated at 32, got %d", e.ParticleCount())
	}
	if dropped := reg.Ints.Get("particle.dropped").Load(); dropped != 1000-32 {
		t.Errorf("Expected %d drops counted, got %d", 1000-32, dropped)
	}
}

func TestGestureBurstSpawnsParticles(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.Chain([]gesture.StepSpec{
		{Offset: 0, Effects: []gesture.Effect{{Kind: gesture.EffectBurst, Amount: 8}}},
	})
	step(e, clock)

	if e.ParticleCount() < 8 {
		t.Errorf("Expected at least the 8 burst particles, got %d", e.ParticleCount())
	}
}

func TestGestureBurstSeesSettledEmotion(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	step(e, clock) // first tick has zero delta

	// A blend short enough to commit inside the next tick's emotion
	// update; the burst firing that same tick must spawn the incoming
	// emotion's behavior, not the outgoing one
	e.SetEmotion(emotion.Anger, emotion.UndertoneClear, 10*time.Millisecond)
	e.Chain([]gesture.StepSpec{
		{Offset: 0, Effects: []gesture.Effect{{Kind: gesture.EffectBurst, Amount: 8}}},
	})
	step(e, clock)

	if got := e.State().Emotion; got != emotion.Anger {
		t.Fatalf("Expected blend committed within the tick, got %v", got)
	}
	if e.ParticleCount() != 8 {
		t.Fatalf("Expected 8 burst particles, got %d", e.ParticleCount())
	}
	e.pool.Each(func(_ int, pt *particle.Particle) {
		if pt.Behavior != particle.BehaviorAggressive {
			t.Errorf("Expected %v spawn, got %v", particle.BehaviorAggressive, pt.Behavior)
		}
	})
}

func TestConsumedBurstNotAdvertised(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.Chain([]gesture.StepSpec{
		{Offset: 0, Effects: []gesture.Effect{{Kind: gesture.EffectBurst, Amount: 8}}},
	})
	step(e, clock)

	if e.ParticleCount() != 8 {
		t.Fatalf("Expected 8 burst particles, got %d", e.ParticleCount())
	}
	if got := e.Pose().Burst; got != 0 {
		t.Errorf("Expected pending burst cleared once spawned, got %d", got)
	}
	if got := e.Snapshot().Pose.Burst; got != 0 {
		t.Errorf("Expected snapshot pose without consumed burst, got %d", got)
	}
}

func TestCancelPreventsBurst(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	id := e.Chain([]gesture.StepSpec{
		{Offset: 500 * time.Millisecond, Effects: []gesture.Effect{{Kind: gesture.EffectBurst, Amount: 8}}},
	})
	step(e, clock)
	e.Cancel(id)

	clock.Advance(time.Second)
	e.Tick(clock.Now())

	if e.ParticleCount() != 0 {
		t.Errorf("Expected no particles from cancelled sequence, got %d", e.ParticleCount())
	}
}

func TestPerformBuiltinThroughEngine(t *testing.T) {
	e, clock, rec, _ := testEngine(t, 64)
	defer e.Destroy()

	if _, ok := e.Perform("wave"); !ok {
		t.Fatal("Expected wave to schedule")
	}
	if _, ok := e.Perform("moonwalk"); ok {
		t.Error("Expected unknown gesture to be rejected")
	}
	if got := rec.Count(status.KindUnknownIdentifier); got != 1 {
		t.Errorf("Expected 1 unknown-identifier report, got %d", got)
	}

	step(e, clock)
	if e.Pose() == gesture.NeutralPose() {
		t.Error("Expected wave's first step to move the pose off neutral")
	}
}

func TestContextLostPausesTicks(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.SetEmotion(emotion.Joy, emotion.UndertoneClear, -1)
	for i := 0; i < 30; i++ {
		step(e, clock)
	}
	before := e.ParticleCount()

	e.ContextLost()
	for i := 0; i < 30; i++ {
		step(e, clock)
	}
	if e.ParticleCount() != before {
		t.Errorf("Expected simulation frozen while context lost, count went %d -> %d", before, e.ParticleCount())
	}

	// Restoring must not replay the paused wall-clock span as one jump:
	// the first tick back is delta-clamped like any stall
	e.ContextRestored()
	clock.Advance(time.Hour)
	e.Tick(clock.Now())
	if e.ParticleCount() > e.ParticleCapacity() {
		t.Errorf("Live count %d exceeds capacity %d after restore", e.ParticleCount(), e.ParticleCapacity())
	}
}

func TestRegisterGestureThroughEngine(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	err := e.RegisterGesture("hop", []gesture.StepSpec{
		{Offset: 0, Effects: []gesture.Effect{{Kind: gesture.EffectNudge, Y: -2}}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := e.RegisterGesture("", nil); err == nil {
		t.Error("Expected empty name rejected")
	}

	if _, ok := e.Perform("hop"); !ok {
		t.Fatal("Expected registered gesture to schedule")
	}
	step(e, clock)
	if e.Pose().OffsetY >= 0 {
		t.Errorf("Expected upward nudge, got offset %v", e.Pose().OffsetY)
	}
}

func TestGesturesSorted(t *testing.T) {
	e, _, _, _ := testEngine(t, 64)
	defer e.Destroy()

	names := e.Gestures()
	if len(names) == 0 {
		t.Fatal("Expected stock gesture library")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %q before %q", names[i-1], names[i])
		}
	}
}

func TestFloatMetricsPublished(t *testing.T) {
	e, clock, _, reg := testEngine(t, 64)
	defer e.Destroy()

	e.SetEmotion(emotion.Joy, emotion.UndertoneClear, -1)
	step(e, clock)
	step(e, clock)

	want := emotion.ProfileOf(emotion.Joy).Intensity
	if got := reg.Floats.Get("emotion.intensity").Load(); got != want {
		t.Errorf("Expected intensity metric %v, got %v", want, got)
	}
	if breath := reg.Floats.Get("engine.breath").Load(); breath <= 0 || breath >= 1 {
		t.Errorf("Expected breath phase in (0,1), got %v", breath)
	}
	if reg.TotalCount() < 4 {
		t.Errorf("Expected counters of both types registered, got %d", reg.TotalCount())
	}
}

func TestSnapshotConsistent(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.SetEmotion(emotion.Love, emotion.UndertoneConfident, -1)
	e.Burst(8)
	step(e, clock)

	snap := e.Snapshot()
	if snap.State != e.State() {
		t.Error("Expected snapshot state to match State()")
	}
	if snap.Color != e.Color() {
		t.Error("Expected snapshot color to match Color()")
	}
	if snap.Pose != e.Pose() {
		t.Error("Expected snapshot pose to match Pose()")
	}
	if snap.Live != e.ParticleCount() {
		t.Errorf("Expected %d live particles in snapshot, got %d", e.ParticleCount(), snap.Live)
	}
}

func TestBreathOscillates(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	if e.Breath() != 0 {
		t.Errorf("Expected breath at cycle start, got %v", e.Breath())
	}

	low, high := 1.0, 0.0
	for i := 0; i < 600; i++ { // ten seconds, several neutral cycles
		step(e, clock)
		if b := e.Breath(); b < low {
			low = b
		} else if b > high {
			high = b
		}
	}
	if low > 0.1 || high < 0.9 {
		t.Errorf("Expected breath to sweep [0,1], observed [%v, %v]", low, high)
	}
}

func TestDestroyTeardown(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)

	e.SetEmotion(emotion.Excited, emotion.UndertoneIntense, -1)
	e.Perform("sparkle")
	for i := 0; i < 10; i++ {
		step(e, clock)
	}

	e.Destroy()
	e.Destroy() // idempotent

	if e.ParticleCount() != 0 {
		t.Errorf("Expected empty pool after Destroy, got %d", e.ParticleCount())
	}
	if st := e.State(); st.Emotion != emotion.Neutral {
		t.Errorf("Expected machine reset, got %v", st.Emotion)
	}

	// Everything after Destroy is a no-op
	step(e, clock)
	e.Burst(10)
	e.SetEmotion(emotion.Joy, emotion.UndertoneClear, -1)
	if _, ok := e.Perform("wave"); ok {
		t.Error("Expected Perform rejected after Destroy")
	}
	if e.ParticleCount() != 0 {
		t.Errorf("Expected engine inert after Destroy, got %d particles", e.ParticleCount())
	}
}

func TestParticlesViewTint(t *testing.T) {
	e, clock, _, _ := testEngine(t, 64)
	defer e.Destroy()

	e.SetEmotion(emotion.Anger, emotion.UndertoneClear, -1)
	e.Burst(16)
	step(e, clock)

	views := e.Particles(nil)
	if len(views) != e.ParticleCount() {
		t.Errorf("Expected %d views, got %d", e.ParticleCount(), len(views))
	}
	for i, v := range views {
		if v.Fade < 0 || v.Fade > 1 {
			t.Errorf("View %d: fade %v out of range", i, v.Fade)
		}
	}

	// buf reuse must not grow a fresh slice every frame
	reused := e.Particles(views[:0])
	if len(reused) != len(views) {
		t.Errorf("Expected reuse to yield %d views, got %d", len(views), len(reused))
	}
}
