package particle

import (
	"math"
	"testing"

	"github.com/lixenwraith/emote/emotion"
)

func calmState() emotion.State {
	return emotion.State{Emotion: emotion.Calm, Intensity: 0.5, BlendProgress: 1}
}

func TestNewPoolValidation(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"Zero capacity", 0, true},
		{"Negative capacity", -5, true},
		{"Valid capacity", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPool(tt.capacity, 1)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected construction error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected pool, got error %v", err)
			}
			if p.Capacity() != tt.capacity {
				t.Errorf("Expected capacity %d, got %d", tt.capacity, p.Capacity())
			}
		})
	}
}

func TestCapacityInvariant(t *testing.T) {
	p, err := NewPool(32, 7)
	if err != nil {
		t.Fatal(err)
	}

	// Spawn storm across simulated ticks; the count must never exceed
	// the cap and saturation must drop, not grow
	for tick := 0; tick < 50; tick++ {
		for i := 0; i < 10; i++ {
			p.Spawn(BehaviorAmbient, 0, 0)
		}
		if p.ActiveCount() > p.Capacity() {
			t.Fatalf("Tick %d: active %d exceeds capacity %d", tick, p.ActiveCount(), p.Capacity())
		}
		p.Update(1.0/60.0, calmState())
	}
}

func TestSpawnSaturationDrops(t *testing.T) {
	p, err := NewPool(4, 7)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		if _, ok := p.Spawn(BehaviorRising, 0, 0); !ok {
			t.Fatalf("Expected spawn %d to succeed", i)
		}
	}
	if _, ok := p.Spawn(BehaviorRising, 0, 0); ok {
		t.Error("Expected spawn on a saturated pool to be dropped")
	}
	if p.ActiveCount() != 4 {
		t.Errorf("Expected 4 active, got %d", p.ActiveCount())
	}
}

func TestInvalidBehaviorDropped(t *testing.T) {
	p, _ := NewPool(4, 7)
	if _, ok := p.Spawn(Behavior(200), 0, 0); ok {
		t.Error("Expected invalid behavior spawn to be dropped")
	}
}

func TestFreeListReuse(t *testing.T) {
	p, err := NewPool(8, 7)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		p.Spawn(BehaviorAmbient, 0, 0)
	}

	// One oversized step retires everything this same update
	p.Update(100, calmState())
	if p.ActiveCount() != 0 {
		t.Fatalf("Expected all retired, got %d active", p.ActiveCount())
	}

	// Retired slots must be reusable immediately
	for i := 0; i < 8; i++ {
		idx, ok := p.Spawn(BehaviorOrbiting, 1, 1)
		if !ok {
			t.Fatalf("Expected freed slot for spawn %d", i)
		}
		if idx < 0 || idx >= p.Capacity() {
			t.Fatalf("Slot index %d out of range", idx)
		}
	}
}

func TestRetireSameTick(t *testing.T) {
	p, _ := NewPool(4, 7)
	p.Spawn(BehaviorFalling, 0, 0)

	var maxAge float64
	p.Each(func(_ int, pt *Particle) { maxAge = pt.MaxAge })

	p.Update(maxAge+0.01, calmState())
	if p.ActiveCount() != 0 {
		t.Errorf("Expected slot retired in the same update, got %d active", p.ActiveCount())
	}
}

func TestAgeNeverExceedsMaxAge(t *testing.T) {
	p, _ := NewPool(16, 3)
	for i := 0; i < 16; i++ {
		p.Spawn(BehaviorScattering, 0, 0)
	}

	for tick := 0; tick < 600; tick++ {
		p.Update(1.0/60.0, calmState())
		p.Each(func(idx int, pt *Particle) {
			if pt.Age > pt.MaxAge {
				t.Fatalf("Slot %d: age %v exceeds max %v", idx, pt.Age, pt.MaxAge)
			}
		})
	}
}

func TestFrameRateIndependence(t *testing.T) {
	// Identical seeds produce identical spawns; 60 small steps must age
	// a particle the same as 2 large ones
	fine, _ := NewPool(1, 99)
	coarse, _ := NewPool(1, 99)

	fine.Spawn(BehaviorAmbient, 0, 0)
	coarse.Spawn(BehaviorAmbient, 0, 0)

	for i := 0; i < 60; i++ {
		fine.Update(1.0/60.0, calmState())
	}
	coarse.Update(0.5, calmState())
	coarse.Update(0.5, calmState())

	var fineAge, coarseAge float64
	fine.Each(func(_ int, pt *Particle) { fineAge = pt.Age })
	coarse.Each(func(_ int, pt *Particle) { coarseAge = pt.Age })

	if fineAge == 0 || coarseAge == 0 {
		t.Fatal("Expected both particles still alive after 1 simulated second")
	}
	if math.Abs(fineAge-coarseAge) > 1e-9 {
		t.Errorf("Expected equal ages, got %v vs %v", fineAge, coarseAge)
	}
}

func TestIntensityScalesMagnitudeOnly(t *testing.T) {
	quiet, _ := NewPool(1, 42)
	loud, _ := NewPool(1, 42)

	quiet.Spawn(BehaviorRising, 0, 0)
	loud.Spawn(BehaviorRising, 0, 0)

	// Same seed, same spawn: only the intensity gain differs, so the
	// displacement from the spawn point must be strictly ordered
	var startX, startY float64
	quiet.Each(func(_ int, pt *Particle) { startX, startY = pt.X, pt.Y })

	low := emotion.State{Emotion: emotion.Joy, Intensity: 0.1, BlendProgress: 1}
	high := emotion.State{Emotion: emotion.Joy, Intensity: 1.0, BlendProgress: 1}

	for i := 0; i < 30; i++ {
		quiet.Update(1.0/60.0, low)
		loud.Update(1.0/60.0, high)
	}

	var quietDist, loudDist float64
	var quietBehavior, loudBehavior Behavior
	quiet.Each(func(_ int, pt *Particle) {
		quietDist = math.Hypot(pt.X-startX, pt.Y-startY)
		quietBehavior = pt.Behavior
	})
	loud.Each(func(_ int, pt *Particle) {
		loudDist = math.Hypot(pt.X-startX, pt.Y-startY)
		loudBehavior = pt.Behavior
	})

	if loudDist <= quietDist {
		t.Errorf("Expected higher intensity to travel farther, got %v vs %v", loudDist, quietDist)
	}
	if quietBehavior != loudBehavior {
		t.Error("Intensity must never change the behavior tag")
	}
}

func TestResetIdempotent(t *testing.T) {
	p, _ := NewPool(8, 7)
	for i := 0; i < 8; i++ {
		p.Spawn(BehaviorBurst, 0, 0)
	}

	p.Reset()
	p.Reset()

	if p.ActiveCount() != 0 {
		t.Errorf("Expected zero active after Reset, got %d", p.ActiveCount())
	}
	for i := 0; i < 8; i++ {
		if _, ok := p.Spawn(BehaviorBurst, 0, 0); !ok {
			t.Fatalf("Expected full capacity after Reset, spawn %d dropped", i)
		}
	}
}

func TestBehaviorFor(t *testing.T) {
	tests := []struct {
		emotion emotion.Emotion
		want    Behavior
	}{
		{emotion.Neutral, BehaviorAmbient},
		{emotion.Joy, BehaviorRising},
		{emotion.Euphoria, BehaviorRising},
		{emotion.Sadness, BehaviorFalling},
		{emotion.Anger, BehaviorAggressive},
		{emotion.Fear, BehaviorScattering},
		{emotion.Surprise, BehaviorBurst},
		{emotion.Excited, BehaviorBurst},
		{emotion.Disgust, BehaviorRepelling},
		{emotion.Love, BehaviorConnecting},
		{emotion.Suspicion, BehaviorOrbiting},
		{emotion.Focused, BehaviorOrbiting},
		{emotion.Glitch, BehaviorScattering},
		{emotion.Resting, BehaviorAmbient},
		{emotion.Calm, BehaviorAmbient},
	}

	for _, tt := range tests {
		t.Run(tt.emotion.String(), func(t *testing.T) {
			if got := BehaviorFor(tt.emotion); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestZeroDtIsNoOp(t *testing.T) {
	p, _ := NewPool(4, 7)
	p.Spawn(BehaviorAmbient, 0, 0)

	var before float64
	p.Each(func(_ int, pt *Particle) { before = pt.Age })
	p.Update(0, calmState())
	p.Each(func(_ int, pt *Particle) {
		if pt.Age != before {
			t.Errorf("Expected age unchanged at dt=0, got %v", pt.Age)
		}
	})
}
