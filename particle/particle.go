package particle

import "github.com/lixenwraith/emote/emotion"

// Behavior selects the physics rule set a particle follows for its whole
// life. Intensity modulates magnitudes within a behavior, never the
// behavior itself
type Behavior uint8

const (
	BehaviorAmbient Behavior = iota
	BehaviorRising
	BehaviorFalling
	BehaviorOrbiting
	BehaviorBurst
	BehaviorRepelling
	BehaviorAggressive
	BehaviorScattering
	BehaviorConnecting
	behaviorCount
)

var behaviorNames = [behaviorCount]string{
	"ambient", "rising", "falling", "orbiting", "burst",
	"repelling", "aggressive", "scattering", "connecting",
}

// String returns the lowercase behavior name
func (b Behavior) String() string {
	if !b.Valid() {
		return "invalid"
	}
	return behaviorNames[b]
}

// Valid reports whether b is a known behavior
func (b Behavior) Valid() bool {
	return b < behaviorCount
}

// BehaviorFor maps each emotion to its ambient particle behavior
func BehaviorFor(e emotion.Emotion) Behavior {
	switch e {
	case emotion.Joy, emotion.Euphoria:
		return BehaviorRising
	case emotion.Sadness:
		return BehaviorFalling
	case emotion.Anger:
		return BehaviorAggressive
	case emotion.Fear:
		return BehaviorScattering
	case emotion.Surprise, emotion.Excited:
		return BehaviorBurst
	case emotion.Disgust:
		return BehaviorRepelling
	case emotion.Love:
		return BehaviorConnecting
	case emotion.Suspicion, emotion.Focused:
		return BehaviorOrbiting
	case emotion.Glitch:
		return BehaviorScattering
	default:
		// Neutral, Resting, Calm
		return BehaviorAmbient
	}
}

// Particle is one pooled slot. Slots are recycled, never deallocated;
// alive guards against reading a freed slot through a stale index
type Particle struct {
	X, Y     float64
	VX, VY   float64
	OriginX  float64
	OriginY  float64
	Age      float64 // seconds, Age <= MaxAge always
	MaxAge   float64
	Phase    float64 // per-slot jitter phase for sway and tint
	Scatter  float64 // countdown to next direction change (scattering)
	Behavior Behavior
	alive    bool
}

// Alive reports whether the slot currently holds a live particle
func (p *Particle) Alive() bool {
	return p.alive
}

// Fade returns the remaining-life fraction [0,1], 1 at spawn
func (p *Particle) Fade() float64 {
	if p.MaxAge <= 0 {
		return 0
	}
	f := 1 - p.Age/p.MaxAge
	if f < 0 {
		return 0
	}
	return f
}
