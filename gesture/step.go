package gesture

import (
	"time"

	"github.com/lixenwraith/emote/parameter"
)

// EffectKind selects what a gesture step mutates on the pose hints
type EffectKind uint8

const (
	// EffectNudge displaces the pose by (X, Y) cells
	EffectNudge EffectKind = iota
	// EffectScale adds Amount to the pose scale hint
	EffectScale
	// EffectRotate adds Amount radians to the pose rotation hint
	EffectRotate
	// EffectBurst requests an Amount-sized particle burst
	EffectBurst
	// EffectFlash raises the flash pulse to at least Amount
	EffectFlash
)

// Effect is one pose mutation. Steps carry one or more effects that are
// applied together when the step fires
type Effect struct {
	Kind   EffectKind
	X, Y   float64
	Amount float64
}

// StepSpec is one step of a gesture template: a delay offset from
// sequence start plus the effects that fire at that offset. Steps with
// equal offsets fire together
type StepSpec struct {
	Offset  time.Duration
	Effects []Effect
}

// Step is a scheduled StepSpec with its absolute due time resolved
type Step struct {
	due     time.Time
	effects []Effect
}

// Pose carries the behavior hints gesture steps mutate and the embedder
// reads. Plain data: the scheduler never calls into other subsystems
type Pose struct {
	OffsetX  float64
	OffsetY  float64
	Scale    float64 // 1 = neutral
	Rotation float64 // radians, 0 = neutral
	Flash    float64 // [0,1] pulse, decays to 0
	Burst    int     // pending particle burst request
}

// NeutralPose returns the identity pose
func NeutralPose() Pose {
	return Pose{Scale: 1}
}

func (p *Pose) apply(e Effect) {
	switch e.Kind {
	case EffectNudge:
		p.OffsetX = clamp(p.OffsetX+e.X, -parameter.PoseMaxOffset, parameter.PoseMaxOffset)
		p.OffsetY = clamp(p.OffsetY+e.Y, -parameter.PoseMaxOffset, parameter.PoseMaxOffset)
	case EffectScale:
		p.Scale = clamp(p.Scale+e.Amount, 0, parameter.PoseMaxScale)
	case EffectRotate:
		p.Rotation += e.Amount
	case EffectBurst:
		p.Burst += int(e.Amount)
	case EffectFlash:
		if e.Amount > p.Flash {
			p.Flash = clamp(e.Amount, 0, 1)
		}
	}
}

// relax eases the pose back toward neutral, dt-scaled
func (p *Pose) relax(dt float64) {
	k := parameter.PoseRelaxRate * dt
	if k > 1 {
		k = 1
	}
	p.OffsetX -= p.OffsetX * k
	p.OffsetY -= p.OffsetY * k
	p.Scale += (1 - p.Scale) * k
	p.Rotation -= p.Rotation * k
	p.Flash -= p.Flash * k
	if p.Flash < 0 {
		p.Flash = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
