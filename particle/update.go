package particle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/emote/emotion"
	"github.com/lixenwraith/emote/parameter"
)

// Update advances every live particle by dt seconds under the current
// emotional state. All deltas are dt-scaled so behavior is frame-rate
// independent. Slots whose age reaches MaxAge are retired in this same
// pass, not deferred
func (p *Pool) Update(dt float64, st emotion.State) {
	if dt <= 0 {
		return
	}

	// Intensity scales velocity magnitude only; behavior never changes
	gain := 0.5 + st.Intensity

	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.alive {
			continue
		}

		slot.Age += dt
		if slot.Age >= slot.MaxAge {
			slot.Age = slot.MaxAge
			p.retire(i)
			continue
		}

		switch slot.Behavior {
		case BehaviorAmbient:
			// Gentle horizontal sway on top of slow drift
			slot.VX += math.Sin(slot.Age*2+slot.Phase) * parameter.AmbientSway * dt

		case BehaviorRising:
			slot.VY -= parameter.RiseAccel * dt
			slot.VX += math.Sin(slot.Age*3+slot.Phase) * parameter.AmbientSway * dt

		case BehaviorFalling:
			slot.VY += parameter.FallAccel * dt

		case BehaviorOrbiting:
			// Radial attraction plus damping circularizes the orbit
			dx := slot.OriginX - slot.X
			dy := slot.OriginY - slot.Y
			dist := math.Hypot(dx, dy)
			if dist > 0.01 {
				slot.VX += dx / dist * parameter.OrbitAttraction * dt
				slot.VY += dy / dist * parameter.OrbitAttraction * dt
			}
			slot.VX -= slot.VX * parameter.OrbitDamping * dt * 0.1
			slot.VY -= slot.VY * parameter.OrbitDamping * dt * 0.1

		case BehaviorBurst:
			// Quadratic drag, scales with speed²
			speed := math.Hypot(slot.VX, slot.VY)
			drag := parameter.BurstDrag * speed
			slot.VX -= slot.VX * drag * dt
			slot.VY -= slot.VY * drag * dt

		case BehaviorRepelling:
			dx := slot.X - slot.OriginX
			dy := slot.Y - slot.OriginY
			dist := math.Hypot(dx, dy)
			if dist > 0.01 {
				slot.VX += dx / dist * parameter.RiseAccel * dt
				slot.VY += dy / dist * parameter.RiseAccel * dt
			}

		case BehaviorAggressive:
			slot.VX += (p.rng.float64()*2 - 1) * parameter.JitterSpeed * dt
			slot.VY += (p.rng.float64()*2 - 1) * parameter.JitterSpeed * dt

		case BehaviorScattering:
			slot.Scatter -= dt
			if slot.Scatter <= 0 {
				slot.Scatter = parameter.ScatterInterval * (0.5 + p.rng.float64())
				ang := p.rng.rangeF(0, 2*math.Pi)
				speed := math.Hypot(slot.VX, slot.VY)
				if speed < parameter.ParticleMinSpeed {
					speed = parameter.ParticleMinSpeed
				}
				slot.VX = math.Cos(ang) * speed
				slot.VY = math.Sin(ang) * speed
			}

		case BehaviorConnecting:
			slot.VX += (slot.OriginX - slot.X) * parameter.ConnectEase * dt
			slot.VY += (slot.OriginY - slot.Y) * parameter.ConnectEase * dt
		}

		slot.X += slot.VX * gain * dt
		slot.Y += slot.VY * gain * dt
	}
}

// View is one particle prepared for a renderer: position, tinted color,
// remaining-life fade
type View struct {
	X, Y    float64
	R, G, B uint8
	Fade    float64
}

// Views appends a View for every live particle into buf and returns it.
// Pass the previous frame's slice to reuse its backing array. The tint
// is jittered per slot so a cloud of one emotion still shimmers
func (p *Pool) Views(buf []View, tint colorful.Color) []View {
	buf = buf[:0]
	h, c, l := tint.Hcl()

	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.alive {
			continue
		}
		jitter := math.Sin(slot.Phase) * 12 // degrees of hue wobble
		col := colorful.Hcl(h+jitter, c, l).Clamped()
		r, g, b := col.RGB255()
		buf = append(buf, View{
			X: slot.X, Y: slot.Y,
			R: r, G: g, B: b,
			Fade: slot.Fade(),
		})
	}
	return buf
}
