package particle

import (
	"fmt"
	"math"

	"github.com/lixenwraith/emote/parameter"
)

// Pool is a fixed-capacity particle store with a free-list. Retired
// slots are recycled, so steady-state operation allocates nothing and
// memory stays bounded regardless of spawn rate
type Pool struct {
	slots  []Particle
	free   []int
	active int
	rng    rand
}

// NewPool pre-allocates capacity slots. Capacity must be positive; this
// is the only fatal validation in the engine and it happens only at
// construction
func NewPool(capacity int, seed uint64) (*Pool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("particle pool capacity must be positive, got %d", capacity)
	}

	p := &Pool{
		slots: make([]Particle, capacity),
		free:  make([]int, capacity),
		rng:   newRand(seed),
	}
	// Free-list starts holding every slot, last index popped first
	for i := range p.free {
		p.free[i] = capacity - 1 - i
	}
	return p, nil
}

// Capacity returns the fixed slot count
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// ActiveCount returns the number of live particles
func (p *Pool) ActiveCount() int {
	return p.active
}

// Spawn claims a free slot for a particle of the given behavior around
// origin (ox, oy). Returns ok=false when the pool is saturated; the
// request is dropped rather than growing the pool
func (p *Pool) Spawn(behavior Behavior, ox, oy float64) (int, bool) {
	if !behavior.Valid() {
		return 0, false
	}
	if len(p.free) == 0 {
		return 0, false
	}

	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.active++

	slot := &p.slots[idx]
	*slot = Particle{
		OriginX:  ox,
		OriginY:  oy,
		MaxAge:   p.rng.rangeF(parameter.ParticleMinAge, parameter.ParticleMaxAge),
		Phase:    p.rng.rangeF(0, 2*math.Pi),
		Scatter:  p.rng.rangeF(0, parameter.ScatterInterval),
		Behavior: behavior,
		alive:    true,
	}

	speed := p.rng.rangeF(parameter.ParticleMinSpeed, parameter.ParticleMaxSpeed)
	ang := p.rng.rangeF(0, 2*math.Pi)

	switch behavior {
	case BehaviorRising:
		slot.X = ox + p.rng.rangeF(-3, 3)
		slot.Y = oy + p.rng.rangeF(0, 2)
		slot.VX = p.rng.rangeF(-1, 1)
		slot.VY = -speed
	case BehaviorFalling:
		slot.X = ox + p.rng.rangeF(-3, 3)
		slot.Y = oy + p.rng.rangeF(-2, 0)
		slot.VX = p.rng.rangeF(-0.5, 0.5)
		slot.VY = speed * 0.4
	case BehaviorOrbiting:
		// Start on a ring with tangential velocity
		radius := p.rng.rangeF(2, 6)
		slot.X = ox + math.Cos(ang)*radius
		slot.Y = oy + math.Sin(ang)*radius
		slot.VX = -math.Sin(ang) * speed
		slot.VY = math.Cos(ang) * speed
	case BehaviorBurst, BehaviorRepelling:
		slot.X = ox + p.rng.rangeF(-0.5, 0.5)
		slot.Y = oy + p.rng.rangeF(-0.5, 0.5)
		slot.VX = math.Cos(ang) * speed * 1.6
		slot.VY = math.Sin(ang) * speed * 1.6
	case BehaviorConnecting:
		// Spawn out wide and ease home
		radius := p.rng.rangeF(6, 12)
		slot.X = ox + math.Cos(ang)*radius
		slot.Y = oy + math.Sin(ang)*radius
	default:
		// Ambient, Aggressive, Scattering
		slot.X = ox + p.rng.rangeF(-4, 4)
		slot.Y = oy + p.rng.rangeF(-3, 3)
		slot.VX = math.Cos(ang) * speed * 0.5
		slot.VY = math.Sin(ang) * speed * 0.5
	}

	return idx, true
}

// retire frees one slot for reuse, same tick as the age check that
// triggered it
func (p *Pool) retire(idx int) {
	slot := &p.slots[idx]
	if !slot.alive {
		return
	}
	slot.alive = false
	p.free = append(p.free, idx)
	p.active--
}

// Reset retires every particle. Idempotent; after Reset the pool is
// indistinguishable from a freshly constructed one apart from RNG state
func (p *Pool) Reset() {
	for i := range p.slots {
		p.slots[i].alive = false
	}
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	p.active = 0
}

// Each calls fn for every live particle. The pointer is only valid for
// the duration of the call
func (p *Pool) Each(fn func(idx int, pt *Particle)) {
	for i := range p.slots {
		if p.slots[i].alive {
			fn(i, &p.slots[i])
		}
	}
}

// rand is a tiny deterministic RNG (xorshift64*)
type rand struct {
	s uint64
}

func newRand(seed uint64) rand {
	if seed == 0 {
		seed = 1
	}
	return rand{s: seed}
}

func (r *rand) next() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *rand) float64() float64 {
	return float64(r.next()>>11) * (1.0 / (1 << 53))
}

func (r *rand) rangeF(min, max float64) float64 {
	return min + (max-min)*r.float64()
}
