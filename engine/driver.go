package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/emote/parameter"
	"github.com/lixenwraith/emote/status"
)

// Tier is the coarse ordering class for frame callbacks. Within one tick
// tiers run Critical through Idle; within a tier, registration order
type Tier uint8

const (
	TierCritical Tier = iota
	TierHigh
	TierMedium
	TierLow
	TierIdle
	tierCount
)

var tierNames = [tierCount]string{"critical", "high", "medium", "low", "idle"}

// String returns the lowercase tier name
func (t Tier) String() string {
	if t >= tierCount {
		return "invalid"
	}
	return tierNames[t]
}

// TickContext is the per-tick snapshot handed to every callback. Built
// fresh each tick and never retained
type TickContext struct {
	Now          time.Time
	Delta        time.Duration
	DeltaSeconds float64
	Frame        uint64
}

// TickFunc is a registered frame callback
type TickFunc func(ctx TickContext)

// callback identity is the id, never the closure, so the registry can be
// iterated while callers add and remove entries mid-tick
type callback struct {
	id     uint64
	tier   Tier
	fn     TickFunc
	active bool
}

type driverState uint8

const (
	driverRunning driverState = iota
	driverDestroyed
)

// FrameDriver is the single per-frame entry point. The host calls Tick
// once per display refresh; the driver computes the clamped delta and
// fans out to callbacks in strict tier order. A panicking callback is
// reported and deactivated, never aborting the tick for the others
type FrameDriver struct {
	reporter status.Reporter
	maxClamp time.Duration

	nextID uint64
	tiers  [tierCount][]*callback
	byID   map[uint64]*callback

	// Registrations land here and activate at the start of the next
	// tick, avoiding mutation of a tier slice mid-iteration
	pending []*callback

	lastTick time.Time
	frame    uint64
	state    driverState

	statTicks    *atomic.Int64
	statFailures *atomic.Int64
}

// NewFrameDriver creates a driver. maxClamp <= 0 falls back to
// parameter.MaxTickClamp
func NewFrameDriver(reporter status.Reporter, registry *status.Registry, maxClamp time.Duration) *FrameDriver {
	if reporter == nil {
		reporter = status.LogReporter{}
	}
	if registry == nil {
		registry = status.NewRegistry()
	}
	if maxClamp <= 0 {
		maxClamp = parameter.MaxTickClamp
	}
	return &FrameDriver{
		reporter:     reporter,
		maxClamp:     maxClamp,
		byID:         make(map[uint64]*callback),
		statTicks:    registry.Ints.Get("driver.ticks"),
		statFailures: registry.Ints.Get("driver.callback_failures"),
	}
}

// Register queues fn for activation on the next tick and returns its id
// immediately. An out-of-range tier is reported and coerced to TierIdle
func (d *FrameDriver) Register(fn TickFunc, tier Tier) uint64 {
	if d.state == driverDestroyed || fn == nil {
		return 0
	}
	if tier >= tierCount {
		d.reporter.Report("driver", status.KindConfiguration, fmt.Sprintf("tier out of range: %d", tier))
		tier = TierIdle
	}

	d.nextID++
	cb := &callback{id: d.nextID, tier: tier, fn: fn, active: true}
	d.byID[cb.id] = cb
	d.pending = append(d.pending, cb)
	return cb.id
}

// Unregister deactivates the callback immediately; the slot is removed
// during the next tick's compaction pass. Unknown or repeated ids are a
// no-op
func (d *FrameDriver) Unregister(id uint64) {
	cb, ok := d.byID[id]
	if !ok {
		return
	}
	cb.active = false
	delete(d.byID, id)
}

// Tick advances one frame: compacts the registry, activates pending
// registrations, computes the clamped delta and invokes callbacks in
// tier order. A no-op after Destroy
func (d *FrameDriver) Tick(now time.Time) {
	if d.state == driverDestroyed {
		return
	}

	d.compact()
	d.activatePending()

	var delta time.Duration
	if !d.lastTick.IsZero() {
		delta = now.Sub(d.lastTick)
		if delta < 0 {
			delta = 0
		}
		if delta > d.maxClamp {
			delta = d.maxClamp
		}
	}
	d.lastTick = now
	d.frame++

	ctx := TickContext{
		Now:          now,
		Delta:        delta,
		DeltaSeconds: delta.Seconds(),
		Frame:        d.frame,
	}

	for tier := Tier(0); tier < tierCount; tier++ {
		for _, cb := range d.tiers[tier] {
			if !cb.active {
				continue
			}
			d.invoke(cb, ctx)
		}
	}

	d.statTicks.Add(1)
}

// invoke runs one callback with panic isolation at the driver boundary
func (d *FrameDriver) invoke(cb *callback, ctx TickContext) {
	defer func() {
		if r := recover(); r != nil {
			cb.active = false
			delete(d.byID, cb.id)
			d.statFailures.Add(1)
			d.reporter.Report("driver", status.KindCallbackFailure,
				fmt.Sprintf("callback %d (%s): %v", cb.id, cb.tier, r))
		}
	}()
	cb.fn(ctx)
}

// compact physically removes deactivated callbacks from the tier slices
func (d *FrameDriver) compact() {
	for tier := range d.tiers {
		kept := d.tiers[tier][:0]
		for _, cb := range d.tiers[tier] {
			if cb.active {
				kept = append(kept, cb)
			}
		}
		for i := len(kept); i < len(d.tiers[tier]); i++ {
			d.tiers[tier][i] = nil
		}
		d.tiers[tier] = kept
	}
}

// activatePending moves queued registrations into their tiers. Runs at
// tick start, so an entry registered mid-tick first fires on the
// following tick
func (d *FrameDriver) activatePending() {
	if len(d.pending) == 0 {
		return
	}
	for _, cb := range d.pending {
		if cb.active {
			d.tiers[cb.tier] = append(d.tiers[cb.tier], cb)
		}
	}
	d.pending = d.pending[:0]
}

// ActiveCount returns the number of registered active callbacks,
// including ones still pending activation
func (d *FrameDriver) ActiveCount() int {
	return len(d.byID)
}

// Frame returns the index of the most recent tick
func (d *FrameDriver) Frame() uint64 {
	return d.frame
}

// Destroy deactivates all callbacks and clears the registry. Idempotent
// and terminal: the driver never runs again
func (d *FrameDriver) Destroy() {
	if d.state == driverDestroyed {
		return
	}
	d.state = driverDestroyed
	for tier := range d.tiers {
		d.tiers[tier] = nil
	}
	d.pending = nil
	d.byID = make(map[uint64]*callback)
}
