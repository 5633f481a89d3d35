package gesture

import (
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/emote/status"
)

// sequence is one scheduled gesture chain. Firing is gated on live-set
// membership plus the cancelled flag, never on a raw timer handle, so a
// cancelled sequence can not fire from stale in-flight work
type sequence struct {
	id        uint64
	steps     []Step
	cursor    int
	cancelled bool
}

// Scheduler turns gestures and chains into time-delayed, cancellable
// steps. All pending work is plain data polled against the now passed to
// Update; no platform timers exist, so destroying the scheduler's
// collections inherently cancels everything in them
type Scheduler struct {
	reporter status.Reporter
	registry map[string][]StepSpec

	nextID uint64
	live   map[uint64]*sequence
	order  []*sequence

	pose    Pose
	lastNow time.Time
}

// NewScheduler creates a scheduler with the stock gesture library
func NewScheduler(reporter status.Reporter) *Scheduler {
	if reporter == nil {
		reporter = status.LogReporter{}
	}
	return &Scheduler{
		reporter: reporter,
		registry: builtins(),
		live:     make(map[uint64]*sequence),
		pose:     NeutralPose(),
	}
}

// RegisterGesture adds or replaces a named gesture template. Templates
// with no steps are rejected
func (s *Scheduler) RegisterGesture(name string, specs []StepSpec) error {
	if name == "" {
		return fmt.Errorf("gesture name must not be empty")
	}
	if len(specs) == 0 {
		return fmt.Errorf("gesture %q: template has no steps", name)
	}
	s.registry[name] = specs
	return nil
}

// Gestures returns the registered gesture names, sorted
func (s *Scheduler) Gestures() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Perform schedules a named gesture starting at now. An unknown name is
// reported and produces no sequence (ok=false)
func (s *Scheduler) Perform(name string, now time.Time) (uint64, bool) {
	specs, ok := s.registry[name]
	if !ok {
		s.reporter.Report("gesture", status.KindUnknownIdentifier, fmt.Sprintf("gesture %q", name))
		return 0, false
	}
	return s.Chain(specs, now), true
}

// Chain schedules an ordered set of steps as one cancellable unit. Each
// step's due time is now + its offset; steps with equal offsets fire
// together. Returns the sequence id
func (s *Scheduler) Chain(specs []StepSpec, now time.Time) uint64 {
	s.nextID++
	id := s.nextID

	if len(specs) == 0 {
		// Nothing to schedule; the id is still valid and already retired
		return id
	}

	steps := make([]Step, len(specs))
	for i, spec := range specs {
		steps[i] = Step{due: now.Add(spec.Offset), effects: spec.Effects}
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].due.Before(steps[j].due) })

	seq := &sequence{id: id, steps: steps}
	s.live[id] = seq
	s.order = append(s.order, seq)
	return id
}

// Cancel retires a sequence synchronously: once Cancel returns, that
// sequence can never apply another step, even if Update is mid-iteration
// on it. Unknown ids are reported and ignored
func (s *Scheduler) Cancel(id uint64) {
	seq, ok := s.live[id]
	if !ok {
		s.reporter.Report("gesture", status.KindUnknownIdentifier, fmt.Sprintf("sequence %d", id))
		return
	}
	seq.cancelled = true
	delete(s.live, id)
	s.compact()
}

// CancelAll retires every live sequence. Idempotent, and safe to call
// from within work triggered by Update
func (s *Scheduler) CancelAll() {
	for _, seq := range s.order {
		seq.cancelled = true
	}
	s.live = make(map[uint64]*sequence)
	s.order = s.order[:0]
}

// Update fires every step due at now and eases the pose hints back
// toward neutral. Iteration works on a snapshot and re-checks liveness
// per sequence, so cancellations during the pass take effect immediately
func (s *Scheduler) Update(now time.Time) {
	var dt float64
	if !s.lastNow.IsZero() && now.After(s.lastNow) {
		dt = now.Sub(s.lastNow).Seconds()
	}
	s.lastNow = now

	s.pose.relax(dt)

	snapshot := make([]*sequence, len(s.order))
	copy(snapshot, s.order)

	for _, seq := range snapshot {
		for seq.cursor < len(seq.steps) {
			if seq.cancelled {
				break
			}
			if _, ok := s.live[seq.id]; !ok {
				break
			}
			step := seq.steps[seq.cursor]
			if now.Before(step.due) {
				break
			}
			for _, e := range step.effects {
				s.pose.apply(e)
			}
			seq.cursor++
		}
		if seq.cursor >= len(seq.steps) {
			delete(s.live, seq.id)
		}
	}
	s.compact()
}

// compact drops retired and cancelled sequences from iteration order
func (s *Scheduler) compact() {
	kept := s.order[:0]
	for _, seq := range s.order {
		if _, ok := s.live[seq.id]; ok {
			kept = append(kept, seq)
		}
	}
	// Clear trailing pointers so retired sequences can be collected
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = kept
}

// Pose returns the current pose hints by value
func (s *Scheduler) Pose() Pose {
	return s.pose
}

// TakeBurst returns and clears the pending particle burst request
func (s *Scheduler) TakeBurst() int {
	n := s.pose.Burst
	s.pose.Burst = 0
	return n
}

// ActiveCount returns the number of live sequences
func (s *Scheduler) ActiveCount() int {
	return len(s.live)
}
