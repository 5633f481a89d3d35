package status

import (
	"log"
	"sync"
)

// Kind classifies a degraded-but-nonfatal condition
type Kind uint8

const (
	// KindConfiguration marks a rejected parameter; last-good state is kept
	KindConfiguration Kind = iota
	// KindUnknownIdentifier marks a lookup miss (gesture name, sequence id)
	KindUnknownIdentifier
	// KindCallbackFailure marks a frame callback that panicked and was
	// deactivated
	KindCallbackFailure
)

// String returns the kind name for log output
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUnknownIdentifier:
		return "unknown-identifier"
	case KindCallbackFailure:
		return "callback-failure"
	}
	return "unknown"
}

// Reporter receives degraded-operation reports from subsystems
// Components never panic or return errors across the tick boundary for
// expected failure modes; they report here and continue
type Reporter interface {
	Report(component string, kind Kind, context string)
}

// LogReporter writes reports to the standard logger
type LogReporter struct{}

// Report implements Reporter
func (LogReporter) Report(component string, kind Kind, context string) {
	log.Printf("emote: %s: %s: %s", component, kind, context)
}

// Report is one recorded reporter entry
type Report struct {
	Component string
	Kind      Kind
	Context   string
}

// Recorder captures reports for test assertions
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

// Report implements Reporter
func (r *Recorder) Report(component string, kind Kind, context string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Component: component, Kind: kind, Context: context})
}

// Reports returns a copy of everything recorded so far
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Count returns the number of recorded reports of the given kind
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rep := range r.reports {
		if rep.Kind == kind {
			n++
		}
	}
	return n
}
