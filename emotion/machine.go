package emotion

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/emote/status"
)

// Machine holds the character's emotional state: exactly one current
// state and at most one blend target. A new request retargets the blend
// in place; there is no queue of pending emotions
type Machine struct {
	reporter status.Reporter

	emotion   Emotion
	undertone Undertone

	// Interpolation endpoints. intensity/undertoneWeight hold the live
	// interpolated values so a retarget can resume from them without a
	// visible snap
	intensity       float64
	undertoneWeight float64

	blending      bool
	progress      float64
	duration      float64 // seconds
	fromIntensity float64
	fromWeight    float64
	fromColor     colorful.Color
	target        Emotion
	targetTone    Undertone
}

// NewMachine creates a machine resting at Neutral
func NewMachine(reporter status.Reporter) *Machine {
	if reporter == nil {
		reporter = status.LogReporter{}
	}
	return &Machine{
		reporter:  reporter,
		emotion:   Neutral,
		undertone: UndertoneClear,
		intensity: ProfileOf(Neutral).Intensity,
		progress:  1,
	}
}

// SetEmotion requests a transition to the given emotion and undertone
// over durationSeconds. An in-flight blend is discarded and replaced;
// the new blend starts from the current interpolated intensity, not from
// zero. durationSeconds <= 0 resolves instantly
func (m *Machine) SetEmotion(e Emotion, u Undertone, durationSeconds float64) {
	if !e.Valid() {
		m.reporter.Report("emotion", status.KindConfiguration, fmt.Sprintf("emotion out of range: %d", e))
		return
	}
	if !u.Valid() {
		m.reporter.Report("emotion", status.KindConfiguration, fmt.Sprintf("undertone out of range: %d", u))
		return
	}

	if durationSeconds <= 0 {
		m.commit(e, u)
		return
	}

	// While blending, the live weight describes targetTone, not the
	// outgoing undertone
	currentTone := m.undertone
	if m.blending {
		currentTone = m.targetTone
	}
	m.fromIntensity = m.intensity
	m.fromColor = m.Color()
	if u == currentTone {
		m.fromWeight = m.undertoneWeight
	} else {
		m.fromWeight = 0
	}

	m.blending = true
	m.progress = 0
	m.duration = durationSeconds
	m.target = e
	m.targetTone = u
}

// Update advances an in-flight blend by dt seconds
func (m *Machine) Update(dt float64) {
	if !m.blending || dt <= 0 {
		return
	}

	m.progress += dt / m.duration
	if m.progress >= 1 {
		m.commit(m.target, m.targetTone)
		return
	}

	targetIntensity := ProfileOf(m.target).Intensity
	targetWeight := 1.0
	if m.targetTone == UndertoneClear {
		targetWeight = 0
	}
	m.intensity = m.fromIntensity + (targetIntensity-m.fromIntensity)*m.progress
	m.undertoneWeight = m.fromWeight + (targetWeight-m.fromWeight)*m.progress
}

// commit ends any transition and makes the target current
func (m *Machine) commit(e Emotion, u Undertone) {
	m.emotion = e
	m.undertone = u
	m.intensity = ProfileOf(e).Intensity
	if u == UndertoneClear {
		m.undertoneWeight = 0
	} else {
		m.undertoneWeight = 1
	}
	m.blending = false
	m.progress = 1
	m.target = e
	m.targetTone = u
}

// Current returns the state snapshot for this tick. During a blend the
// reported emotion is still the outgoing one; intensity and undertone
// weight carry the interpolation
func (m *Machine) Current() State {
	s := State{
		Emotion:         m.emotion,
		Undertone:       m.undertone,
		Intensity:       m.intensity,
		BlendProgress:   m.progress,
		UndertoneWeight: m.undertoneWeight,
	}
	if m.blending {
		s.Undertone = m.targetTone
	}
	return s
}

// Target returns the in-flight blend target, ok=false when stable
func (m *Machine) Target() (Emotion, bool) {
	if !m.blending {
		return m.emotion, false
	}
	return m.target, true
}

// Color returns the current glow color. Transitions blend perceptually
// between the outgoing and incoming profile colors
func (m *Machine) Color() colorful.Color {
	if !m.blending {
		return ProfileOf(m.emotion).Color
	}
	return m.fromColor.BlendLuv(ProfileOf(m.target).Color, m.progress).Clamped()
}

// Reset returns the machine to a stable Neutral state. Idempotent
func (m *Machine) Reset() {
	m.commit(Neutral, UndertoneClear)
}
