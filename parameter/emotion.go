package parameter

import "time"

// Emotional State Machine
const (
	// DefaultBlendDuration is the transition length used when the caller
	// passes no explicit duration
	DefaultBlendDuration = 500 * time.Millisecond

	// BreathTempoBase is the idle breath cycle rate (cycles per second)
	BreathTempoBase = 0.25
)

// Undertone modifiers (multipliers on the primary emotion profile)
const (
	// UndertoneNervousRate speeds particle emission and tempo
	UndertoneNervousRate = 1.4
	// UndertoneConfidentRate steadies emission slightly above base
	UndertoneConfidentRate = 1.1
	// UndertoneTiredRate slows everything down
	UndertoneTiredRate = 0.6
	// UndertoneIntenseRate pushes emission hard
	UndertoneIntenseRate = 1.7
	// UndertoneSubduedRate mutes emission
	UndertoneSubduedRate = 0.5
)
