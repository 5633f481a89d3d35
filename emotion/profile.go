package emotion

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/emote/parameter"
)

// Profile is the fixed visual/tempo character of one emotion. The table
// is the dispatch surface the rest of the system reads; it never changes
// at runtime
type Profile struct {
	// Intensity is the stable intensity the machine blends toward when
	// this emotion is requested
	Intensity float64

	// Color is the signature glow color
	Color colorful.Color

	// Emission is relative ambient particle emission [0,1]
	Emission float64

	// BreathTempo multiplies the base breath cycle rate
	BreathTempo float64
}

var profiles = [emotionCount]Profile{
	Neutral:   {Intensity: 0.40, Color: rgb(0x9a, 0xa5, 0xb1), Emission: 0.20, BreathTempo: 1.0},
	Joy:       {Intensity: 0.85, Color: rgb(0xff, 0xd5, 0x4f), Emission: 0.75, BreathTempo: 1.3},
	Sadness:   {Intensity: 0.45, Color: rgb(0x5a, 0x7b, 0xc4), Emission: 0.35, BreathTempo: 0.6},
	Anger:     {Intensity: 0.95, Color: rgb(0xe5, 0x3e, 0x30), Emission: 0.85, BreathTempo: 1.8},
	Fear:      {Intensity: 0.80, Color: rgb(0x8a, 0x5c, 0xd6), Emission: 0.60, BreathTempo: 2.2},
	Surprise:  {Intensity: 0.90, Color: rgb(0xff, 0x8f, 0x3f), Emission: 0.70, BreathTempo: 1.6},
	Disgust:   {Intensity: 0.65, Color: rgb(0x7d, 0x9e, 0x3c), Emission: 0.40, BreathTempo: 0.9},
	Love:      {Intensity: 0.80, Color: rgb(0xf2, 0x6f, 0xa8), Emission: 0.65, BreathTempo: 0.8},
	Suspicion: {Intensity: 0.55, Color: rgb(0x6e, 0x8f, 0x6a), Emission: 0.30, BreathTempo: 0.9},
	Excited:   {Intensity: 1.00, Color: rgb(0xff, 0x5f, 0xd2), Emission: 0.95, BreathTempo: 2.0},
	Resting:   {Intensity: 0.20, Color: rgb(0x4a, 0x5a, 0x6a), Emission: 0.10, BreathTempo: 0.4},
	Euphoria:  {Intensity: 1.00, Color: rgb(0xff, 0xf3, 0x8f), Emission: 1.00, BreathTempo: 1.5},
	Focused:   {Intensity: 0.70, Color: rgb(0x3f, 0xc4, 0xd6), Emission: 0.25, BreathTempo: 0.7},
	Glitch:    {Intensity: 0.90, Color: rgb(0x58, 0xff, 0x7a), Emission: 0.80, BreathTempo: 2.5},
	Calm:      {Intensity: 0.35, Color: rgb(0x76, 0xc7, 0xb0), Emission: 0.15, BreathTempo: 0.5},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// ProfileOf returns the fixed profile for a valid emotion
func ProfileOf(e Emotion) Profile {
	if !e.Valid() {
		return profiles[Neutral]
	}
	return profiles[e]
}

// RateModifier returns the emission/tempo multiplier an undertone applies
// on top of the primary profile, scaled by its blend-in weight
func RateModifier(u Undertone, weight float64) float64 {
	var m float64
	switch u {
	case UndertoneNervous:
		m = parameter.UndertoneNervousRate
	case UndertoneConfident:
		m = parameter.UndertoneConfidentRate
	case UndertoneTired:
		m = parameter.UndertoneTiredRate
	case UndertoneIntense:
		m = parameter.UndertoneIntenseRate
	case UndertoneSubdued:
		m = parameter.UndertoneSubduedRate
	default:
		return 1.0
	}
	if weight < 0 {
		weight = 0
	} else if weight > 1 {
		weight = 1
	}
	return 1.0 + (m-1.0)*weight
}

// EmissionRate returns ambient particle emission for a state in spawns
// per second, folding in intensity and undertone modifier
func EmissionRate(s State) float64 {
	base := ProfileOf(s.Emotion).Emission * s.Intensity * parameter.SpawnRateScale
	return base * RateModifier(s.Undertone, s.UndertoneWeight)
}
