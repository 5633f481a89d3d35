package gesture

import (
	"time"

	"github.com/lixenwraith/emote/parameter"
)

// builtins is the stock gesture library. Templates are cloned into
// absolute-time steps at schedule time, so the table itself is never
// mutated
func builtins() map[string][]StepSpec {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	return map[string][]StepSpec{
		"wave": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, X: 2.5}}},
			{Offset: ms(140), Effects: []Effect{{Kind: EffectNudge, X: -5}}},
			{Offset: ms(280), Effects: []Effect{{Kind: EffectNudge, X: 5}}},
			{Offset: ms(420), Effects: []Effect{{Kind: EffectNudge, X: -2.5}}},
		},
		"bounce": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, Y: -4}}},
			{Offset: ms(180), Effects: []Effect{{Kind: EffectNudge, Y: 3}}},
			{Offset: ms(320), Effects: []Effect{{Kind: EffectNudge, Y: -1.5}}},
		},
		"pulse": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectScale, Amount: 0.5}, {Kind: EffectFlash, Amount: 0.6}}},
			{Offset: ms(250), Effects: []Effect{{Kind: EffectScale, Amount: -0.3}}},
		},
		"shake": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, X: 2}}},
			{Offset: ms(60), Effects: []Effect{{Kind: EffectNudge, X: -4}}},
			{Offset: ms(120), Effects: []Effect{{Kind: EffectNudge, X: 4}}},
			{Offset: ms(180), Effects: []Effect{{Kind: EffectNudge, X: -4}}},
			{Offset: ms(240), Effects: []Effect{{Kind: EffectNudge, X: 2}}},
		},
		"spin": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectRotate, Amount: 1.57}}},
			{Offset: ms(150), Effects: []Effect{{Kind: EffectRotate, Amount: 1.57}}},
			{Offset: ms(300), Effects: []Effect{{Kind: EffectRotate, Amount: 1.57}}},
			{Offset: ms(450), Effects: []Effect{{Kind: EffectRotate, Amount: 1.57}}},
		},
		"nod": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, Y: 1.5}}},
			{Offset: ms(160), Effects: []Effect{{Kind: EffectNudge, Y: -1.5}}},
			{Offset: ms(320), Effects: []Effect{{Kind: EffectNudge, Y: 1.5}}},
		},
		"tilt": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectRotate, Amount: 0.35}}},
			{Offset: ms(400), Effects: []Effect{{Kind: EffectRotate, Amount: -0.35}}},
		},
		"bow": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, Y: 3}, {Kind: EffectRotate, Amount: 0.5}}},
			{Offset: ms(500), Effects: []Effect{{Kind: EffectNudge, Y: -3}, {Kind: EffectRotate, Amount: -0.5}}},
		},
		"breathe": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectScale, Amount: 0.15}}},
			{Offset: ms(900), Effects: []Effect{{Kind: EffectScale, Amount: -0.15}}},
		},
		"flash": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectFlash, Amount: 1.0}}},
		},
		"drift": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectNudge, X: 1.2, Y: -0.6}}},
			{Offset: ms(600), Effects: []Effect{{Kind: EffectNudge, X: -1.2, Y: 0.6}}},
		},
		"sparkle": {
			{Offset: ms(0), Effects: []Effect{{Kind: EffectBurst, Amount: parameter.GestureBurstCount}, {Kind: EffectFlash, Amount: 0.8}}},
		},
	}
}
