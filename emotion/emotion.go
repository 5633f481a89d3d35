package emotion

// Emotion is a primary emotional state. The set is closed; dispatch over
// it is exhaustive
type Emotion uint8

const (
	Neutral Emotion = iota
	Joy
	Sadness
	Anger
	Fear
	Surprise
	Disgust
	Love
	Suspicion
	Excited
	Resting
	Euphoria
	Focused
	Glitch
	Calm
	emotionCount
)

var emotionNames = [emotionCount]string{
	"neutral", "joy", "sadness", "anger", "fear", "surprise", "disgust",
	"love", "suspicion", "excited", "resting", "euphoria", "focused",
	"glitch", "calm",
}

// String returns the lowercase emotion name
func (e Emotion) String() string {
	if !e.Valid() {
		return "invalid"
	}
	return emotionNames[e]
}

// Valid reports whether e is a known emotion
func (e Emotion) Valid() bool {
	return e < emotionCount
}

// Count returns the number of defined emotions
func Count() int {
	return int(emotionCount)
}

// Undertone is a secondary modifier blended with a primary emotion
// (joy with an undertone of nervousness). UndertoneClear means none
type Undertone uint8

const (
	UndertoneClear Undertone = iota
	UndertoneNervous
	UndertoneConfident
	UndertoneTired
	UndertoneIntense
	UndertoneSubdued
	undertoneCount
)

var undertoneNames = [undertoneCount]string{
	"clear", "nervous", "confident", "tired", "intense", "subdued",
}

// String returns the lowercase undertone name
func (u Undertone) String() string {
	if !u.Valid() {
		return "invalid"
	}
	return undertoneNames[u]
}

// Valid reports whether u is a known undertone
func (u Undertone) Valid() bool {
	return u < undertoneCount
}

// State is the read-only snapshot other subsystems receive each tick.
// Passed by value; nothing outside the Machine mutates it
type State struct {
	Emotion         Emotion
	Undertone       Undertone
	Intensity       float64 // [0,1]
	BlendProgress   float64 // [0,1], 1 when stable
	UndertoneWeight float64 // [0,1], blend-in weight of Undertone
}

// Stable reports whether no transition is in flight
func (s State) Stable() bool {
	return s.BlendProgress >= 1
}
