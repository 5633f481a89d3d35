// Interactive playground for the emote engine: drives a full engine in a
// terminal, renders the particle field with true-color cells and maps
// keys to emotions and gestures
package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/emote/emotion"
	"github.com/lixenwraith/emote/engine"
	"github.com/lixenwraith/emote/parameter"
	"github.com/lixenwraith/emote/particle"
	"github.com/lixenwraith/emote/status"
)

// Terminal cells are about twice as tall as wide
const aspectRatio = 2.0

var emotionKeys = map[rune]emotion.Emotion{
	'1': emotion.Neutral,
	'2': emotion.Joy,
	'3': emotion.Sadness,
	'4': emotion.Anger,
	'5': emotion.Fear,
	'6': emotion.Surprise,
	'7': emotion.Disgust,
	'8': emotion.Love,
	'9': emotion.Suspicion,
	'0': emotion.Excited,
	'r': emotion.Resting,
	'u': emotion.Euphoria,
	'f': emotion.Focused,
	'g': emotion.Glitch,
	'c': emotion.Calm,
}

var gestureKeys = map[rune]string{
	'w': "wave",
	'b': "bounce",
	'p': "pulse",
	's': "shake",
	'o': "spin",
	'n': "nod",
	't': "tilt",
	'v': "bow",
	'h': "breathe",
	'l': "flash",
	'd': "drift",
	'k': "sparkle",
}

var undertones = []emotion.Undertone{
	emotion.UndertoneClear,
	emotion.UndertoneNervous,
	emotion.UndertoneConfident,
	emotion.UndertoneTired,
	emotion.UndertoneIntense,
	emotion.UndertoneSubdued,
}

type App struct {
	screen   tcell.Screen
	engine   *engine.Engine
	registry *status.Registry

	width, height int
	toneIdx       int
	showMetrics   bool

	views []particle.View

	audioInit bool
}

func NewApp() (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	registry := status.NewRegistry()
	eng, err := engine.New(engine.Config{
		Reporter: status.LogReporter{},
		Registry: registry,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}

	a := &App{
		screen:   screen,
		engine:   eng,
		registry: registry,
	}
	a.width, a.height = screen.Size()
	a.engine.SetOrigin(float64(a.width)/2, float64(a.height)/2*aspectRatio)

	if err := a.initAudio(); err != nil {
		// Non-fatal, the sandbox can run silent
		fmt.Fprintf(os.Stderr, "audio init failed: %v\n", err)
	}

	return a, nil
}

func (a *App) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		a.audioInit = true
	}
	return err
}

// playCue plays a short tone pitched per emotion and scaled to its
// intensity, so transitions are audible while watching the blend
func (a *App) playCue(e emotion.Emotion) {
	if !a.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	freq := 330.0 + 35.0*float64(e)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	cue := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(60*time.Millisecond), sine),
		Base:     2,
		Volume:   emotion.ProfileOf(e).Intensity - 1,
	}
	speaker.Play(cue)
}

func (a *App) handleResize() {
	a.width, a.height = a.screen.Size()
	a.engine.SetOrigin(float64(a.width)/2, float64(a.height)/2*aspectRatio)
	a.screen.Sync()
}

func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			a.toneIdx = (a.toneIdx + 1) % len(undertones)
			st := a.engine.State()
			a.engine.SetEmotion(st.Emotion, undertones[a.toneIdx], parameter.DefaultBlendDuration)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		r := ev.Rune()
		switch {
		case r == 'q':
			return false
		case r == ' ':
			a.engine.Burst(24)
		case r == 'x':
			a.engine.CancelAll()
		case r == 'm':
			a.showMetrics = !a.showMetrics
		default:
			if e, ok := emotionKeys[r]; ok {
				a.engine.SetEmotion(e, undertones[a.toneIdx], parameter.DefaultBlendDuration)
				a.playCue(e)
			} else if name, ok := gestureKeys[r]; ok {
				a.engine.Perform(name)
			}
		}

	case *tcell.EventResize:
		a.handleResize()
	}
	return true
}

func (a *App) draw() {
	a.screen.Clear()

	a.views = a.engine.Particles(a.views[:0])
	for _, v := range a.views {
		x := int(v.X)
		y := int(v.Y / aspectRatio)
		if x < 0 || x >= a.width || y < 0 || y >= a.height {
			continue
		}
		color := tcell.NewRGBColor(
			int32(float64(v.R)*v.Fade),
			int32(float64(v.G)*v.Fade),
			int32(float64(v.B)*v.Fade),
		)
		glyph := '·'
		if v.Fade > 0.6 {
			glyph = '•'
		}
		a.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(color))
	}

	snap := a.engine.Snapshot()
	a.drawMascot(snap)
	a.drawStatus(snap)
	if a.showMetrics {
		a.drawMetrics()
	}
	a.screen.Show()
}

// drawMetrics overlays the registry counters in the top-left corner
func (a *App) drawMetrics() {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	row := 0
	put := func(line string) {
		for i, ch := range line {
			if i >= a.width {
				break
			}
			a.screen.SetContent(i, row, ch, nil, style)
		}
		row++
	}

	put(fmt.Sprintf(" metrics (%d)", a.registry.TotalCount()))
	a.registry.Ints.Range(func(key string, v *atomic.Int64) {
		put(fmt.Sprintf(" %-26s %d", key, v.Load()))
	})
	a.registry.Floats.Range(func(key string, v *status.AtomicFloat) {
		put(fmt.Sprintf(" %-26s %.3f", key, v.Load()))
	})
}

// drawMascot renders a minimal face at the pose-displaced anchor so the
// gesture nudges and flashes are visible
func (a *App) drawMascot(snap engine.Snapshot) {
	pose := snap.Pose
	cx := a.width/2 + int(pose.OffsetX)
	cy := a.height/2 + int(pose.OffsetY/aspectRatio)

	r, g, b := snap.Color.RGB255()

	// Dim with the breath cycle so the mascot visibly idles
	breath := 0.75 + 0.25*snap.Breath
	r = uint8(float64(r) * breath)
	g = uint8(float64(g) * breath)
	b = uint8(float64(b) * breath)

	if pose.Flash > 0 {
		f := pose.Flash
		r = uint8(float64(r) + (255-float64(r))*f)
		g = uint8(float64(g) + (255-float64(g))*f)
		b = uint8(float64(b) + (255-float64(b))*f)
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))

	face := "(o_o)"
	if pose.Scale > 1.2 {
		face = "(O_O)"
	} else if pose.Scale < 0.85 {
		face = "(-_-)"
	}
	for i, ch := range face {
		a.screen.SetContent(cx-len(face)/2+i, cy, ch, nil, style)
	}
}

func (a *App) drawStatus(snap engine.Snapshot) {
	st := snap.State
	line := fmt.Sprintf(" %s / %s  intensity %.2f  particles %d/%d  [1-0,r,u,f,g,c] emotion  [tab] undertone  [w,b,p,s,o,n,t,v,h,l,d,k] gesture  [space] burst  [x] cancel  [m] metrics  [q] quit",
		st.Emotion, st.Undertone, st.Intensity, snap.Live, a.engine.ParticleCapacity())

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, ch := range line {
		if i >= a.width {
			break
		}
		a.screen.SetContent(i, a.height-1, ch, nil, style)
	}
}

func (a *App) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case <-ticker.C:
			a.engine.Tick(time.Now())
			a.draw()
		}
	}
}

func (a *App) cleanup() {
	a.engine.Destroy()
	if a.audioInit {
		speaker.Close()
	}
	a.screen.Fini()
}

func main() {
	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	app.run()
}
