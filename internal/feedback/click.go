// Package feedback plays a short tone when a tile is toggled.
package feedback

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Click tones
const (
	sampleRate = beep.SampleRate(44100)

	SelectFreq   = 880.0 // A5
	DeselectFreq = 440.0 // A4
	ClickLength  = 40 * time.Millisecond
	ClickVolume  = 0.4
)

// Clicker plays select and deselect clicks through the system speaker
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewClicker creates a clicker. Nothing is heard until Initialize succeeds.
func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker
func (c *Clicker) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Click plays the select tone when selected is true, the deselect tone
// otherwise. It does nothing before Initialize.
func (c *Clicker) Click(selected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	freq := DeselectFreq
	if selected {
		freq = SelectFreq
	}
	s, err := Tone(sampleRate, freq, ClickLength, ClickVolume)
	if err != nil {
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and shuts the speaker down
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Tone returns a sine tone of the given length scaled to vol, where 1 is full
// amplitude and 0 is silent.
func Tone(rate beep.SampleRate, freq float64, d time.Duration, vol float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	s := beep.Take(rate.N(d), sine)

	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}, nil
}
