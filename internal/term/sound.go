package term

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/holdfast/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short tone.
type Cue struct {
	Freq     float64 // Hz
	Duration time.Duration
}

var (
	cueHostileDown   = Cue{Freq: 880, Duration: 50 * time.Millisecond}
	cueAllyDown      = Cue{Freq: 330, Duration: 120 * time.Millisecond}
	cueStructureDown = Cue{Freq: 160, Duration: 250 * time.Millisecond}
	cueWave          = Cue{Freq: 520, Duration: 200 * time.Millisecond}
)

// CuesFor maps a tick's events to the tones that announce them.
func CuesFor(events []sim.Event) []Cue {
	var out []Cue
	for _, e := range events {
		switch {
		case e.Category == sim.CatDeath && e.Key == sim.KindHostile.String():
			out = append(out, cueHostileDown)
		case e.Category == sim.CatDeath && e.Key == sim.KindAlly.String():
			out = append(out, cueAllyDown)
		case e.Category == sim.CatDeath && e.Key == sim.KindStructure.String():
			out = append(out, cueStructureDown)
		case e.Category == sim.CatWave && e.Key == "spawn":
			out = append(out, cueWave)
		}
	}
	return out
}

// Sound plays cues through the speaker. A Sound whose Init failed, or was
// never called, stays silent.
type Sound struct {
	mu          sync.Mutex
	initialized bool
}

// Init opens the speaker with a 100ms buffer.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Play queues a cue. Errors from the tone generator drop the cue.
func (s *Sound) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, c.Freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(c.Duration), sine))
}

// Close releases the speaker.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
}
