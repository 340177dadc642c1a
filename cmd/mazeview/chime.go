package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime plays short tones through the speaker. A zero chime is silent.
type chime struct {
	enabled bool
}

func newChime() (*chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return &chime{}, err
	}
	return &chime{enabled: true}, nil
}

// flood plays a falling two-note chime.
func (c *chime) flood() {
	if !c.enabled {
		return
	}
	speaker.Play(beep.Seq(
		tone(660, 120*time.Millisecond),
		tone(440, 200*time.Millisecond),
	))
}

// tone is a sine wave with a linear fade out.
func tone(freq float64, d time.Duration) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			fade := 1 - float64(pos)/float64(total)
			v := 0.3 * fade * math.Sin(2*math.Pi*freq*float64(pos)/float64(sampleRate))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
