package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// DefaultSampleRate is used for synthesized tones
const DefaultSampleRate = 44100

// Tone describes a sine beep
type Tone struct {
	Frequency  float64       // Hz
	Duration   time.Duration // total length
	Gain       float64       // 0..1 of full scale
	SampleRate int
}

// Format returns the PCM format the tone is rendered in
func (t Tone) Format() Format {
	return Format{SampleRate: t.sampleRate(), Channels: 1, BitDepth: 16}
}

func (t Tone) sampleRate() int {
	if t.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return t.SampleRate
}

// Synthesize renders the tone as mono signed 16-bit little-endian PCM.
// A short linear fade at both ends avoids clicks.
func (t Tone) Synthesize() []byte {
	rate := t.sampleRate()
	samples := int(t.Duration.Seconds() * float64(rate))
	if samples <= 0 {
		return nil
	}

	gain := math.Max(0, math.Min(1, t.Gain))
	fade := rate / 100 // 10ms
	if fade > samples/2 {
		fade = samples / 2
	}

	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		amp := gain
		if fade > 0 {
			if i < fade {
				amp *= float64(i) / float64(fade)
			} else if rem := samples - 1 - i; rem < fade {
				amp *= float64(rem) / float64(fade)
			}
		}
		v := amp * math.Sin(2*math.Pi*t.Frequency*float64(i)/float64(rate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(math.Round(v*math.MaxInt16))))
	}
	return pcm
}
