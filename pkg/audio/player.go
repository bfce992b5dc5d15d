package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

// Global audio context singleton. oto allows a single context per process,
// so its format is fixed by the first sound played.
var (
	globalAudioCtx     *oto.Context
	globalAudioFormat  Format
	globalAudioCtxOnce sync.Once
	globalAudioCtxErr  error
)

// Player manages playback of one sound with cancellation support
type Player struct {
	stopChan chan struct{}
	doneChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// initAudioContext initializes the global audio context once
func initAudioContext(format Format) error {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			globalAudioCtxErr = fmt.Errorf("init audio context: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		globalAudioFormat = format
		logger.Log.Debug("Audio context initialized")
	})

	if globalAudioCtxErr != nil {
		return globalAudioCtxErr
	}
	if globalAudioCtx == nil {
		return errors.New("audio context not ready")
	}
	if globalAudioFormat != format {
		return fmt.Errorf("audio context runs at %+v, cannot play %+v", globalAudioFormat, format)
	}
	return nil
}

// Play starts playing 16-bit PCM data and returns without waiting
func Play(format Format, pcm []byte) (*Player, error) {
	if err := initAudioContext(format); err != nil {
		return nil, err
	}

	p := &Player{
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	p.mu.Lock()
	p.player = globalAudioCtx.NewPlayer(bytes.NewReader(pcm))
	p.mu.Unlock()

	// Play the sound in a goroutine so it doesn't block
	go p.playOnce()

	return p, nil
}

// PlayTone synthesizes and plays a tone
func PlayTone(t Tone) (*Player, error) {
	return Play(t.Format(), t.Synthesize())
}

// PlayWAV plays an in-memory WAV file
func PlayWAV(wavData []byte) (*Player, error) {
	format, pcm, err := ParseWAV(wavData)
	if err != nil {
		return nil, fmt.Errorf("parse wav: %w", err)
	}
	return Play(format, pcm)
}

func (p *Player) playOnce() {
	defer close(p.doneChan)

	// Play starts playing the sound and returns without waiting
	p.player.Play()

	// Wait for the sound to finish playing or stop signal
	for p.player.IsPlaying() {
		select {
		case <-p.stopChan:
			p.player.Pause()
			p.close()
			return
		case <-time.After(10 * time.Millisecond):
			// Continue checking
		}
	}

	p.close()
}

func (p *Player) close() {
	if err := p.player.Close(); err != nil {
		logger.Log.WithFields(logrus.Fields{"func": "audio_player"}).WithError(err).Warn("Failed to close audio player")
	}
}

// Done is closed once playback has finished or was stopped
func (p *Player) Done() <-chan struct{} {
	return p.doneChan
}

// Stop stops the audio playback
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
		logger.Log.Debug("Audio playback stopped")
	}
}
