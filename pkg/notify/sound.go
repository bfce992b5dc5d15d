package notify

import (
	"os"
	"sync"

	"github.com/borgmon/alarm-clock/pkg/audio"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/sirupsen/logrus"
)

// Sound plays the alarm tone, or the configured WAV file instead
type Sound struct {
	config func() *models.Config

	playTone func(audio.Tone) (*audio.Player, error)
	playWAV  func([]byte) (*audio.Player, error)
	readFile func(string) ([]byte, error)

	mu      sync.Mutex
	current *audio.Player
	wg      sync.WaitGroup
}

// NewSound creates a Sound sink reading its settings from config on every alarm
func NewSound(config func() *models.Config) *Sound {
	return &Sound{
		config:   config,
		playTone: audio.PlayTone,
		playWAV:  audio.PlayWAV,
		readFile: os.ReadFile,
	}
}

// Notify implements Sink. Playback starts in the background.
func (s *Sound) Notify(alarm models.Alarm) {
	cfg := s.config()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.play(alarm, cfg)
	}()
}

func (s *Sound) play(alarm models.Alarm, cfg *models.Config) {
	log := logger.Log.WithFields(logrus.Fields{"func": "sound", "id": alarm.ID})

	var player *audio.Player
	var err error

	if cfg.SoundFile != "" {
		var data []byte
		if data, err = s.readFile(cfg.SoundFile); err == nil {
			player, err = s.playWAV(data)
		}
		if err == nil {
			s.setCurrent(player)
			return
		}
		log.WithError(err).Warnf("Could not play %s, falling back to tone", cfg.SoundFile)
	}

	player, err = s.playTone(ToneFor(cfg))
	if err != nil {
		log.WithError(err).Warn("Could not play alarm tone")
		return
	}
	s.setCurrent(player)
}

func (s *Sound) setCurrent(player *audio.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Stop()
	s.current = player
}

// Stop silences the sound that is currently playing
func (s *Sound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Stop()
	s.current = nil
}

// Wait blocks until pending playback starts have finished
func (s *Sound) Wait() {
	s.wg.Wait()
}

// ToneFor builds the tone described by cfg
func ToneFor(cfg *models.Config) audio.Tone {
	return audio.Tone{
		Frequency: cfg.ToneFrequency,
		Duration:  cfg.ToneDuration(),
		Gain:      cfg.ToneGain,
	}
}
