package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/borgmon/alarm-clock/pkg/audio"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*fyne.Notification
}

func (f *fakeSender) SendNotification(n *fyne.Notification) {
	f.sent = append(f.sent, n)
}

func TestMessage(t *testing.T) {
	n := Message(models.Alarm{Hour: 7, Minute: 5})
	assert.Equal(t, "⏰ Alarm Alert!", n.Title)
	assert.Equal(t, "Alarm set for 07:05", n.Content)

	n = Message(models.Alarm{Hour: 23, Minute: 0, Label: "Sleep"})
	assert.Equal(t, "Alarm set for 23:00 - Sleep", n.Content)
}

func TestDesktopNotify(t *testing.T) {
	sender := &fakeSender{}
	enabled := true
	d := NewDesktop(sender, func() bool { return enabled })

	d.Notify(models.Alarm{Hour: 7, Minute: 30})
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Alarm set for 07:30", sender.sent[0].Content)

	enabled = false
	d.Notify(models.Alarm{Hour: 7, Minute: 30})
	assert.Len(t, sender.sent, 1)
}

func TestDesktopNilEnabled(t *testing.T) {
	sender := &fakeSender{}
	NewDesktop(sender, nil).Notify(models.Alarm{})
	assert.Len(t, sender.sent, 1)
}

func TestMultiSurvivesPanics(t *testing.T) {
	var got []string
	m := Multi{
		SinkFunc(func(a models.Alarm) { got = append(got, "first:"+a.ID) }),
		SinkFunc(func(models.Alarm) { panic("no audio device") }),
		SinkFunc(func(a models.Alarm) { got = append(got, "last:"+a.ID) }),
	}

	assert.NotPanics(t, func() { m.Notify(models.Alarm{ID: "x"}) })
	assert.Equal(t, []string{"first:x", "last:x"}, got)
}

func newTestSound(cfg *models.Config) (*Sound, *[]string) {
	var mu sync.Mutex
	calls := []string{}
	s := NewSound(func() *models.Config { return cfg })
	s.playTone = func(tone audio.Tone) (*audio.Player, error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "tone")
		return nil, nil
	}
	s.playWAV = func([]byte) (*audio.Player, error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "wav")
		return nil, nil
	}
	return s, &calls
}

func TestSoundPlaysTone(t *testing.T) {
	cfg := models.DefaultConfig()
	s, calls := newTestSound(cfg)

	var gotTone audio.Tone
	s.playTone = func(tone audio.Tone) (*audio.Player, error) {
		gotTone = tone
		return nil, nil
	}

	s.Notify(models.Alarm{ID: "a"})
	s.Wait()
	assert.Empty(t, *calls)
	assert.Equal(t, 800.0, gotTone.Frequency)
	assert.Equal(t, 2*time.Second, gotTone.Duration)
	assert.Equal(t, 0.3, gotTone.Gain)
}

func TestSoundPlaysFile(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.SoundFile = "bell.wav"
	s, calls := newTestSound(cfg)
	s.readFile = func(name string) ([]byte, error) {
		assert.Equal(t, "bell.wav", name)
		return []byte("RIFF"), nil
	}

	s.Notify(models.Alarm{ID: "a"})
	s.Wait()
	assert.Equal(t, []string{"wav"}, *calls)
}

func TestSoundFileFallsBackToTone(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.SoundFile = "missing.wav"
	s, calls := newTestSound(cfg)
	s.readFile = func(string) ([]byte, error) {
		return nil, errors.New("not found")
	}

	s.Notify(models.Alarm{ID: "a"})
	s.Wait()
	assert.Equal(t, []string{"tone"}, *calls)
}

func TestSoundToneFailureIsQuiet(t *testing.T) {
	s := NewSound(models.DefaultConfig)
	s.playTone = func(audio.Tone) (*audio.Player, error) {
		return nil, errors.New("no audio device")
	}

	assert.NotPanics(t, func() {
		s.Notify(models.Alarm{ID: "a"})
		s.Wait()
		s.Stop()
	})
}
