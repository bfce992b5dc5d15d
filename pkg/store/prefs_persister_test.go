package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsPersisterRoundTrip(t *testing.T) {
	prefs := test.NewApp().Preferences()
	p := NewPrefsPersister(prefs)

	s := NewAlarmStore(p)
	_, err := s.Add(7, 30, "Wake up")
	require.NoError(t, err)
	second, err := s.Add(23, 59, "")
	require.NoError(t, err)
	s.Toggle(second.ID)

	require.NoError(t, p.Save(s.List()))
	loaded, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, s.List(), loaded)

	reloaded := NewAlarmStore(NewPrefsPersister(prefs))
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.List(), reloaded.List())
}

func TestPrefsPersisterLayout(t *testing.T) {
	prefs := test.NewApp().Preferences()
	p := NewPrefsPersister(prefs)

	require.NoError(t, p.Save([]models.Alarm{
		{ID: "1", Hour: 7, Minute: 30, Active: true, Label: "Wake up"},
		{ID: "2", Hour: 8, Minute: 0},
	}))

	assert.JSONEq(t,
		`[{"id":"1","hour":7,"minute":30,"active":true,"label":"Wake up"},{"id":"2","hour":8,"minute":0,"active":false}]`,
		prefs.String(AlarmsKey))
}

func TestPrefsPersisterMissingKey(t *testing.T) {
	p := NewPrefsPersister(test.NewApp().Preferences())

	alarms, err := p.Load()
	require.NoError(t, err)
	assert.Empty(t, alarms)
}

func TestPrefsPersisterMalformed(t *testing.T) {
	prefs := test.NewApp().Preferences()
	prefs.SetString(AlarmsKey, "{not json")

	alarms, err := NewPrefsPersister(prefs).Load()
	assert.Error(t, err)
	assert.Empty(t, alarms)
}

func TestPrefsPersisterSaveNil(t *testing.T) {
	prefs := test.NewApp().Preferences()
	require.NoError(t, NewPrefsPersister(prefs).Save(nil))
	assert.Equal(t, "[]", prefs.String(AlarmsKey))
}

func TestConfigStoreRoundTrip(t *testing.T) {
	cs := NewConfigStore(test.NewApp().Preferences())

	loaded := cs.Load()
	assert.Equal(t, models.DefaultConfig(), loaded)

	loaded.AutoStart = true
	loaded.Notifications = false
	loaded.HoldTimeSeconds = 5
	loaded.ToneFrequency = 440
	loaded.SoundFile = "/tmp/bell.wav"
	cs.Save(loaded)

	assert.Equal(t, loaded, cs.Load())
}
