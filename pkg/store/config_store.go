package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/alarm-clock/pkg/models"
)

// ConfigStore handles configuration persistence using fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(prefs fyne.Preferences) *ConfigStore {
	return &ConfigStore{prefs: prefs}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	defaults := models.DefaultConfig()

	config := &models.Config{
		AutoStart:       cs.prefs.BoolWithFallback("auto_start", defaults.AutoStart),
		Notifications:   cs.prefs.BoolWithFallback("notifications", defaults.Notifications),
		HoldTimeSeconds: cs.prefs.IntWithFallback("hold_time_seconds", defaults.HoldTimeSeconds),
		ToneFrequency:   cs.prefs.FloatWithFallback("tone_frequency", defaults.ToneFrequency),
		ToneDurationMs:  cs.prefs.IntWithFallback("tone_duration_ms", defaults.ToneDurationMs),
		ToneGain:        cs.prefs.FloatWithFallback("tone_gain", defaults.ToneGain),
		SoundFile:       cs.prefs.StringWithFallback("sound_file", defaults.SoundFile),
	}
	config.Normalize()

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetBool("notifications", config.Notifications)
	cs.prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	cs.prefs.SetFloat("tone_frequency", config.ToneFrequency)
	cs.prefs.SetInt("tone_duration_ms", config.ToneDurationMs)
	cs.prefs.SetFloat("tone_gain", config.ToneGain)
	cs.prefs.SetString("sound_file", config.SoundFile)
}
