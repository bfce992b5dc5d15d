package models

import "time"

// Default settings
const (
	DefaultHoldTimeSeconds = 2
	DefaultToneFrequency   = 800.0 // Hz
	DefaultToneDurationMs  = 2000
	DefaultToneGain        = 0.3
)

// Config holds application configuration
type Config struct {
	AutoStart       bool    `json:"auto_start"`
	Notifications   bool    `json:"notifications"`     // show desktop notifications
	HoldTimeSeconds int     `json:"hold_time_seconds"` // snooze/dismiss button hold time
	ToneFrequency   float64 `json:"tone_frequency"`    // Hz
	ToneDurationMs  int     `json:"tone_duration_ms"`  // milliseconds
	ToneGain        float64 `json:"tone_gain"`         // 0..1
	SoundFile       string  `json:"sound_file"`        // optional WAV file replacing the tone
}

// DefaultConfig returns the configuration used on first start
func DefaultConfig() *Config {
	return &Config{
		Notifications:   true,
		HoldTimeSeconds: DefaultHoldTimeSeconds,
		ToneFrequency:   DefaultToneFrequency,
		ToneDurationMs:  DefaultToneDurationMs,
		ToneGain:        DefaultToneGain,
	}
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	if c.HoldTimeSeconds < 0 || c.HoldTimeSeconds > 30 {
		c.HoldTimeSeconds = DefaultHoldTimeSeconds
	}
	if c.ToneFrequency < 20 || c.ToneFrequency > 20000 {
		c.ToneFrequency = DefaultToneFrequency
	}
	if c.ToneDurationMs <= 0 || c.ToneDurationMs > 60000 {
		c.ToneDurationMs = DefaultToneDurationMs
	}
	if c.ToneGain <= 0 || c.ToneGain > 1 {
		c.ToneGain = DefaultToneGain
	}
}

// ToneDuration returns the tone length as a duration
func (c *Config) ToneDuration() time.Duration {
	return time.Duration(c.ToneDurationMs) * time.Millisecond
}
