package store

import (
	"encoding/json"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/borgmon/alarm-clock/pkg/models"
)

// AlarmsKey is the preference key holding the JSON alarm list
const AlarmsKey = "alarmClockAlarms"

// PrefsPersister stores alarms as a JSON string in fyne preferences
type PrefsPersister struct {
	prefs fyne.Preferences
}

// NewPrefsPersister creates a PrefsPersister on top of prefs
func NewPrefsPersister(prefs fyne.Preferences) *PrefsPersister {
	return &PrefsPersister{prefs: prefs}
}

// Load reads the alarm list. A missing key yields an empty list; a malformed
// value yields an empty list and an error.
func (p *PrefsPersister) Load() ([]models.Alarm, error) {
	alarmsJSON := p.prefs.String(AlarmsKey)
	if alarmsJSON == "" {
		return []models.Alarm{}, nil
	}

	var alarms []models.Alarm
	if err := json.Unmarshal([]byte(alarmsJSON), &alarms); err != nil {
		return []models.Alarm{}, fmt.Errorf("decode %s: %w", AlarmsKey, err)
	}
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	return alarms, nil
}

// Save overwrites the stored alarm list
func (p *PrefsPersister) Save(alarms []models.Alarm) error {
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	alarmsJSON, err := json.Marshal(alarms)
	if err != nil {
		return fmt.Errorf("encode %s: %w", AlarmsKey, err)
	}
	p.prefs.SetString(AlarmsKey, string(alarmsJSON))
	return nil
}
