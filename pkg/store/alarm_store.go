package store

import (
	"sync"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Persister loads and saves the whole alarm collection
type Persister interface {
	Load() ([]models.Alarm, error)
	Save(alarms []models.Alarm) error
}

// AlarmStore owns the ordered alarm collection. Every mutation is persisted.
type AlarmStore struct {
	mu sync.RWMutex

	// Alarms in insertion order
	alarms []models.Alarm

	persister Persister
	newID     func() string
	listeners []func()
}

// NewAlarmStore creates an empty AlarmStore backed by persister
func NewAlarmStore(persister Persister) *AlarmStore {
	return &AlarmStore{
		persister: persister,
		newID:     uuid.NewString,
	}
}

// Load replaces the collection with the persisted one.
// Entries with an invalid time or a duplicate id are dropped.
func (s *AlarmStore) Load() error {
	log := logger.Log.WithFields(logrus.Fields{"func": "alarm_store_load"})

	loaded, err := s.persister.Load()
	if err != nil {
		log.WithError(err).Warn("Could not load alarms, starting with an empty list")
		loaded = nil
	}

	seen := make(map[string]bool, len(loaded))
	alarms := make([]models.Alarm, 0, len(loaded))
	for _, alarm := range loaded {
		if verr := alarm.Validate(); verr != nil {
			log.WithError(verr).Warnf("Skipping stored alarm %q", alarm.ID)
			continue
		}
		if seen[alarm.ID] {
			log.Warnf("Skipping duplicate stored alarm %q", alarm.ID)
			continue
		}
		seen[alarm.ID] = true
		alarms = append(alarms, alarm)
	}

	s.mu.Lock()
	s.alarms = alarms
	s.mu.Unlock()

	log.Infof("Loaded %d alarms", len(alarms))
	s.notify()
	return err
}

// OnChange registers fn to be called after every mutation
func (s *AlarmStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add creates a new active alarm at hour:minute
func (s *AlarmStore) Add(hour, minute int, label string) (models.Alarm, error) {
	if err := models.ValidateTime(hour, minute); err != nil {
		return models.Alarm{}, err
	}

	s.mu.Lock()
	alarm := models.Alarm{
		ID:     s.newID(),
		Hour:   hour,
		Minute: minute,
		Active: true,
		Label:  label,
	}
	s.alarms = append(s.alarms, alarm)
	s.persist()
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{"id": alarm.ID, "time": alarm.Clock()}).Info("Alarm added")
	s.notify()
	return alarm, nil
}

// Toggle flips the active flag of the alarm with the given id
func (s *AlarmStore) Toggle(id string) {
	s.mutate(id, func(a *models.Alarm) {
		a.Active = !a.Active
	})
}

// SetActive sets the active flag of the alarm with the given id
func (s *AlarmStore) SetActive(id string, active bool) {
	s.mutate(id, func(a *models.Alarm) {
		a.Active = active
	})
}

// UpdateTime moves the alarm with the given id to hour:minute
func (s *AlarmStore) UpdateTime(id string, hour, minute int) error {
	if err := models.ValidateTime(hour, minute); err != nil {
		return err
	}
	s.mutate(id, func(a *models.Alarm) {
		a.Hour = hour
		a.Minute = minute
	})
	return nil
}

// Delete removes the alarm with the given id
func (s *AlarmStore) Delete(id string) {
	s.mu.Lock()
	for i := range s.alarms {
		if s.alarms[i].ID == id {
			s.alarms = append(s.alarms[:i:i], s.alarms[i+1:]...)
			break
		}
	}
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// List returns a copy of all alarms in insertion order
func (s *AlarmStore) List() []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Alarm, len(s.alarms))
	copy(result, s.alarms)
	return result
}

// Get returns a copy of the alarm with the given id
func (s *AlarmStore) Get(id string) (models.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, alarm := range s.alarms {
		if alarm.ID == id {
			return alarm, true
		}
	}
	return models.Alarm{}, false
}

// ActiveCount returns the number of active alarms
func (s *AlarmStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, alarm := range s.alarms {
		if alarm.Active {
			count++
		}
	}
	return count
}

// mutate applies fn to the alarm with the given id and persists.
// Unknown ids are ignored.
func (s *AlarmStore) mutate(id string, fn func(*models.Alarm)) {
	s.mu.Lock()
	found := false
	for i := range s.alarms {
		if s.alarms[i].ID == id {
			fn(&s.alarms[i])
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// persist saves the collection; callers must hold the write lock.
// Failures are logged and the in-memory state is kept.
func (s *AlarmStore) persist() {
	if s.persister == nil {
		return
	}
	snapshot := make([]models.Alarm, len(s.alarms))
	copy(snapshot, s.alarms)
	if err := s.persister.Save(snapshot); err != nil {
		logger.Log.WithFields(logrus.Fields{"func": "alarm_store_persist"}).
			WithError(err).Error("Failed to persist alarms")
	}
}

func (s *AlarmStore) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
