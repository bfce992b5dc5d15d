// Package engine matches clock ticks against scheduled alarms and manages the
// single ringing slot.
package engine

import (
	"sync"
	"time"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/notify"
	"github.com/sirupsen/logrus"
)

// State of the ringing slot
type State string

const (
	StateIdle    State = "Idle"    // No alarm is ringing
	StateRinging State = "Ringing" // One alarm occupies the slot
)

// Alarms is the part of the alarm store the engine reads and mutates
type Alarms interface {
	List() []models.Alarm
	Get(id string) (models.Alarm, bool)
	UpdateTime(id string, hour, minute int) error
	SetActive(id string, active bool)
}

// Engine promotes at most one matching alarm to the ringing slot per tick.
// When several active alarms share a minute only the first in insertion
// order rings; the others are not queued.
type Engine struct {
	alarms Alarms
	sink   notify.Sink

	// op serializes Tick, Snooze and Dismiss so a tick never observes a
	// half-resolved slot. Store calls happen under op only.
	op sync.Mutex

	mu      sync.Mutex
	ringing string // id of the ringing alarm, empty when idle
	onRing  []func(models.Alarm)
}

// New creates an idle Engine
func New(alarms Alarms, sink notify.Sink) *Engine {
	return &Engine{
		alarms: alarms,
		sink:   sink,
	}
}

// OnRing registers fn to be called whenever an alarm starts ringing
func (e *Engine) OnRing(fn func(models.Alarm)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRing = append(e.onRing, fn)
}

// Tick checks for an alarm due at now. Matching only happens on the first
// second of a minute so each occurrence is seen once.
// It returns the alarm that started ringing, if any.
func (e *Engine) Tick(now time.Time) (models.Alarm, bool) {
	if now.Second() != 0 {
		return models.Alarm{}, false
	}

	e.op.Lock()
	if e.slot() != "" {
		e.op.Unlock()
		return models.Alarm{}, false
	}

	var due models.Alarm
	found := false
	for _, alarm := range e.alarms.List() {
		if alarm.Matches(now) {
			due = alarm
			found = true
			break
		}
	}
	if !found {
		e.op.Unlock()
		return models.Alarm{}, false
	}

	e.mu.Lock()
	e.ringing = due.ID
	hooks := make([]func(models.Alarm), len(e.onRing))
	copy(hooks, e.onRing)
	e.mu.Unlock()
	e.op.Unlock()

	logger.Log.WithFields(logrus.Fields{"id": due.ID, "time": due.Clock(), "label": due.Label}).Info("Alarm ringing")

	e.alert(due)
	for _, fn := range hooks {
		fn(due)
	}
	return due, true
}

// alert hands the alarm to the sink; a sink failure never undoes the ring
func (e *Engine) alert(alarm models.Alarm) {
	if e.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{"func": "engine_alert", "id": alarm.ID}).Errorf("Alert sink panicked: %v", r)
		}
	}()
	e.sink.Notify(alarm)
}

// Ringing returns the alarm currently in the slot
func (e *Engine) Ringing() (models.Alarm, bool) {
	id := e.slot()
	if id == "" {
		return models.Alarm{}, false
	}
	return e.alarms.Get(id)
}

// State reports whether an alarm is ringing
func (e *Engine) State() State {
	if e.slot() == "" {
		return StateIdle
	}
	return StateRinging
}

func (e *Engine) slot() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ringing
}

func (e *Engine) clear() {
	e.mu.Lock()
	e.ringing = ""
	e.mu.Unlock()
}

// Snooze moves the ringing alarm one minute later and clears the slot.
// It returns the updated alarm.
func (e *Engine) Snooze() (models.Alarm, bool) {
	e.op.Lock()
	defer e.op.Unlock()

	id := e.slot()
	if id == "" {
		return models.Alarm{}, false
	}
	defer e.clear()

	alarm, ok := e.alarms.Get(id)
	if !ok {
		// Alarm was deleted while ringing
		return models.Alarm{}, false
	}

	hour, minute := alarm.Snoozed()
	if err := e.alarms.UpdateTime(id, hour, minute); err != nil {
		logger.Log.WithFields(logrus.Fields{"func": "engine_snooze", "id": id}).WithError(err).Error("Failed to snooze alarm")
		return alarm, false
	}
	alarm.Hour, alarm.Minute = hour, minute

	logger.Log.WithFields(logrus.Fields{"id": id, "time": alarm.Clock()}).Info("Alarm snoozed")
	return alarm, true
}

// Dismiss deactivates the ringing alarm and clears the slot
func (e *Engine) Dismiss() (models.Alarm, bool) {
	e.op.Lock()
	defer e.op.Unlock()

	id := e.slot()
	if id == "" {
		return models.Alarm{}, false
	}
	defer e.clear()

	e.alarms.SetActive(id, false)
	alarm, ok := e.alarms.Get(id)
	if ok {
		logger.Log.WithFields(logrus.Fields{"id": id, "time": alarm.Clock()}).Info("Alarm dismissed")
	}
	return alarm, ok
}
