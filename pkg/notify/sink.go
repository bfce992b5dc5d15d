// Package notify delivers triggered alarms to the user. Every sink is best
// effort: failures are logged and never reach the caller.
package notify

import (
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/sirupsen/logrus"
)

// Sink receives an alarm the moment it starts ringing
type Sink interface {
	Notify(alarm models.Alarm)
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(alarm models.Alarm)

// Notify calls f(alarm)
func (f SinkFunc) Notify(alarm models.Alarm) {
	f(alarm)
}

// Multi fans an alarm out to several sinks. A panicking sink does not stop
// the others.
type Multi []Sink

// Notify implements Sink
func (m Multi) Notify(alarm models.Alarm) {
	for _, sink := range m {
		notifySafely(sink, alarm)
	}
}

func notifySafely(sink Sink, alarm models.Alarm) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{"func": "notify_multi", "id": alarm.ID}).Errorf("Sink panicked: %v", r)
		}
	}()
	sink.Notify(alarm)
}
