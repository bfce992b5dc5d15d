package notify

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/sirupsen/logrus"
)

// Title of every alarm notification
const Title = "⏰ Alarm Alert!"

// Sender is implemented by fyne.App
type Sender interface {
	SendNotification(*fyne.Notification)
}

// Desktop raises an OS notification through fyne
type Desktop struct {
	sender  Sender
	enabled func() bool
}

// NewDesktop creates a Desktop sink. enabled is consulted on every alarm;
// nil means always on.
func NewDesktop(sender Sender, enabled func() bool) *Desktop {
	return &Desktop{sender: sender, enabled: enabled}
}

// Notify implements Sink
func (d *Desktop) Notify(alarm models.Alarm) {
	if d.enabled != nil && !d.enabled() {
		logger.Log.WithFields(logrus.Fields{"id": alarm.ID}).Debug("Notifications disabled, skipping")
		return
	}
	// The OS asks for permission on first use; a denied permission drops the
	// notification silently.
	d.sender.SendNotification(Message(alarm))
}

// Message builds the notification for alarm
func Message(alarm models.Alarm) *fyne.Notification {
	body := "Alarm set for " + alarm.Clock()
	if alarm.Label != "" {
		body += " - " + alarm.Label
	}
	return fyne.NewNotification(Title, body)
}
