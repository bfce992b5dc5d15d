package main

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/platform"
	"github.com/borgmon/alarm-clock/pkg/ui/components"
	"github.com/sirupsen/logrus"
)

// focusCheckInterval is how often the popup checks it is still in front
const focusCheckInterval = 500 * time.Millisecond

// AlarmWindowActions are called on the fyne thread once a hold completes
type AlarmWindowActions struct {
	OnSnooze  func()
	OnDismiss func()
	OnClosed  func()
}

// AlarmWindow is the popup shown while an alarm rings. It can only be closed
// by holding Snooze or Dismiss.
type AlarmWindow struct {
	window  fyne.Window
	alarm   models.Alarm
	hold    time.Duration
	actions AlarmWindowActions

	closeOnce      sync.Once
	stopMonitoring chan struct{}
}

func NewAlarmWindow(app fyne.App, alarm models.Alarm, holdTimeSeconds int, actions AlarmWindowActions) *AlarmWindow {
	aw := &AlarmWindow{
		alarm:          alarm,
		hold:           time.Duration(holdTimeSeconds) * time.Second,
		actions:        actions,
		stopMonitoring: make(chan struct{}),
	}

	aw.window = app.NewWindow("Alarm")
	aw.window.SetFixedSize(true)
	// Closing from the title bar would leave the alarm ringing
	aw.window.SetCloseIntercept(func() {
		logger.Log.WithFields(logrus.Fields{"id": alarm.ID}).Debug("Close blocked - hold Snooze or Dismiss")
	})
	aw.window.SetOnClosed(func() {
		aw.closeOnce.Do(func() {
			close(aw.stopMonitoring)
		})
		if aw.actions.OnClosed != nil {
			aw.actions.OnClosed()
		}
	})
	aw.buildUI()

	return aw
}

func (aw *AlarmWindow) buildUI() {
	clockText := canvas.NewText(aw.alarm.Clock(), nil)
	clockText.TextSize = 64
	clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockText.Alignment = fyne.TextAlignCenter

	title := aw.alarm.Label
	if title == "" {
		title = "Alarm"
	}
	titleText := canvas.NewText(title, nil)
	titleText.TextSize = 28
	titleText.Alignment = fyne.TextAlignCenter

	holdSeconds := int(aw.hold / time.Second)
	snoozeButton := components.NewHoldButton(fmt.Sprintf("Snooze 1m (Hold %ds)", holdSeconds), aw.hold, func() {
		aw.finish(aw.actions.OnSnooze)
	})
	dismissButton := components.NewHoldButton(fmt.Sprintf("Dismiss (Hold %ds)", holdSeconds), aw.hold, func() {
		aw.finish(aw.actions.OnDismiss)
	})

	content := container.NewVBox(
		container.NewPadded(clockText),
		titleText,
		widget.NewSeparator(),
		container.NewHBox(snoozeButton, dismissButton),
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

// finish runs a hold action and closes the popup
func (aw *AlarmWindow) finish(action func()) {
	if action != nil {
		action()
	}
	aw.Close()
}

// Show raises the popup and keeps it in front until it closes
func (aw *AlarmWindow) Show() {
	aw.window.CenterOnScreen()
	aw.window.Show()
	aw.window.RequestFocus()
	platform.ActivateApp()
	go aw.monitorFocus()
}

// Close closes the popup without running an action
func (aw *AlarmWindow) Close() {
	aw.window.Close()
}

func (aw *AlarmWindow) monitorFocus() {
	ticker := time.NewTicker(focusCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-aw.stopMonitoring:
			return
		case <-ticker.C:
			if platform.IsAppActive() {
				continue
			}
			logger.Log.WithFields(logrus.Fields{"id": aw.alarm.ID}).Debug("Alarm window not active - bringing to front")
			platform.ActivateApp()
			fyne.Do(func() {
				select {
				case <-aw.stopMonitoring:
				default:
					aw.window.Show()
					aw.window.RequestFocus()
				}
			})
		}
	}
}
