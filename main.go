package main

import (
	"context"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/alarm-clock/pkg/clock"
	"github.com/borgmon/alarm-clock/pkg/engine"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/notify"
	"github.com/borgmon/alarm-clock/pkg/platform"
	"github.com/borgmon/alarm-clock/pkg/store"
	"github.com/sirupsen/logrus"
)

// appID keys the fyne preferences file
const appID = "com.borgmon.alarm-clock"

type AlarmClock struct {
	app         fyne.App
	configStore *store.ConfigStore
	alarms      *store.AlarmStore
	engine      *engine.Engine
	sampler     *clock.Sampler
	sound       *notify.Sound

	mu     sync.RWMutex
	config *models.Config

	mainWindow  *MainWindow
	alarmWindow *AlarmWindow
	quitGuard   *quitGuard
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Log.WithError(err).Error("alarm-clock failed")
		os.Exit(1)
	}
}

func newAlarmClock(a fyne.App) *AlarmClock {
	prefs := a.Preferences()
	return &AlarmClock{
		app:         a,
		configStore: store.NewConfigStore(prefs),
		alarms:      store.NewAlarmStore(store.NewPrefsPersister(prefs)),
		sampler:     clock.NewSampler(),
	}
}

// runApp starts the desktop app and blocks until it quits
func runApp() error {
	ac := newAlarmClock(app.NewWithID(appID))
	if err := ac.initialize(); err != nil {
		return err
	}
	ac.run()
	return nil
}

func (ac *AlarmClock) initialize() error {
	log := logger.Log.WithFields(logrus.Fields{"func": "initialize"})

	ac.config = ac.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(ac.config.AutoStart); err != nil {
		log.WithError(err).Warn("Failed to setup autostart")
	}
	ac.configStore.Save(ac.config)

	if err := ac.alarms.Load(); err != nil {
		log.WithError(err).Warn("Stored alarms could not be read, starting empty")
	}
	log.WithFields(logrus.Fields{"alarms": len(ac.alarms.List()), "active": ac.alarms.ActiveCount()}).Info("Alarms loaded")

	ac.sound = notify.NewSound(ac.currentConfig)
	desktopSink := notify.NewDesktop(ac.app, func() bool {
		return ac.currentConfig().Notifications
	})
	ac.engine = engine.New(ac.alarms, notify.Multi{ac.sound, desktopSink})
	ac.engine.OnRing(func(alarm models.Alarm) {
		fyne.Do(func() {
			ac.showAlarmWindow(alarm)
		})
	})

	ac.alarms.OnChange(func() {
		fyne.Do(ac.refresh)
	})

	ac.quitGuard = newQuitGuard()
	ac.mainWindow = NewMainWindow(ac)
	ac.setupSystemTray()

	return nil
}

func (ac *AlarmClock) run() {
	ac.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy(platform.PolicyRegular)
		if err := ac.sampler.Run(context.Background(), ac.onTick); err != nil {
			logger.Log.WithError(err).Error("Failed to start clock")
		}
	})
	ac.app.Lifecycle().SetOnStopped(ac.shutdown)

	ac.mainWindow.Show()
	ac.app.Run()
}

// onTick runs on the sampler goroutine once per second
func (ac *AlarmClock) onTick(now time.Time) {
	ac.engine.Tick(now)
	fyne.Do(func() {
		ac.mainWindow.SetClock(now)
	})
}

func (ac *AlarmClock) currentConfig() *models.Config {
	ac.mu.RLock()
	defer ac.mu.RUnlock()
	return ac.config
}

// updateConfig stores a new config and applies autostart
func (ac *AlarmClock) updateConfig(config *models.Config) {
	config.Normalize()

	ac.mu.Lock()
	ac.config = config
	ac.mu.Unlock()

	ac.configStore.Save(config)
	if err := setupAutostart(config.AutoStart); err != nil {
		logger.Log.WithError(err).Warn("Failed to update autostart")
	}
}

// refresh redraws everything that shows alarms
func (ac *AlarmClock) refresh() {
	ac.mainWindow.Refresh()
	ac.updateSystemTrayMenu()
}

func (ac *AlarmClock) showAlarmWindow(alarm models.Alarm) {
	if ac.alarmWindow != nil {
		ac.alarmWindow.Close()
	}

	var w *AlarmWindow
	w = NewAlarmWindow(ac.app, alarm, ac.currentConfig().HoldTimeSeconds, AlarmWindowActions{
		OnSnooze: func() {
			if snoozed, ok := ac.engine.Snooze(); ok {
				logger.Log.WithFields(logrus.Fields{"id": snoozed.ID, "time": snoozed.Clock()}).Debug("Snoozed from popup")
			}
			ac.sound.Stop()
		},
		OnDismiss: func() {
			ac.engine.Dismiss()
			ac.sound.Stop()
		},
		OnClosed: func() {
			if ac.alarmWindow == w {
				ac.alarmWindow = nil
				ac.quitGuard.Release()
			}
		},
	})
	ac.alarmWindow = w
	ac.quitGuard.Hold()
	w.Show()
}

func (ac *AlarmClock) quit() {
	ac.shutdown()
	ac.app.Quit()
}

// shutdown stops the clock and any playing sound. Safe to call twice.
func (ac *AlarmClock) shutdown() {
	if err := ac.sampler.Interrupt(); err != nil {
		logger.Log.WithError(err).Warn("Failed to stop clock")
	}
	if ac.sound != nil {
		ac.sound.Stop()
	}
	if ac.quitGuard != nil {
		ac.quitGuard.Release()
	}
}
