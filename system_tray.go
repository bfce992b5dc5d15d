package main

import (
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/alarm-clock/pkg/models"
)

// upcomingLimit caps how many alarms the tray lists
const upcomingLimit = 5

func (ac *AlarmClock) setupSystemTray() {
	if desk, ok := ac.app.(desktop.App); ok {
		desk.SetSystemTrayIcon(theme.HistoryIcon())
	}
	ac.updateSystemTrayMenu()
}

func (ac *AlarmClock) updateSystemTrayMenu() {
	desk, ok := ac.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := upcomingAlarms(ac.alarms.List(), time.Now(), upcomingLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, u := range upcoming {
			alarmItem := fyne.NewMenuItem(upcomingText(u), nil)
			alarmItem.Disabled = true
			menuItems = append(menuItems, alarmItem)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show", func() {
			ac.mainWindow.Show()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			ac.quit()
		}),
	)

	desk.SetSystemTrayMenu(fyne.NewMenu("Alarm Clock", menuItems...))
}

type upcomingAlarm struct {
	alarm models.Alarm
	at    time.Time
}

// upcomingAlarms returns the active alarms in the order they will next ring
func upcomingAlarms(alarms []models.Alarm, now time.Time, limit int) []upcomingAlarm {
	upcoming := []upcomingAlarm{}
	for _, alarm := range alarms {
		if !alarm.Active {
			continue
		}
		upcoming = append(upcoming, upcomingAlarm{alarm: alarm, at: alarm.Next(now)})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

func upcomingText(u upcomingAlarm) string {
	text := "  " + u.alarm.Clock()
	if u.alarm.Label != "" {
		text = fmt.Sprintf("%s - %s", text, truncateString(u.alarm.Label, 35))
	}
	return text
}

// truncateString truncates a string to maxLen runes, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
