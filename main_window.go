package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/platform"
	"github.com/borgmon/alarm-clock/pkg/ui/components"
	"github.com/sirupsen/logrus"
)

type MainWindow struct {
	window fyne.Window
	ac     *AlarmClock

	clockLabel *widget.Label
	countLabel *widget.Label
	alarmList  *components.AlarmList

	hourEntry   *widget.Entry
	minuteEntry *widget.Entry
	labelEntry  *widget.Entry

	settings *settingsTab
}

func NewMainWindow(ac *AlarmClock) *MainWindow {
	mw := &MainWindow{ac: ac}

	mw.window = ac.app.NewWindow("Alarm Clock")
	mw.window.Resize(fyne.NewSize(420, 560))
	// Closing the window keeps the alarms running from the tray
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
		platform.SetActivationPolicy(platform.PolicyAccessory)
	})
	mw.buildUI()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.settings = newSettingsTab(mw.ac, mw.window)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Alarms", theme.HistoryIcon(), mw.buildAlarmsTab()),
		container.NewTabItemWithIcon("Settings", theme.SettingsIcon(), mw.settings.build()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(tabs)
}

func (mw *MainWindow) buildAlarmsTab() fyne.CanvasObject {
	mw.clockLabel = widget.NewLabel(time.Now().Format("15:04:05"))
	mw.clockLabel.Alignment = fyne.TextAlignCenter
	mw.clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.clockLabel.SizeName = theme.SizeNameHeadingText

	mw.countLabel = widget.NewLabel("")
	mw.countLabel.Alignment = fyne.TextAlignCenter

	var listObj fyne.CanvasObject
	mw.alarmList, listObj = components.NewAlarmList(components.AlarmListConfig{
		Items:    mw.ac.alarms.List,
		OnToggle: mw.ac.alarms.Toggle,
		OnDelete: mw.confirmDelete,
	})

	header := container.NewVBox(
		mw.clockLabel,
		mw.countLabel,
		widget.NewSeparator(),
	)

	mw.updateCount()

	return container.NewBorder(header, mw.buildAddForm(), nil, nil, listObj)
}

func (mw *MainWindow) buildAddForm() fyne.CanvasObject {
	mw.hourEntry = widget.NewEntry()
	mw.hourEntry.SetPlaceHolder("HH")
	mw.minuteEntry = widget.NewEntry()
	mw.minuteEntry.SetPlaceHolder("MM")
	mw.labelEntry = widget.NewEntry()
	mw.labelEntry.SetPlaceHolder("Label (optional)")
	mw.labelEntry.OnSubmitted = func(string) { mw.addAlarm() }

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), mw.addAlarm)
	addButton.Importance = widget.HighImportance

	importButton := widget.NewButtonWithIcon("Import", theme.DownloadIcon(), func() {
		mw.showImportDialog()
	})

	timeRow := container.New(layout.NewGridLayout(2), mw.hourEntry, mw.minuteEntry)

	return container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Time:"), nil, timeRow),
		mw.labelEntry,
		container.NewHBox(layout.NewSpacer(), importButton, addButton),
	)
}

// addAlarm reads the add form and creates the alarm
func (mw *MainWindow) addAlarm() {
	hour, minute, err := parseTimeFields(mw.hourEntry.Text, mw.minuteEntry.Text)
	if err != nil {
		dialog.ShowError(err, mw.window)
		return
	}

	alarm, err := mw.ac.alarms.Add(hour, minute, strings.TrimSpace(mw.labelEntry.Text))
	if err != nil {
		dialog.ShowError(fmt.Errorf("%s", models.ErrorDescription(err)), mw.window)
		return
	}
	logger.Log.WithFields(logrus.Fields{"id": alarm.ID, "time": alarm.Clock()}).Info("Alarm added")

	mw.hourEntry.SetText("")
	mw.minuteEntry.SetText("")
	mw.labelEntry.SetText("")
}

// parseTimeFields accepts either "7" and "30" or "7:30" typed in the hour field
func parseTimeFields(hourText, minuteText string) (int, int, error) {
	hourText = strings.TrimSpace(hourText)
	minuteText = strings.TrimSpace(minuteText)

	if strings.Contains(hourText, ":") && minuteText == "" {
		return models.ParseClock(hourText)
	}

	if hourText == "" || minuteText == "" {
		return 0, 0, models.Errorf(models.ErrInvalid, "enter both hour and minute")
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, 0, models.Errorf(models.ErrInvalid, "hour %q is not a number", hourText)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return 0, 0, models.Errorf(models.ErrInvalid, "minute %q is not a number", minuteText)
	}
	if err := models.ValidateTime(hour, minute); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

func (mw *MainWindow) confirmDelete(id string) {
	alarm, ok := mw.ac.alarms.Get(id)
	if !ok {
		return
	}

	name := alarm.Clock()
	if alarm.Label != "" {
		name = fmt.Sprintf("%s (%s)", name, alarm.Label)
	}

	dialog.ShowConfirm("Delete Alarm", fmt.Sprintf("Delete the %s alarm?", name), func(confirmed bool) {
		if !confirmed {
			return
		}
		mw.ac.alarms.Delete(id)
		logger.Log.WithFields(logrus.Fields{"id": id}).Info("Alarm deleted")
	}, mw.window)
}

// SetClock updates the live clock. Must run on the fyne thread.
func (mw *MainWindow) SetClock(now time.Time) {
	mw.clockLabel.SetText(now.Format("15:04:05"))
}

// Refresh redraws the list and the active count. Must run on the fyne thread.
func (mw *MainWindow) Refresh() {
	mw.alarmList.Refresh()
	mw.updateCount()
}

func (mw *MainWindow) updateCount() {
	mw.countLabel.SetText(activeCountText(mw.ac.alarms.ActiveCount()))
}

func activeCountText(n int) string {
	switch n {
	case 0:
		return "No active alarms"
	case 1:
		return "1 active alarm"
	default:
		return fmt.Sprintf("%d active alarms", n)
	}
}

func (mw *MainWindow) Show() {
	platform.SetActivationPolicy(platform.PolicyRegular)
	mw.window.Show()
	mw.window.RequestFocus()
}
