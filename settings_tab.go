package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/notify"
)

var holdTimeOptions = []string{"0", "1", "2", "3", "5", "10"}

type settingsTab struct {
	ac     *AlarmClock
	window fyne.Window

	autoStartCheck     *widget.Check
	notificationsCheck *widget.Check
	holdTimeSelect     *widget.Select
	frequencyEntry     *widget.Entry
	soundFileEntry     *widget.Entry
	saveStatusLabel    *widget.Label
}

func newSettingsTab(ac *AlarmClock, window fyne.Window) *settingsTab {
	return &settingsTab{ac: ac, window: window}
}

func (st *settingsTab) build() fyne.CanvasObject {
	config := st.ac.currentConfig()

	st.autoStartCheck = widget.NewCheck("Launch Alarm Clock when you log in", nil)
	st.autoStartCheck.SetChecked(config.AutoStart)

	st.notificationsCheck = widget.NewCheck("Show a desktop notification when an alarm rings", nil)
	st.notificationsCheck.SetChecked(config.Notifications)

	st.holdTimeSelect = widget.NewSelect(holdTimeOptions, nil)
	st.holdTimeSelect.SetSelected(strconv.Itoa(config.HoldTimeSeconds))

	st.frequencyEntry = widget.NewEntry()
	st.frequencyEntry.SetText(strconv.FormatFloat(config.ToneFrequency, 'f', -1, 64))

	st.soundFileEntry = widget.NewEntry()
	st.soundFileEntry.SetPlaceHolder("Built-in tone")
	st.soundFileEntry.SetText(config.SoundFile)
	browseButton := widget.NewButton("Browse...", st.browseSoundFile)

	testButton := widget.NewButton("Test Sound", func() {
		cfg := st.configFromUI()
		notify.NewSound(func() *models.Config { return cfg }).Notify(models.Alarm{ID: "test"})
	})

	st.saveStatusLabel = widget.NewLabel("")
	st.saveStatusLabel.Importance = widget.SuccessImportance

	saveButton := widget.NewButton("Save", st.save)
	saveButton.Importance = widget.HighImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Start:"), st.autoStartCheck,
		widget.NewLabel("Notifications:"), st.notificationsCheck,
		widget.NewLabel("Hold Time (s):"), st.holdTimeSelect,
		widget.NewLabel("Tone (Hz):"), st.frequencyEntry,
		widget.NewLabel("Sound File:"), container.NewBorder(nil, nil, nil, browseButton, st.soundFileEntry),
	)

	content := container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewSeparator(),
		form,
		container.NewHBox(testButton, layout.NewSpacer(), st.saveStatusLabel, saveButton),
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (st *settingsTab) browseSoundFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, st.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		st.soundFileEntry.SetText(reader.URI().Path())
	}, st.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
	fd.Show()
}

// configFromUI reads the form. Values that do not parse keep the current setting.
func (st *settingsTab) configFromUI() *models.Config {
	config := *st.ac.currentConfig()

	config.AutoStart = st.autoStartCheck.Checked
	config.Notifications = st.notificationsCheck.Checked
	if hold, err := strconv.Atoi(st.holdTimeSelect.Selected); err == nil {
		config.HoldTimeSeconds = hold
	}
	if freq, err := strconv.ParseFloat(st.frequencyEntry.Text, 64); err == nil {
		config.ToneFrequency = freq
	}
	config.SoundFile = st.soundFileEntry.Text
	config.Normalize()

	return &config
}

func (st *settingsTab) save() {
	config := st.configFromUI()
	st.ac.updateConfig(config)

	// Show what Normalize kept
	st.frequencyEntry.SetText(strconv.FormatFloat(config.ToneFrequency, 'f', -1, 64))
	st.saveStatusLabel.SetText(fmt.Sprintf("Saved (hold %ds)", config.HoldTimeSeconds))
	logger.Log.Info("Settings saved")
}
