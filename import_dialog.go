package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarm-clock/pkg/calendar"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/store"
	"github.com/sirupsen/logrus"
)

// fetchTimeout bounds a calendar download
const fetchTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: fetchTimeout}

func (mw *MainWindow) showImportDialog() {
	fileButton := widget.NewButton("From File...", nil)
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com/calendar.ics")

	items := []*widget.FormItem{
		widget.NewFormItem("File", fileButton),
		widget.NewFormItem("URL", urlEntry),
	}

	form := dialog.NewForm("Import Alarms", "Import URL", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		mw.importURL(strings.TrimSpace(urlEntry.Text))
	}, mw.window)

	fileButton.OnTapped = func() {
		form.Hide()
		mw.importFile()
	}

	form.Resize(fyne.NewSize(420, 0))
	form.Show()
}

func (mw *MainWindow) importFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		entries, err := calendar.Parse(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read %s: %w", reader.URI().Name(), err), mw.window)
			return
		}
		mw.showImportResult(importEntries(mw.ac.alarms, entries), len(entries))
	}, mw.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	fd.Show()
}

func (mw *MainWindow) importURL(icalURL string) {
	if u, err := url.ParseRequestURI(icalURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		dialog.ShowError(fmt.Errorf("enter an http or https calendar URL"), mw.window)
		return
	}

	progress := dialog.NewCustomWithoutButtons("Importing", widget.NewProgressBarInfinite(), mw.window)
	progress.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		entries, err := calendar.Fetch(ctx, httpClient, icalURL)

		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				logger.Log.WithFields(logrus.Fields{"url": icalURL}).WithError(err).Warn("Calendar import failed")
				dialog.ShowError(err, mw.window)
				return
			}
			mw.showImportResult(importEntries(mw.ac.alarms, entries), len(entries))
		})
	}()
}

func (mw *MainWindow) showImportResult(added, total int) {
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Added %d of %d calendar events as alarms.", added, total), mw.window)
}

// importEntries adds every entry that does not already exist with the same
// time and label. It returns how many alarms were added.
func importEntries(alarms *store.AlarmStore, entries []calendar.Entry) int {
	existing := make(map[string]bool)
	for _, alarm := range alarms.List() {
		existing[entryKey(alarm.Hour, alarm.Minute, alarm.Label)] = true
	}

	added := 0
	for _, entry := range entries {
		key := entryKey(entry.Hour, entry.Minute, entry.Label)
		if existing[key] {
			continue
		}
		if _, err := alarms.Add(entry.Hour, entry.Minute, entry.Label); err != nil {
			logger.Log.WithFields(logrus.Fields{"uid": entry.UID}).WithError(err).Warn("Skipping calendar entry")
			continue
		}
		existing[key] = true
		added++
	}

	logger.Log.WithFields(logrus.Fields{"added": added, "entries": len(entries)}).Info("Calendar imported")
	return added
}

func entryKey(hour, minute int, label string) string {
	return fmt.Sprintf("%02d:%02d|%s", hour, minute, label)
}
