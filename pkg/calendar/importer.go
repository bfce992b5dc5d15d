package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/emersion/go-ical"
	"github.com/sirupsen/logrus"
)

// maxCalendarSize caps how much of a remote calendar is read
const maxCalendarSize = 10 << 20

// Fetch downloads an iCal feed and parses it into alarm entries
func Fetch(ctx context.Context, client *http.Client, icalURL string) ([]Entry, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, icalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed: %s", resp.Status)
	}

	return Parse(io.LimitReader(resp.Body, maxCalendarSize))
}

// Parse reads every VEVENT in r and turns its local start time into an
// alarm entry labelled with the event summary. Cancelled, all-day and
// duplicate events are skipped. Recurrence rules are ignored; only the first
// occurrence's time of day is used.
func Parse(r io.Reader) ([]Entry, error) {
	log := logger.Log.WithFields(logrus.Fields{"func": "calendar_parse"})

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	bodyStr := string(body)

	// Validate format
	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	entries := []Entry{}
	seen := make(map[string]bool)
	stats := importStats{}

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.events++

			ev, err := parseEvent(comp)
			if err != nil {
				stats.invalid++
				log.WithError(err).Debug("Skipping event")
				continue
			}

			switch {
			case ev.status == "CANCELLED":
				stats.cancelled++
				continue
			case ev.allDay:
				stats.allDay++
				continue
			}

			entry := Entry{
				UID:    ev.uid,
				Hour:   ev.start.Hour(),
				Minute: ev.start.Minute(),
				Label:  ev.summary,
			}

			key := fmt.Sprintf("%02d:%02d|%s", entry.Hour, entry.Minute, entry.Label)
			if seen[key] {
				stats.duplicates++
				continue
			}
			seen[key] = true

			entries = append(entries, entry)
		}
	}

	log.WithFields(logrus.Fields{
		"events":     stats.events,
		"imported":   len(entries),
		"cancelled":  stats.cancelled,
		"all_day":    stats.allDay,
		"invalid":    stats.invalid,
		"duplicates": stats.duplicates,
	}).Info("Calendar parsed")

	return entries, nil
}

type importStats struct {
	events     int
	cancelled  int
	allDay     int
	invalid    int
	duplicates int
}

func validateICalFormat(bodyStr string) error {
	trimmed := strings.TrimSpace(bodyStr)

	// Check if response is HTML instead of iCalendar
	upperBody := strings.ToUpper(trimmed)
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}

	// Check if it starts with BEGIN:VCALENDAR
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		previewLen := 100
		if len(trimmed) < previewLen {
			previewLen = len(trimmed)
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", trimmed[:previewLen])
	}

	return nil
}
