package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// Entry is an alarm time read from a calendar event
type Entry struct {
	UID    string
	Hour   int
	Minute int
	Label  string
}

// event holds the VEVENT fields the importer looks at
type event struct {
	uid     string
	summary string
	start   time.Time
	allDay  bool
	status  string
}

func parseEvent(comp *ical.Component) (event, error) {
	normalizeComponentTimezones(comp)

	ev := event{}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		ev.uid = uidProp.Value
	}

	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		ev.summary = strings.TrimSpace(summaryProp.Value)
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		ev.status = strings.ToUpper(statusProp.Value)
	}

	// Polyfill: titles like "Cancelled: standup" count as cancelled
	if ev.status != "CANCELLED" && isCancelledTitle(ev.summary) {
		ev.status = "CANCELLED"
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return ev, fmt.Errorf("event %q has no DTSTART", ev.summary)
	}
	ev.allDay = startProp.ValueType() == ical.ValueDate

	t, err := parseDateTimeProperty(startProp, getTimezoneFromComponent(comp))
	if err != nil {
		return ev, fmt.Errorf("event %q: %w", ev.summary, err)
	}
	ev.start = t

	return ev, nil
}

func parseDateTimeProperty(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	// First try the standard DateTime method
	if t, err := prop.DateTime(loc); err == nil {
		return t.In(time.Local), nil
	}

	// If that fails, try parsing the raw value directly
	formats := []string{
		"20060102T150405Z",    // UTC format
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102",            // Date only
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, loc); err == nil {
			return t.In(time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func isCancelledTitle(title string) bool {
	cleanTitle := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	return strings.HasPrefix(cleanTitle, "canceled") || strings.HasPrefix(cleanTitle, "cancelled")
}
