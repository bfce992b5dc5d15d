package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Alarm is a scheduled wall-clock alarm
type Alarm struct {
	ID     string `json:"id"`              // Unique identifier (UUID), never changes
	Hour   int    `json:"hour"`            // 0-23
	Minute int    `json:"minute"`          // 0-59
	Active bool   `json:"active"`          // Only active alarms can ring
	Label  string `json:"label,omitempty"` // Free text, display only
}

// ValidateTime checks that hour and minute form a valid wall-clock time
func ValidateTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return Errorf(ErrInvalid, "hour %d out of range [0,23]", hour)
	}
	if minute < 0 || minute > 59 {
		return Errorf(ErrInvalid, "minute %d out of range [0,59]", minute)
	}
	return nil
}

// Validate checks the alarm's id and time
func (a *Alarm) Validate() error {
	if a.ID == "" {
		return Errorf(ErrInvalid, "alarm id is empty")
	}
	return ValidateTime(a.Hour, a.Minute)
}

// Clock formats the alarm time as zero-padded HH:MM
func (a *Alarm) Clock() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}

// Matches reports whether the alarm is active and set for t's hour and minute
func (a *Alarm) Matches(t time.Time) bool {
	return a.Active && a.Hour == t.Hour() && a.Minute == t.Minute()
}

// Snoozed returns the alarm time pushed back by one minute.
// 23:59 wraps around to 00:00.
func (a *Alarm) Snoozed() (hour, minute int) {
	minute = (a.Minute + 1) % 60
	hour = a.Hour
	if a.Minute == 59 {
		hour = (a.Hour + 1) % 24
	}
	return hour, minute
}

// Next returns the start of the first minute, counting from's own minute,
// in which the wall clock shows the alarm's hour and minute
func (a *Alarm) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), a.Hour, a.Minute, 0, 0, from.Location())
	if next.Before(RoundToMinute(from)) {
		next = time.Date(from.Year(), from.Month(), from.Day()+1, a.Hour, a.Minute, 0, 0, from.Location())
	}
	return next
}

// ParseClock parses "H:MM" or "HH:MM" into an hour and minute
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, Errorf(ErrInvalid, "time %q must look like HH:MM", s)
	}
	if hour, err = strconv.Atoi(h); err != nil {
		return 0, 0, Errorf(ErrInvalid, "hour %q is not a number", h)
	}
	if len(m) != 2 {
		return 0, 0, Errorf(ErrInvalid, "minute %q must have two digits", m)
	}
	if minute, err = strconv.Atoi(m); err != nil {
		return 0, 0, Errorf(ErrInvalid, "minute %q is not a number", m)
	}
	if err := ValidateTime(hour, minute); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

// RoundToMinute rounds a time down to the nearest minute
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
