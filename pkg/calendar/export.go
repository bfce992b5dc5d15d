package calendar

import (
	"io"
	"time"

	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/emersion/go-ical"
)

// ProductID identifies exported calendars
const ProductID = "-//borgmon//alarm-clock//EN"

// Export writes the active alarms as a calendar. Each alarm becomes one
// VEVENT at its next occurrence after from, carrying a DISPLAY VALARM that
// fires at the start.
func Export(w io.Writer, alarms []models.Alarm, from time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	stamp := from.UTC().Truncate(time.Second)
	for _, alarm := range alarms {
		if !alarm.Active {
			continue
		}
		cal.Children = append(cal.Children, alarmEvent(alarm, from, stamp))
	}

	return ical.NewEncoder(w).Encode(cal)
}

func alarmEvent(alarm models.Alarm, from, stamp time.Time) *ical.Component {
	start := alarm.Next(from)
	summary := alarm.Label
	if summary == "" {
		summary = "Alarm " + alarm.Clock()
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, alarm.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(time.Minute).UTC())
	event.Props.SetText(ical.PropSummary, summary)

	valarm := ical.NewComponent(ical.CompAlarm)
	valarm.Props.SetText(ical.PropAction, "DISPLAY")
	valarm.Props.SetText(ical.PropDescription, summary)
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "PT0S"
	valarm.Props.Set(trigger)
	event.Children = append(event.Children, valarm)

	return event.Component
}
