package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarm-clock/pkg/models"
)

// AlarmListConfig configures an AlarmList
type AlarmListConfig struct {
	Items    func() []models.Alarm // Snapshot shown on every refresh
	OnToggle func(id string)
	OnDelete func(id string)
}

// AlarmList shows one row per alarm with an active check and a delete button
type AlarmList struct {
	list   *widget.List
	items  []models.Alarm
	config AlarmListConfig
}

// NewAlarmList creates the list and the scroll container holding it
func NewAlarmList(config AlarmListConfig) (*AlarmList, fyne.CanvasObject) {
	al := &AlarmList{config: config}
	al.reload()

	al.list = widget.NewList(
		func() int {
			return len(al.items)
		},
		al.createRow,
		al.updateRow,
	)

	scroll := container.NewVScroll(al.list)
	scroll.SetMinSize(fyne.NewSize(0, 200))

	return al, scroll
}

func (al *AlarmList) createRow() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	clock := widget.NewLabel("00:00")
	clock.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	remove.Importance = widget.LowImportance

	return container.NewBorder(nil, nil,
		container.NewHBox(check, clock),
		remove,
		label,
	)
}

func (al *AlarmList) updateRow(i widget.ListItemID, o fyne.CanvasObject) {
	if i < 0 || i >= len(al.items) {
		return
	}
	alarm := al.items[i]
	check, clock, label, remove := rowParts(o)

	// Detach the handler so SetChecked does not toggle the alarm
	check.OnChanged = nil
	check.SetChecked(alarm.Active)
	check.OnChanged = func(bool) {
		if al.config.OnToggle != nil {
			al.config.OnToggle(alarm.ID)
		}
	}

	clock.SetText(alarm.Clock())
	label.SetText(alarm.Label)

	remove.OnTapped = func() {
		if al.config.OnDelete != nil {
			al.config.OnDelete(alarm.ID)
		}
	}
}

func rowParts(o fyne.CanvasObject) (*widget.Check, *widget.Label, *widget.Label, *widget.Button) {
	row := o.(*fyne.Container)
	// Border layout orders objects center, left, right
	label := row.Objects[0].(*widget.Label)
	left := row.Objects[1].(*fyne.Container)
	remove := row.Objects[2].(*widget.Button)
	return left.Objects[0].(*widget.Check), left.Objects[1].(*widget.Label), label, remove
}

func (al *AlarmList) reload() {
	if al.config.Items == nil {
		al.items = nil
		return
	}
	al.items = al.config.Items()
}

// Refresh re-reads the alarms and redraws the rows
func (al *AlarmList) Refresh() {
	al.reload()
	al.list.Refresh()
}

// Len returns the number of rows shown
func (al *AlarmList) Len() int {
	return len(al.items)
}
