package components

import (
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldProgress(t *testing.T) {
	hold := 2 * time.Second
	assert.Equal(t, 0.0, holdProgress(0, hold))
	assert.InDelta(t, 0.5, holdProgress(time.Second, hold), 1e-9)
	assert.Equal(t, 1.0, holdProgress(3*time.Second, hold))
	assert.Equal(t, 1.0, holdProgress(0, 0))
}

func TestHoldButtonZeroHoldConfirmsImmediately(t *testing.T) {
	test.NewApp()

	var confirmed atomic.Int32
	b := NewHoldButton("Dismiss", 0, func() { confirmed.Add(1) })

	b.MouseDown(nil)
	assert.Equal(t, int32(1), confirmed.Load())
	assert.False(t, b.Holding())
}

func TestHoldButtonConfirmsAfterHold(t *testing.T) {
	test.NewApp()

	var confirmed atomic.Int32
	b := NewHoldButton("Snooze", 150*time.Millisecond, func() { confirmed.Add(1) })

	b.MouseDown(nil)
	assert.True(t, b.Holding())
	assert.Eventually(t, func() bool { return confirmed.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, b.Holding())
	assert.Equal(t, 0.0, b.Progress())
}

func TestHoldButtonReleaseCancels(t *testing.T) {
	test.NewApp()

	var confirmed atomic.Int32
	b := NewHoldButton("Snooze", 300*time.Millisecond, func() { confirmed.Add(1) })

	b.MouseDown(nil)
	time.Sleep(100 * time.Millisecond)
	b.MouseUp(nil)
	assert.False(t, b.Holding())
	assert.Equal(t, 0.0, b.Progress())

	time.Sleep(350 * time.Millisecond)
	assert.Equal(t, int32(0), confirmed.Load())
}

func TestHoldButtonMinSize(t *testing.T) {
	test.NewApp()

	b := NewHoldButton("x", time.Second, nil)
	size := b.MinSize()
	assert.GreaterOrEqual(t, size.Width, DefaultHoldButtonSize.Width)
	assert.GreaterOrEqual(t, size.Height, DefaultHoldButtonSize.Height)
}

func TestAlarmList(t *testing.T) {
	test.NewApp()

	alarms := []models.Alarm{
		{ID: "a", Hour: 7, Minute: 5, Active: true, Label: "Wake up"},
		{ID: "b", Hour: 22, Minute: 30, Active: false},
	}
	var toggled, deleted []string

	al, obj := NewAlarmList(AlarmListConfig{
		Items:    func() []models.Alarm { return alarms },
		OnToggle: func(id string) { toggled = append(toggled, id) },
		OnDelete: func(id string) { deleted = append(deleted, id) },
	})
	require.NotNil(t, obj)
	assert.Equal(t, 2, al.Len())

	row := al.createRow()
	al.updateRow(0, row)
	check, clock, label, remove := rowParts(row)
	assert.True(t, check.Checked)
	assert.Equal(t, "07:05", clock.Text)
	assert.Equal(t, "Wake up", label.Text)
	assert.Empty(t, toggled, "rendering must not toggle")

	test.Tap(check)
	test.Tap(remove)
	assert.Equal(t, []string{"a"}, toggled)
	assert.Equal(t, []string{"a"}, deleted)

	al.updateRow(1, row)
	check, clock, _, _ = rowParts(row)
	assert.False(t, check.Checked)
	assert.Equal(t, "22:30", clock.Text)

	alarms = alarms[:1]
	al.Refresh()
	assert.Equal(t, 1, al.Len())
}
