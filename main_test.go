package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/borgmon/alarm-clock/pkg/calendar"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testNow = time.Date(2026, 10, 14, 8, 0, 0, 0, time.Local)

var testAlarms = []models.Alarm{
	{ID: "a", Hour: 7, Minute: 30, Active: true, Label: "Wake up"},
	{ID: "b", Hour: 9, Minute: 0, Active: false},
	{ID: "c", Hour: 22, Minute: 15, Active: true},
}

func seededPrefs(t *testing.T, alarms []models.Alarm) fyne.Preferences {
	t.Helper()
	prefs := test.NewApp().Preferences()
	require.NoError(t, store.NewPrefsPersister(prefs).Save(alarms))
	return prefs
}

func runCLI(t *testing.T, prefs fyne.Preferences, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommandWith(cliEnv{
		prefs: func() fyne.Preferences { return prefs },
		now:   func() time.Time { return testNow },
		run: func() error {
			t.Fatal("desktop app must not start")
			return nil
		},
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListTable(t *testing.T) {
	out, err := runCLI(t, seededPrefs(t, testAlarms), "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[1], "07:30")
	assert.Contains(t, lines[1], "Wake up")
	assert.Contains(t, lines[2], "no")
}

func TestListJSON(t *testing.T) {
	out, err := runCLI(t, seededPrefs(t, testAlarms), "list", "--format", "json")
	require.NoError(t, err)

	var rows []alarmRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "07:30", rows[0].Time)
	assert.Equal(t, time.Date(2026, 10, 15, 7, 30, 0, 0, time.Local).Format(time.RFC3339), rows[0].Next)
	assert.Empty(t, rows[1].Next, "inactive alarms have no next time")
	assert.Equal(t, time.Date(2026, 10, 14, 22, 15, 0, 0, time.Local).Format(time.RFC3339), rows[2].Next)
}

func TestListYAML(t *testing.T) {
	out, err := runCLI(t, seededPrefs(t, testAlarms), "list", "-f", "yaml")
	require.NoError(t, err)

	var rows []alarmRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Wake up", rows[0].Label)
	assert.False(t, rows[1].Active)
}

func TestListUnknownFormat(t *testing.T) {
	_, err := runCLI(t, seededPrefs(t, testAlarms), "list", "--format", "xml")
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	out, err := runCLI(t, test.NewApp().Preferences(), "list", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarms.ics")

	out, err := runCLI(t, seededPrefs(t, testAlarms), "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 alarms")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entries, err := calendar.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Wake up", entries[0].Label)
	assert.Equal(t, 22, entries[1].Hour)
}

func TestExportToStdout(t *testing.T) {
	out, err := runCLI(t, seededPrefs(t, testAlarms), "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
}

func TestVerboseFlag(t *testing.T) {
	defer logger.SetVerbose(false)

	_, err := runCLI(t, seededPrefs(t, nil), "--verbose", "list")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())
}

func TestRootRunsApp(t *testing.T) {
	started := false
	cmd := newRootCommandWith(cliEnv{
		prefs: func() fyne.Preferences { return test.NewApp().Preferences() },
		now:   time.Now,
		run: func() error {
			started = true
			return nil
		},
	})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.True(t, started)
}

func TestParseTimeFields(t *testing.T) {
	tests := []struct {
		hour, minute string
		wantH, wantM int
		wantErr      bool
	}{
		{"7", "30", 7, 30, false},
		{" 23 ", "59", 23, 59, false},
		{"07:05", "", 7, 5, false},
		{"24", "00", 0, 0, true},
		{"7", "60", 0, 0, true},
		{"", "30", 0, 0, true},
		{"seven", "30", 0, 0, true},
		{"7", "x", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := parseTimeFields(tt.hour, tt.minute)
		if tt.wantErr {
			assert.Error(t, err, "%q:%q", tt.hour, tt.minute)
			assert.Equal(t, models.ErrInvalid, models.ErrorCode(err))
			continue
		}
		require.NoError(t, err, "%q:%q", tt.hour, tt.minute)
		assert.Equal(t, tt.wantH, h)
		assert.Equal(t, tt.wantM, m)
	}
}

func TestUpcomingAlarms(t *testing.T) {
	upcoming := upcomingAlarms(testAlarms, testNow, 5)
	require.Len(t, upcoming, 2)
	// 22:15 today comes before 07:30 tomorrow
	assert.Equal(t, "c", upcoming[0].alarm.ID)
	assert.Equal(t, "a", upcoming[1].alarm.ID)

	assert.Len(t, upcomingAlarms(testAlarms, testNow, 1), 1)
	assert.Equal(t, "  07:30 - Wake up", upcomingText(upcoming[1]))
	assert.Equal(t, "  22:15", upcomingText(upcoming[0]))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncateString(strings.Repeat("é", 20), 10))
}

func TestActiveCountText(t *testing.T) {
	assert.Equal(t, "No active alarms", activeCountText(0))
	assert.Equal(t, "1 active alarm", activeCountText(1))
	assert.Equal(t, "3 active alarms", activeCountText(3))
}

func TestImportEntries(t *testing.T) {
	alarms := store.NewAlarmStore(store.NewPrefsPersister(test.NewApp().Preferences()))
	_, err := alarms.Add(7, 30, "Wake up")
	require.NoError(t, err)

	added := importEntries(alarms, []calendar.Entry{
		{UID: "1", Hour: 7, Minute: 30, Label: "Wake up"},
		{UID: "2", Hour: 9, Minute: 30, Label: "Standup"},
		{UID: "3", Hour: 9, Minute: 30, Label: "Standup"},
		{UID: "4", Hour: 25, Minute: 0, Label: "Broken"},
	})
	assert.Equal(t, 1, added)

	list := alarms.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Standup", list[1].Label)
	assert.True(t, list[1].Active)
}
