package store

import (
	"errors"
	"testing"

	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersister keeps the last saved collection
type memPersister struct {
	saved   []models.Alarm
	saves   int
	loadErr error
	saveErr error
}

func (m *memPersister) Load() ([]models.Alarm, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.Alarm, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *memPersister) Save(alarms []models.Alarm) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = alarms
	return nil
}

func TestAddAndList(t *testing.T) {
	p := &memPersister{}
	s := NewAlarmStore(p)

	alarm, err := s.Add(7, 30, "Wake up")
	require.NoError(t, err)
	assert.NotEmpty(t, alarm.ID)
	assert.True(t, alarm.Active)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, alarm, list[0])
	assert.Equal(t, 7, list[0].Hour)
	assert.Equal(t, 30, list[0].Minute)
	assert.Equal(t, "Wake up", list[0].Label)
	assert.Equal(t, list, p.saved)
}

func TestAddAllValidTimes(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			before := len(s.List())
			alarm, err := s.Add(h, m, "")
			require.NoError(t, err)

			list := s.List()
			require.Len(t, list, before+1)
			assert.Equal(t, alarm.ID, list[before].ID)
			assert.True(t, list[before].Active)
			assert.Equal(t, h, list[before].Hour)
			assert.Equal(t, m, list[before].Minute)
		}
	}
}

func TestAddUniqueIDs(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		alarm, err := s.Add(6, 0, "")
		require.NoError(t, err)
		assert.False(t, seen[alarm.ID], "duplicate id %s", alarm.ID)
		seen[alarm.ID] = true
	}
}

func TestAddRejectsInvalidTime(t *testing.T) {
	p := &memPersister{}
	s := NewAlarmStore(p)
	_, err := s.Add(8, 0, "")
	require.NoError(t, err)
	saves := p.saves

	_, err = s.Add(24, 0, "")
	assert.Equal(t, models.ErrInvalid, models.ErrorCode(err))

	_, err = s.Add(0, 60, "")
	assert.Equal(t, models.ErrInvalid, models.ErrorCode(err))

	assert.Len(t, s.List(), 1)
	assert.Equal(t, saves, p.saves)
}

func TestToggleIsInvolution(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	alarm, err := s.Add(6, 45, "")
	require.NoError(t, err)

	s.Toggle(alarm.ID)
	got, ok := s.Get(alarm.ID)
	require.True(t, ok)
	assert.False(t, got.Active)

	s.Toggle(alarm.ID)
	got, _ = s.Get(alarm.ID)
	assert.True(t, got.Active)
}

func TestToggleUnknownID(t *testing.T) {
	p := &memPersister{}
	s := NewAlarmStore(p)
	_, err := s.Add(6, 45, "")
	require.NoError(t, err)
	before := s.List()
	saves := p.saves

	s.Toggle("missing")
	assert.Equal(t, before, s.List())
	assert.Equal(t, saves, p.saves)
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	a, _ := s.Add(1, 0, "a")
	b, _ := s.Add(2, 0, "b")
	c, _ := s.Add(3, 0, "c")

	s.Delete(b.ID)
	assert.Equal(t, []models.Alarm{a, c}, s.List())

	s.Delete("missing")
	assert.Equal(t, []models.Alarm{a, c}, s.List())
}

func TestListIsACopy(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	alarm, _ := s.Add(9, 15, "")

	list := s.List()
	list[0].Hour = 23
	list[0].Active = false

	got, _ := s.Get(alarm.ID)
	assert.Equal(t, 9, got.Hour)
	assert.True(t, got.Active)
}

func TestUpdateTime(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	alarm, _ := s.Add(9, 15, "")

	require.NoError(t, s.UpdateTime(alarm.ID, 10, 16))
	got, _ := s.Get(alarm.ID)
	assert.Equal(t, 10, got.Hour)
	assert.Equal(t, 16, got.Minute)

	err := s.UpdateTime(alarm.ID, 10, 60)
	assert.Equal(t, models.ErrInvalid, models.ErrorCode(err))
	got, _ = s.Get(alarm.ID)
	assert.Equal(t, 16, got.Minute)

	assert.NoError(t, s.UpdateTime("missing", 1, 1))
}

func TestSetActive(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	alarm, _ := s.Add(9, 15, "")

	s.SetActive(alarm.ID, false)
	got, _ := s.Get(alarm.ID)
	assert.False(t, got.Active)
	assert.Equal(t, 0, s.ActiveCount())

	s.SetActive(alarm.ID, true)
	assert.Equal(t, 1, s.ActiveCount())
}

func TestPersistFailureKeepsState(t *testing.T) {
	p := &memPersister{saveErr: errors.New("disk full")}
	s := NewAlarmStore(p)

	alarm, err := s.Add(5, 5, "")
	require.NoError(t, err)
	assert.Len(t, s.List(), 1)

	s.Toggle(alarm.ID)
	got, _ := s.Get(alarm.ID)
	assert.False(t, got.Active)
	assert.Equal(t, 2, p.saves)
}

func TestLoadDropsInvalidAndDuplicates(t *testing.T) {
	p := &memPersister{saved: []models.Alarm{
		{ID: "a", Hour: 7, Minute: 0, Active: true},
		{ID: "b", Hour: 24, Minute: 0, Active: true},
		{ID: "a", Hour: 8, Minute: 0, Active: true},
		{ID: "", Hour: 8, Minute: 0},
		{ID: "c", Hour: 9, Minute: 59, Label: "late"},
	}}
	s := NewAlarmStore(p)
	require.NoError(t, s.Load())

	assert.Equal(t, []models.Alarm{
		{ID: "a", Hour: 7, Minute: 0, Active: true},
		{ID: "c", Hour: 9, Minute: 59, Label: "late"},
	}, s.List())
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	s := NewAlarmStore(&memPersister{loadErr: errors.New("corrupt")})
	assert.Error(t, s.Load())
	assert.Empty(t, s.List())
}

func TestOnChange(t *testing.T) {
	s := NewAlarmStore(&memPersister{})
	calls := 0
	s.OnChange(func() {
		calls++
		// Listeners run outside the lock
		_ = s.List()
	})

	alarm, _ := s.Add(1, 1, "")
	s.Toggle(alarm.ID)
	s.Toggle("missing")
	s.Delete(alarm.ID)
	assert.Equal(t, 3, calls)
}
