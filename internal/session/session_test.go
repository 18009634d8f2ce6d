package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radiatool/internal/constants"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(idle time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := NewStore(idle)
	s.now = clock.now
	return s, clock
}

var key = CellKey{Connection: constants.ConnectionRightValve, RadiatorType: "22", Article: "R225001000"}

func TestCreate_Defaults(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	sess := s.Create()

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, constants.ConnectionRightValve, sess.Connection)
	assert.Equal(t, "10", sess.RadiatorType)
	assert.Equal(t, constants.MountingWall, sess.Options.Mounting)
	assert.Empty(t, sess.Cells)
	assert.Equal(t, 1, s.Len())
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	sess := s.Create()

	_, err := s.SetCell(sess.ID, key, "2")
	require.NoError(t, err)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	got.Cells[key] = "100"

	again, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", again.Cell(key))
}

func TestGet_Unknown(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetCell_Validation(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	res, err := s.SetCell(id, key, "2+3")
	require.NoError(t, err)
	assert.Equal(t, CellResult{Accepted: true, Value: "2+3", Quantity: 5}, res)

	// отказ оставляет прежнее значение
	res, err = s.SetCell(id, key, "2.5")
	require.NoError(t, err)
	assert.Equal(t, CellResult{Accepted: false, Value: "2+3", Quantity: 5}, res)

	res, err = s.SetCell(id, key, "abc")
	require.NoError(t, err)
	assert.False(t, res.Accepted)

	res, err = s.SetCell(id, key, "")
	require.NoError(t, err)
	assert.Equal(t, CellResult{Accepted: true}, res)

	sess, err := s.Get(id)
	require.NoError(t, err)
	assert.Empty(t, sess.Cells)
}

func TestAddQuantity(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	_, err := s.SetCell(id, key, "1+1")
	require.NoError(t, err)

	total, err := s.AddQuantity(id, key, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	sess, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "5", sess.Cell(key))
}

func TestAddQuantity_Overflow(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	_, err := s.SetCell(id, key, "2147483000")
	require.NoError(t, err)

	total, err := s.AddQuantity(id, key, 1000)
	require.NoError(t, err)
	assert.Equal(t, 2147483000, total)

	sess, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "2147483000", sess.Cell(key))

	res, err := s.SetCell(id, key, "99999999999999999999")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 0, res.Quantity)
}

func TestUpdateOptions(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	typ := "22"
	sess, err := s.UpdateOptions(id, OptionsUpdate{RadiatorType: &typ})
	require.NoError(t, err)
	assert.Equal(t, "22", sess.RadiatorType)

	// у левого подключения нет типа 22
	left := constants.ConnectionLeftValve
	sess, err = s.UpdateOptions(id, OptionsUpdate{Connection: &left})
	require.NoError(t, err)
	assert.Equal(t, constants.ConnectionLeftValve, sess.Connection)
	assert.Equal(t, "10", sess.RadiatorType)

	floor := constants.MountingFloor
	over, under := 150.0, -3.0
	sess, err = s.UpdateOptions(id, OptionsUpdate{Mounting: &floor, RadiatorDiscount: &over, BracketDiscount: &under})
	require.NoError(t, err)
	assert.Equal(t, constants.MountingFloor, sess.Options.Mounting)
	assert.Equal(t, 100.0, sess.Options.RadiatorDiscount)
	assert.Equal(t, 0.0, sess.Options.BracketDiscount)

	bad := constants.MountingMode("ceiling")
	sess, err = s.UpdateOptions(id, OptionsUpdate{Mounting: &bad})
	require.NoError(t, err)
	assert.Equal(t, constants.MountingFloor, sess.Options.Mounting)
}

func TestClearCells(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	_, err := s.SetCell(id, key, "4")
	require.NoError(t, err)
	require.NoError(t, s.ClearCells(id))

	sess, err := s.Get(id)
	require.NoError(t, err)
	assert.Empty(t, sess.Cells)
}

func TestIdleEviction(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	old := s.Create().ID

	clock.t = clock.t.Add(30 * time.Minute)
	_, err := s.Get(old)
	require.NoError(t, err)

	clock.t = clock.t.Add(61 * time.Minute)
	_, err = s.Get(old)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestRunCleanup(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Create()
	clock.t = clock.t.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evicted := make(chan int, 1)
	go s.RunCleanup(ctx, 5*time.Millisecond, func(active int) {
		select {
		case evicted <- active:
		default:
		}
	})

	select {
	case active := <-evicted:
		assert.Equal(t, 0, active)
	case <-time.After(time.Second):
		t.Fatal("очистка не запустилась")
	}
}

func TestCellEntries_Sorted(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	id := s.Create().ID

	keys := []CellKey{
		{Connection: constants.ConnectionSide, RadiatorType: "10", Article: "S1"},
		{Connection: constants.ConnectionRightValve, RadiatorType: "22", Article: "B"},
		{Connection: constants.ConnectionRightValve, RadiatorType: "22", Article: "A"},
		{Connection: constants.ConnectionRightValve, RadiatorType: "10", Article: "Z"},
	}
	for _, k := range keys {
		_, err := s.SetCell(id, k, "1")
		require.NoError(t, err)
	}

	sess, err := s.Get(id)
	require.NoError(t, err)

	var arts []string
	for _, e := range sess.CellEntries() {
		arts = append(arts, e.Article)
	}
	assert.Equal(t, []string{"Z", "A", "B", "S1"}, arts)
}
