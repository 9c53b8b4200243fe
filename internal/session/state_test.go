package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestPushRecentPrependsAndDedupes(t *testing.T) {
	ids := newIDs(3)
	trail := []uuid.UUID{ids[0], ids[1], ids[2]}

	trail = PushRecent(trail, ids[2])
	assert.Equal(t, []uuid.UUID{ids[2], ids[0], ids[1]}, trail)

	fresh := uuid.New()
	trail = PushRecent(trail, fresh)
	assert.Equal(t, fresh, trail[0])
	assert.Len(t, trail, 4)
}

func TestPushRecentTruncatesAtCap(t *testing.T) {
	trail := newIDs(RecentlyViewedCap)
	oldest := trail[len(trail)-1]

	fresh := uuid.New()
	trail = PushRecent(trail, fresh)

	assert.Len(t, trail, RecentlyViewedCap)
	assert.Equal(t, fresh, trail[0])
	assert.NotContains(t, trail, oldest)
}

func TestAddCompareNoopWhenPresent(t *testing.T) {
	ids := newIDs(2)
	tray := []uuid.UUID{ids[0], ids[1]}

	out, added := AddCompare(tray, ids[0])
	assert.False(t, added)
	assert.Equal(t, tray, out)
}

func TestAddCompareEvictsOldestAtCap(t *testing.T) {
	tray := newIDs(CompareCap)
	oldest := tray[0]

	fresh := uuid.New()
	out, added := AddCompare(tray, fresh)

	assert.True(t, added)
	assert.Len(t, out, CompareCap)
	assert.NotContains(t, out, oldest)
	assert.Equal(t, fresh, out[len(out)-1])
}

func TestRemoveCompare(t *testing.T) {
	ids := newIDs(3)
	tray := []uuid.UUID{ids[0], ids[1], ids[2]}

	out, removed := RemoveCompare(tray, ids[1])
	assert.True(t, removed)
	assert.Equal(t, []uuid.UUID{ids[0], ids[2]}, out)

	out, removed = RemoveCompare(out, uuid.New())
	assert.False(t, removed)
	assert.Len(t, out, 2)
}
