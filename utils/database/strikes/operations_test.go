package strikes

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "strikes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMissingRecordIsZero(t *testing.T) {
	db := testDB(t)

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	assert.Equal(t, 0.0, record.StrikeCount)
	assert.Empty(t, record.History)
}

func TestApplyCreatesRecordLazily(t *testing.T) {
	db := testDB(t)

	newCount, err := ApplyStrikeDelta(db, "member", "guild", 1, "spamming", "mod-a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, newCount)

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	assert.Equal(t, 1.0, record.StrikeCount)
	require.Len(t, record.History, 1)
	assert.Equal(t, 1.0, record.History[0].Delta)
	assert.Equal(t, "spamming", record.History[0].Reason)
	assert.Equal(t, "mod-a", record.History[0].Moderator)
}

func TestFloorClampRecordsEffectiveDelta(t *testing.T) {
	db := testDB(t)

	_, err := ApplyStrikeDelta(db, "member", "guild", 0.5, "late to raid", "mod-a")
	require.NoError(t, err)

	newCount, err := ApplyStrikeDelta(db, "member", "guild", -1, "Achievement: clean month", "mod-a (confirmed by mod-b)")
	require.NoError(t, err)
	assert.Equal(t, 0.0, newCount)

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	require.Len(t, record.History, 2)
	// The requested delta was -1 but only -0.5 could apply.
	assert.Equal(t, -0.5, record.History[1].Delta)
}

func TestFloorIsEvaluatedPerApply(t *testing.T) {
	db := testDB(t)

	// +2, -3 (clamps to 0), +1: floor applies at each step, so the final
	// count is 1, not 0.
	_, err := ApplyStrikeDelta(db, "member", "guild", 2, "grief", "mod-a")
	require.NoError(t, err)
	count, err := ApplyStrikeDelta(db, "member", "guild", -3, "appeal", "mod-a")
	require.NoError(t, err)
	assert.Equal(t, 0.0, count)
	count, err = ApplyStrikeDelta(db, "member", "guild", 1, "grief again", "mod-b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, count)

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	require.Len(t, record.History, 3)
	assert.Equal(t, []float64{2, -2, 1}, []float64{
		record.History[0].Delta,
		record.History[1].Delta,
		record.History[2].Delta,
	})
}

func TestHistoryIsChronological(t *testing.T) {
	db := testDB(t)

	reasons := []string{"first", "second", "third"}
	for _, reason := range reasons {
		_, err := ApplyStrikeDelta(db, "member", "guild", 1, reason, "mod-a")
		require.NoError(t, err)
	}

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	require.Len(t, record.History, 3)
	for idx, entry := range record.History {
		assert.Equal(t, reasons[idx], entry.Reason)
	}
}

func TestConcurrentAppliesLoseNoUpdate(t *testing.T) {
	db := testDB(t)

	_, err := ApplyStrikeDelta(db, "member", "guild", 5, "seed", "mod-a")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for n := 0; n < 2; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = ApplyStrikeDelta(db, "member", "guild", -1, "Achievement: clean month", "mod-a (confirmed by mod-b)")
		}(n)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	record, err := GetStrikeRecord(db, "member", "guild")
	require.NoError(t, err)
	assert.Equal(t, 3.0, record.StrikeCount)
	assert.Len(t, record.History, 3)
}

func TestRecordsAreScopedPerGuild(t *testing.T) {
	db := testDB(t)

	_, err := ApplyStrikeDelta(db, "member", "guild-a", 2, "grief", "mod-a")
	require.NoError(t, err)
	_, err = ApplyStrikeDelta(db, "member", "guild-b", 1, "spam", "mod-b")
	require.NoError(t, err)

	recordA, err := GetStrikeRecord(db, "member", "guild-a")
	require.NoError(t, err)
	recordB, err := GetStrikeRecord(db, "member", "guild-b")
	require.NoError(t, err)
	assert.Equal(t, 2.0, recordA.StrikeCount)
	assert.Equal(t, 1.0, recordB.StrikeCount)
}

func TestGetTopStrikeCounts(t *testing.T) {
	db := testDB(t)

	_, err := ApplyStrikeDelta(db, "member-1", "guild", 1, "spam", "mod-a")
	require.NoError(t, err)
	_, err = ApplyStrikeDelta(db, "member-2", "guild", 3, "grief", "mod-a")
	require.NoError(t, err)
	// A member clamped back to zero must not show up.
	_, err = ApplyStrikeDelta(db, "member-3", "guild", 1, "spam", "mod-a")
	require.NoError(t, err)
	_, err = ApplyStrikeDelta(db, "member-3", "guild", -2, "appeal", "mod-a")
	require.NoError(t, err)

	records, err := GetTopStrikeCounts(db, "guild", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "member-2", records[0].UserID)
	assert.Equal(t, "member-1", records[1].UserID)
}

func TestGetModeratorActionStats(t *testing.T) {
	db := testDB(t)

	_, err := ApplyStrikeDelta(db, "member-1", "guild", 1, "spam", "mod-a")
	require.NoError(t, err)
	_, err = ApplyStrikeDelta(db, "member-2", "guild", 1, "grief", "mod-a")
	require.NoError(t, err)
	_, err = ApplyStrikeDelta(db, "member-3", "guild", 1, "spam", "mod-b")
	require.NoError(t, err)

	stats, err := GetModeratorActionStats(db, "guild", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"mod-a": 2, "mod-b": 1}, stats)
}
