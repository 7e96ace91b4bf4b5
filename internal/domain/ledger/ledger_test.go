package ledger

import (
	"testing"
	"time"

	"github.com/diegoclair/attendance-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Upsert(t *testing.T) {
	at := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("should replace the entry for the same key", func(t *testing.T) {
		l := New(nil)

		first := l.Upsert("33069", "在家", "09:00", "2024-01-01", at)
		second := l.Upsert("33069", "出門", "09:00", "2024-01-01", at.Add(time.Minute))

		got := l.QueryByBucket("2024-01-01", "09:00")
		require.Len(t, got, 1)
		assert.Equal(t, "出門", got[0].Status)
		assert.Equal(t, second.ID, got[0].ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("should keep entries of other members, windows and dates", func(t *testing.T) {
		l := New(nil)

		l.Upsert("33069", "在家", "09:00", "2024-01-01", at)
		l.Upsert("33070", "在家", "09:00", "2024-01-01", at)
		l.Upsert("33069", "在家", "16:00", "2024-01-01", at)
		l.Upsert("33069", "在家", "09:00", "2024-01-02", at)

		assert.Equal(t, 4, l.Len())
		assert.Len(t, l.QueryByBucket("2024-01-01", "09:00"), 2)
		assert.Len(t, l.ByDate("2024-01-01"), 3)
	})

	t.Run("should move a replaced entry to the end", func(t *testing.T) {
		l := New(nil)

		l.Upsert("33069", "a", "09:00", "2024-01-01", at)
		l.Upsert("33070", "b", "09:00", "2024-01-01", at)
		l.Upsert("33069", "c", "09:00", "2024-01-01", at)

		entries := l.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "33070", entries[0].MemberID)
		assert.Equal(t, "33069", entries[1].MemberID)
		assert.Equal(t, "c", entries[1].Status)
	})

	t.Run("should stamp the submission time", func(t *testing.T) {
		l := New(nil)

		entry := l.Upsert("33069", "在家", "09:00", "2024-01-01", at)

		assert.Equal(t, at, entry.SubmittedAt)
		assert.NotEmpty(t, entry.ID)
	})
}

func TestLedger_New(t *testing.T) {
	stored := []entity.AttendanceEntry{
		{ID: "1", Date: "2024-01-01", Window: "09:00", MemberID: "33069", Status: "old"},
		{ID: "2", Date: "2024-01-01", Window: "09:00", MemberID: "33070", Status: "x"},
		{ID: "3", Date: "2024-01-01", Window: "09:00", MemberID: "33069", Status: "new"},
	}

	l := New(stored)

	got := l.QueryByBucket("2024-01-01", "09:00")
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Status)
	assert.Equal(t, "new", got[1].Status)
}

func TestLedger_Clear(t *testing.T) {
	l := New(nil)
	l.Upsert("33069", "在家", "09:00", "2024-01-01", time.Now())

	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.QueryByBucket("2024-01-01", "09:00"))
}

func TestLedger_EntriesIsACopy(t *testing.T) {
	l := New(nil)
	l.Upsert("33069", "在家", "09:00", "2024-01-01", time.Now())

	entries := l.Entries()
	entries[0].Status = "changed"

	assert.Equal(t, "在家", l.Entries()[0].Status)
}
