package timezone_test

import (
	"booktable/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, time.RFC3339))
	assert.True(t, timezone.ToAppTime(testTime).Equal(testTime))
}

func TestDayWindow(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		start, end, err := timezone.DayWindow("2025-04-11")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("empty date is today", func(t *testing.T) {
		start, end, err := timezone.DayWindow("")

		require.NoError(t, err)

		now := time.Now().UTC()
		assert.False(t, now.Before(start))
		assert.True(t, now.Before(end))
		assert.Equal(t, 24*time.Hour, end.Sub(start))
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := timezone.DayWindow("11-04-2025")

		assert.Error(t, err)
	})
}
