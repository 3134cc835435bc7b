package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundsUsesOneBasedMonth(t *testing.T) {
	start, end, err := DayBounds("2021-03-15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2021, time.March, 16, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBoundsRollsOverMonthAndYear(t *testing.T) {
	start, end, err := DayBounds("2020-12-31")
	require.NoError(t, err)

	assert.Equal(t, 2020, start.Year())
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBoundsRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2021-13-01", "2021-02-30", "2021/02/01", "abcd-01-01", "2021-00-10"} {
		_, _, err := DayBounds(in)
		assert.Error(t, err, in)
	}
}

func TestInRangeIsHalfOpen(t *testing.T) {
	start, end, err := DayBounds("2021-06-01")
	require.NoError(t, err)

	assert.True(t, InRange(start, start, end))
	assert.True(t, InRange(end.Add(-time.Millisecond), start, end))
	assert.False(t, InRange(end, start, end))
	assert.False(t, InRange(start.Add(-time.Millisecond), start, end))
}

func TestParseInstantNormalizesToUTC(t *testing.T) {
	got, err := ParseInstant("2021-06-01T12:30:00.123456+02:00")
	require.NoError(t, err)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2021, 6, 1, 10, 30, 0, 123000000, time.UTC), got)
	assert.Equal(t, "2021-06-01T10:30:00.123Z", Format(got))
}

func TestParseInstantRejectsGarbage(t *testing.T) {
	_, err := ParseInstant("tomorrow at noon")
	assert.Error(t, err)
}
