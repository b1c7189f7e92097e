package civiltime_test

import (
	"math"
	"testing"
	"time"

	"github.com/efifs/corefs/civiltime"
	"github.com/stretchr/testify/assert"
)

func TestToCivil_Epoch(t *testing.T) {
	c := civiltime.ToCivil(0)
	assert.Equal(t, 1970, c.Year)
	assert.Equal(t, 1, c.Month)
	assert.Equal(t, 1, c.Day)
	assert.Equal(t, 0, c.Hour)
	assert.Equal(t, 0, c.Minute)
	assert.Equal(t, 0, c.Second)
}

func TestToCivil_MatchesStandardLibrary(t *testing.T) {
	samples := []int32{0, 1, 86399, 86400, 1_700_000_000, math.MaxInt32, -1, -86400, -1_000_000_000}
	for _, ts := range samples {
		c := civiltime.ToCivil(ts)
		want := time.Unix(int64(ts), 0).UTC()

		assert.Equal(t, want.Year(), c.Year, "year for %d", ts)
		assert.Equal(t, int(want.Month()), c.Month, "month for %d", ts)
		assert.Equal(t, want.Day(), c.Day, "day for %d", ts)
		assert.Equal(t, want.Hour(), c.Hour, "hour for %d", ts)
		assert.Equal(t, want.Minute(), c.Minute, "minute for %d", ts)
		assert.Equal(t, want.Second(), c.Second, "second for %d", ts)
	}
}

func TestRoundTrip(t *testing.T) {
	// Invariant #8.
	samples := []int32{0, 1, -1, 86399, 86400, -86400, 1_700_000_000, math.MinInt32, math.MaxInt32}
	for _, ts := range samples {
		c := civiltime.ToCivil(ts)
		assert.Equal(t, ts, civiltime.ToSeconds(c), "round trip for %d", ts)
	}
}

func TestLeapYear(t *testing.T) {
	// 2024-02-29 00:00:00Z
	leapDay := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC).Unix()
	c := civiltime.ToCivil(int32(leapDay))
	assert.Equal(t, 2024, c.Year)
	assert.Equal(t, 2, c.Month)
	assert.Equal(t, 29, c.Day)
}
