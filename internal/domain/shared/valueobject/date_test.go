package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_DaysSince(t *testing.T) {
	due := NewDate(2024, time.March, 10)

	assert.Equal(t, 0, due.DaysSince(due))
	assert.Equal(t, 3, NewDate(2024, time.March, 13).DaysSince(due))
	assert.Equal(t, -2, NewDate(2024, time.March, 8).DaysSince(due))

	// Across a leap-February boundary
	assert.Equal(t, 2, NewDate(2024, time.March, 1).DaysSince(NewDate(2024, time.February, 28)))
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	assert.Equal(t, "2024-03-01", d.AddDays(1).String())
	assert.Equal(t, "2024-02-28", d.AddDays(-1).String())
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2024, time.January, 1)))
}

func TestDateOf_TruncatesTimeOfDay(t *testing.T) {
	ts := time.Date(2024, time.June, 15, 23, 45, 1, 0, time.UTC)
	assert.Equal(t, "2024-06-15", DateOf(ts).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.December, 31)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsZero())
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.May, 2, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-02", d.String())

	require.NoError(t, d.Scan("2023-11-05"))
	assert.Equal(t, "2023-11-05", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
