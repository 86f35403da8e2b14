package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDateStringToJSONDate verifies encoding of calendar dates.
func TestDateStringToJSONDate(t *testing.T) {
	got, err := DateStringToJSONDate("2014-01-24")
	require.NoError(t, err)
	assert.Equal(t, "/Date(1390521600000)/", got)

	got, err = DateStringToJSONDate("2014-01-24 08:00:00")
	require.NoError(t, err)
	assert.Equal(t, "/Date(1390550400000)/", got)

	for _, bad := range []string{"", "2014-13-01", "01/24/2014", "tomorrow"} {
		_, err := DateStringToJSONDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

// TestJSONDateToDateString verifies decoding with and without offsets.
func TestJSONDateToDateString(t *testing.T) {
	tests := map[string]string{
		"/Date(1390521600000)/":      "2014-01-24",
		"/Date(1390521600000-0800)/": "2014-01-24",
		"/Date(1413915487270-0700]/": "2014-10-21",
		"/Date(1415088000000-0800]/": "2014-11-04",
		"/Date(1390607999500)/":      "2014-01-25",
	}

	for input, expected := range tests {
		got, err := JSONDateToDateString(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := JSONDateToDateString("/Date()/")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// TestJSONDate_RoundTrip verifies that encoding then decoding is the identity.
func TestJSONDate_RoundTrip(t *testing.T) {
	for _, date := range []string{"2015-01-01", "2000-02-29", "2014-12-31", "1999-07-04"} {
		encoded, err := DateStringToJSONDate(date)
		require.NoError(t, err)

		decoded, err := JSONDateToDateString(encoded)
		require.NoError(t, err)
		assert.Equal(t, date, decoded)
	}
}

// TestNextDay verifies calendar arithmetic across month and year ends.
func TestNextDay(t *testing.T) {
	got, err := nextDay("2014-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2015-01-01", got)

	got, err = nextDay("2016-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2016-02-29", got)

	got, err = nextDay("2016-02-28 10:30:00")
	require.NoError(t, err)
	assert.Equal(t, "2016-02-29", got)
}
