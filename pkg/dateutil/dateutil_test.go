package dateutil

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    civil.Date
		wantErr bool
	}{
		{name: "plain ISO date", input: "2019-08-20", want: civil.Date{Year: 2019, Month: time.August, Day: 20}},
		{name: "RFC 3339 timestamp", input: "2019-08-20T09:30:00+08:00", want: civil.Date{Year: 2019, Month: time.August, Day: 20}},
		{name: "space separated timestamp", input: "2020-02-20 00:00:00", want: civil.Date{Year: 2020, Month: time.February, Day: 20}},
		{name: "surrounding whitespace", input: "  1991-04-21 ", want: civil.Date{Year: 1991, Month: time.April, Day: 21}},
		{name: "garbage", input: "20/08/2019", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name       string
		start, end civil.Date
		want       int
	}{
		{"same day", MustDate(2019, 8, 1), MustDate(2019, 8, 1), 1},
		{"august", MustDate(2019, 8, 1), MustDate(2019, 8, 31), 31},
		{"across leap day", MustDate(2020, 2, 28), MustDate(2020, 3, 1), 3},
		{"whole leap year", MustDate(2020, 1, 1), MustDate(2020, 12, 31), 366},
		{"inverted", MustDate(2019, 8, 2), MustDate(2019, 8, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInclusive(tt.start, tt.end))
		})
	}
}

func TestAddDate(t *testing.T) {
	assert.Equal(t, MustDate(2020, 3, 2), AddDate(MustDate(2020, 1, 31), 0, 1, 0))
	assert.Equal(t, MustDate(2021, 2, 28), AddDate(MustDate(2020, 2, 28), 1, 0, 0))
	assert.Equal(t, MustDate(2019, 8, 19), AddDate(MustDate(2019, 8, 20), 0, 0, -1))
	assert.Equal(t, MustDate(2119, 8, 20), AddYears(MustDate(2019, 8, 20), 100))
}

func TestMinMax(t *testing.T) {
	a := MustDate(2019, 8, 19)
	b := MustDate(2019, 8, 20)
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, a, Min(b, a))
	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, b, Max(b, a))
}

func TestMustDatePanicsOnInvalidDate(t *testing.T) {
	assert.Panics(t, func() { MustDate(2019, 2, 30) })
	assert.True(t, IsZero(civil.Date{}))
	assert.False(t, IsZero(MustDate(2019, 2, 28)))
}

func TestLeapYears(t *testing.T) {
	assert.True(t, IsLeapYear(2020))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2000))
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2023))
}
