package ctdf

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopTimeDepartureOn(t *testing.T) {
	day := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)

	departure, err := StopTime{StopID: "S1", DepartureTime: "08:05:00"}.DepartureOn(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 4, 8, 5, 0, 0, time.UTC), departure)

	departure, err = StopTime{StopID: "S1", DepartureTime: "25:10:30"}.DepartureOn(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 1, 10, 30, 0, time.UTC), departure)

	departure, err = StopTime{StopID: "S1", DepartureTime: "7:45"}.DepartureOn(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 4, 7, 45, 0, 0, time.UTC), departure)
}

func TestStopTimeDepartureOnDaylightSavingChange(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	stopTime := StopTime{StopID: "S1", DepartureTime: "08:00:00"}

	for _, day := range []time.Time{
		time.Date(2026, time.March, 29, 12, 0, 0, 0, prague),
		time.Date(2026, time.October, 25, 12, 0, 0, 0, prague),
	} {
		departure, err := stopTime.DepartureOn(day)
		require.NoError(t, err)
		assert.Equal(t, time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, prague), departure)
		assert.Equal(t, 8, departure.Hour())
	}

	departure, err := StopTime{DepartureTime: "24:30:00"}.DepartureOn(time.Date(2026, time.March, 28, 0, 0, 0, 0, prague))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 29, 0, 30, 0, 0, prague), departure)
}

func TestStopTimeDepartureOnInvalid(t *testing.T) {
	for _, value := range []string{"", "08", "ab:cd:ef", "08:00:00:00"} {
		_, err := StopTime{DepartureTime: value}.DepartureOn(time.Now())
		assert.Error(t, err, value)
	}
}

func TestRouteDisplayName(t *testing.T) {
	short := "10"
	long := "Harbour Loop"

	assert.Equal(t, "10", (&Route{ID: "R", Name: RouteName{Short: &short, Long: &long}}).DisplayName())
	assert.Equal(t, "Harbour Loop", (&Route{ID: "R", Name: RouteName{Long: &long}}).DisplayName())
	assert.Equal(t, "R", (&Route{ID: "R"}).DisplayName())
}
