package gtfs

import (
	"fmt"
	"testing"
	"time"

	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/shard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalizeTime = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

func TestNormalizeCityTransit(t *testing.T) {
	schedule, err := DecodeSchedule(buildArchive(t, cityTransitFiles()))
	require.NoError(t, err)

	normalized, err := Normalize(schedule, normalizeTime)
	require.NoError(t, err)

	static := normalized.Static
	assert.Equal(t, ctdf.DataTypeVersion, static.DataTypeVersion)
	assert.Equal(t, "2026-03-02T09:30:00Z", static.Timestamp)
	assert.Equal(t, "City Transit", static.AgencyName)

	require.Len(t, static.Stops, 3)
	assert.Equal(t, ctdf.StopTypeStation, static.Stops["S1"].Type)
	assert.True(t, static.Stops["S1"].HasChildren)
	assert.Nil(t, static.Stops["S1"].ParentStopID)

	assert.Equal(t, ctdf.StopTypeStop, static.Stops["S2"].Type)
	assert.False(t, static.Stops["S2"].HasChildren)
	require.NotNil(t, static.Stops["S2"].ParentStopID)
	assert.Equal(t, "S1", *static.Stops["S2"].ParentStopID)
	assert.Equal(t, ctdf.Location{Latitude: 50.1001, Longitude: 14.4001}, static.Stops["S2"].Location)

	assert.False(t, static.Stops["S3"].HasChildren)

	route := static.Routes["R1"]
	require.NotNil(t, route)
	assert.Equal(t, ctdf.TransportTypeBus, route.Type)
	require.NotNil(t, route.Name.Short)
	assert.Equal(t, "12", *route.Name.Short)
	assert.Nil(t, route.Name.Long)
	require.NotNil(t, route.Color.Generic)
	assert.Equal(t, "FF0000", *route.Color.Generic)
	assert.Nil(t, route.Color.Text)

	require.Len(t, static.Trips, 2)
	require.NotNil(t, static.Trips["T1"].Headsign)
	assert.Equal(t, "Market Square", *static.Trips["T1"].Headsign)
	assert.Nil(t, static.Trips["T2"].Headsign)
	assert.Equal(t, "R1", static.Trips["T2"].RouteID)

	assert.Equal(t, map[string]ctdf.StopTimes{
		"T1": {
			{StopID: "S1", DepartureTime: "08:00:00"},
			{StopID: "S2", DepartureTime: "08:05:00"},
			{StopID: "S3", DepartureTime: "08:10:00"},
		},
	}, normalized.StopTimes)
}

func TestNormalizeMissingAgencyName(t *testing.T) {
	for name, agencies := range map[string][]Agency{
		"no rows":    {},
		"empty name": {{ID: "CT", Name: "   "}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(&Schedule{Agencies: agencies}, normalizeTime)

			var missing *MissingAgencyNameError
			assert.ErrorAs(t, err, &missing)
		})
	}
}

func TestNormalizeRouteTypes(t *testing.T) {
	expected := map[string]ctdf.TransportType{
		"0": ctdf.TransportTypeTram,
		"1": ctdf.TransportTypeSubway,
		"2": ctdf.TransportTypeTrain,
		"3": ctdf.TransportTypeBus,
		"4": ctdf.TransportTypeFerry,
		"5": ctdf.TransportTypeCableTram,
		"6": ctdf.TransportTypeCableCar,
		"7": ctdf.TransportTypeFunicular,
		"8": ctdf.TransportTypeTrolleybus,
		"9": ctdf.TransportTypeMonorail,
	}

	for code, transportType := range expected {
		schedule := &Schedule{
			Agencies: []Agency{{Name: "City Transit"}},
			Routes:   []Route{{ID: "R1", Type: code}},
		}

		normalized, err := Normalize(schedule, normalizeTime)
		require.NoError(t, err, code)
		assert.Equal(t, transportType, normalized.Static.Routes["R1"].Type, code)
	}
}

func TestNormalizeInvalidRouteType(t *testing.T) {
	for _, code := range []string{"99", "", "bus", "-1"} {
		schedule := &Schedule{
			Agencies: []Agency{{Name: "City Transit"}},
			Routes:   []Route{{ID: "R7", Type: code}},
		}

		_, err := Normalize(schedule, normalizeTime)

		var invalid *InvalidRouteTypeError
		require.ErrorAs(t, err, &invalid, code)
		assert.Equal(t, "R7", invalid.RouteID)
		assert.Equal(t, code, invalid.Code)
	}
}

func TestNormalizeDanglingParent(t *testing.T) {
	schedule := &Schedule{
		Agencies: []Agency{{Name: "City Transit"}},
		Stops: []Stop{
			{ID: "P1", Parent: "GONE"},
		},
	}

	normalized, err := Normalize(schedule, normalizeTime)
	require.NoError(t, err)

	assert.Len(t, normalized.Static.Stops, 1)
	assert.NotContains(t, normalized.Static.Stops, "GONE")
	assert.Equal(t, "GONE", *normalized.Static.Stops["P1"].ParentStopID)
}

func TestNormalizeStopTypes(t *testing.T) {
	schedule := &Schedule{
		Agencies: []Agency{{Name: "City Transit"}},
		Stops: []Stop{
			{ID: "A", Type: ""},
			{ID: "B", Type: "0"},
			{ID: "C", Type: "1"},
			{ID: "D", Type: "2"},
			{ID: "E", Type: "3"},
			{ID: "F", Type: "4"},
		},
	}

	normalized, err := Normalize(schedule, normalizeTime)
	require.NoError(t, err)

	stops := normalized.Static.Stops
	assert.Equal(t, ctdf.StopTypeStop, stops["A"].Type)
	assert.Equal(t, ctdf.StopTypeStop, stops["B"].Type)
	assert.Equal(t, ctdf.StopTypeStation, stops["C"].Type)
	assert.Equal(t, ctdf.StopTypeDoor, stops["D"].Type)
	assert.Equal(t, ctdf.StopTypeGeneric, stops["E"].Type)
	assert.Equal(t, ctdf.StopTypeBoardingArea, stops["F"].Type)
}

func TestNormalizeStopTimes(t *testing.T) {
	rows := []StopTime{
		{TripID: "T1", StopID: "C", StopSequence: 3, DepartureTime: "08:20:00"},
		{TripID: "T2", StopID: "X", StopSequence: 1, DepartureTime: "09:00:00"},
		{TripID: "T1", StopID: "A", StopSequence: 1, DepartureTime: "08:00:00"},
		{TripID: "T1", StopID: "B1", StopSequence: 2, DepartureTime: "08:10:00"},
		{TripID: "T1", StopID: "B2", StopSequence: 2, DepartureTime: "08:11:00"},
		{TripID: "T1", StopID: "SKIP", StopSequence: 4},
		{TripID: "T1", StopID: "FLEX", StopSequence: 5, EndPickupDropOffWindow: "18:00:00"},
		{TripID: "T3", StopID: "NONE", StopSequence: 1},
		{TripID: "T2", LocationGroupID: "LG1", StopSequence: 2, EndPickupDropOffWindow: "19:00:00"},
	}

	stopTimes := normalizeStopTimes(rows)

	assert.Equal(t, map[string]ctdf.StopTimes{
		"T1": {
			{StopID: "A", DepartureTime: "08:00:00"},
			{StopID: "B1", DepartureTime: "08:10:00"},
			{StopID: "B2", DepartureTime: "08:11:00"},
			{StopID: "C", DepartureTime: "08:20:00"},
			{StopID: "FLEX", DepartureTime: "18:00:00"},
		},
		"T2": {
			{StopID: "X", DepartureTime: "09:00:00"},
			{StopID: "", DepartureTime: "19:00:00"},
		},
	}, stopTimes)

	// input order untouched
	assert.Equal(t, "C", rows[0].StopID)
}

func TestBucket(t *testing.T) {
	stopTimes := map[string]ctdf.StopTimes{}
	for i := 0; i < 500; i++ {
		tripID := fmt.Sprintf("trip-%d", i)
		stopTimes[tripID] = ctdf.StopTimes{{StopID: "S", DepartureTime: "10:00"}}
	}

	buckets := Bucket(stopTimes)

	total := 0
	for key, trips := range buckets {
		for tripID, tripStopTimes := range trips {
			assert.Equal(t, key, shard.Key(tripID))
			assert.Equal(t, stopTimes[tripID], tripStopTimes)
			total++
		}
	}
	assert.Equal(t, len(stopTimes), total)
}

func TestBucketEmpty(t *testing.T) {
	assert.Empty(t, Bucket(map[string]ctdf.StopTimes{}))
}
