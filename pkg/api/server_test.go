package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/findmybus/findmybus/pkg/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticURL = "https://feeds.example.com/gtfs.zip"

type staticFetcher struct {
	body []byte
	err  error
}

func (f *staticFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	return f.body, f.err
}

func cityTransitArchive(t *testing.T) []byte {
	t.Helper()

	files := map[string]string{
		"agency.txt":     "agency_id,agency_name\nCT,City Transit\n",
		"stops.txt":      "stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\nS1,Central Station,50.1,14.4,1,\nS2,Platform A,50.1,14.4,,S1\n",
		"routes.txt":     "route_id,route_short_name,route_type\nR1,12,3\n",
		"trips.txt":      "route_id,service_id,trip_id,trip_headsign\nR1,WK,T1,Central\nR1,WK,T 1,\n",
		"stop_times.txt": "trip_id,departure_time,stop_id,stop_sequence\nT1,25:10:00,S1,2\nT1,23:55:00,S2,1\nT 1,08:00:00,S1,1\n",
	}

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for name, contents := range files {
		file, err := writer.Create(name)
		require.NoError(t, err)
		_, err = file.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buffer.Bytes()
}

func newTestApp(t *testing.T, fetcher *staticFetcher) (*fiber.App, *session.Session) {
	t.Helper()

	cfg := config.Default()
	cfg.Static.URL = staticURL
	cfg.Realtime.URL = "https://feeds.example.com/vehicles.pb"

	feedSession := session.New(cfg, fetcher, storage.NewChunkedStore(storage.NewMemoryBackend(), 0))

	return NewApp(feedSession), feedSession
}

func request(t *testing.T, app *fiber.App, method string, target string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

func TestVersion(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{})

	status, body := request(t, app, http.MethodGet, "/core/version")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"version":"v0.1"}`, string(body))
}

func TestStaticBeforeImport(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{})

	status, body := request(t, app, http.MethodGet, "/core/static")
	require.Equal(t, http.StatusOK, status)

	var dataset ctdf.StaticDataset
	require.NoError(t, json.Unmarshal(body, &dataset))
	assert.Equal(t, "None", dataset.AgencyName)
	assert.Empty(t, dataset.Stops)

	status, _ = request(t, app, http.MethodGet, "/core/static/stops/S1")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = request(t, app, http.MethodGet, "/core/trips/T1/stop_times")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), `"error"`)
}

func TestRefreshStaticAndRead(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{body: cityTransitArchive(t)})

	status, _ := request(t, app, http.MethodPost, "/core/refresh/static")
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodGet, "/core/static/stops/S1")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"id": "S1",
		"name": "Central Station",
		"location": {"latitude": 50.1, "longitude": 14.4},
		"type": "station",
		"parentStopId": null,
		"hasChildren": true
	}`, string(body))

	status, body = request(t, app, http.MethodGet, "/core/static/routes/R1")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"id": "R1",
		"name": {"short": "12", "long": null},
		"type": "bus",
		"color": {"generic": null, "text": null}
	}`, string(body))

	status, body = request(t, app, http.MethodGet, "/core/static/trips/T1")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id": "T1", "routeId": "R1", "headsign": "Central"}`, string(body))

	status, _ = request(t, app, http.MethodGet, "/core/static/trips/T9")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = request(t, app, http.MethodGet, "/core/trips/T1/stop_times")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[
		{"stopId": "S2", "departureTime": "23:55:00"},
		{"stopId": "S1", "departureTime": "25:10:00"}
	]`, string(body))
}

func TestTripStopTimesOnDate(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{body: cityTransitArchive(t)})

	status, _ := request(t, app, http.MethodPost, "/core/refresh/static")
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodGet, "/core/trips/T1/stop_times?date=2026-03-02")
	require.Equal(t, http.StatusOK, status)

	var resolved []struct {
		StopID    string `json:"stopId"`
		Departure string `json:"departure"`
	}
	require.NoError(t, json.Unmarshal(body, &resolved))
	require.Len(t, resolved, 2)
	assert.Contains(t, resolved[0].Departure, "2026-03-02T23:55:00")
	assert.Contains(t, resolved[1].Departure, "2026-03-03T01:10:00")

	status, _ = request(t, app, http.MethodGet, "/core/trips/T1/stop_times?date=yesterday")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestEncodedIdentifiers(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{body: cityTransitArchive(t)})

	status, _ := request(t, app, http.MethodPost, "/core/refresh/static")
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, http.MethodGet, "/core/trips/T%201/stop_times")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"stopId": "S1", "departureTime": "08:00:00"}]`, string(body))

	status, body = request(t, app, http.MethodGet, "/core/static/trips/T%201")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id": "T 1", "routeId": "R1", "headsign": null}`, string(body))
}

func TestRefreshStaticFailure(t *testing.T) {
	app, feedSession := newTestApp(t, &staticFetcher{err: errors.New("dial tcp: i/o timeout")})

	status, body := request(t, app, http.MethodPost, "/core/refresh/static")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.JSONEq(t, `{"error": "dial tcp: i/o timeout"}`, string(body))
	assert.Equal(t, "None", feedSession.Static().AgencyName)
}

func TestRefreshRealtimeFailure(t *testing.T) {
	app, _ := newTestApp(t, &staticFetcher{body: []byte{0xff, 0xff}})

	status, _ := request(t, app, http.MethodPost, "/core/refresh/realtime")
	assert.Equal(t, http.StatusBadGateway, status)

	status, body := request(t, app, http.MethodGet, "/core/realtime")
	require.Equal(t, http.StatusOK, status)

	var dataset ctdf.RealtimeDataset
	require.NoError(t, json.Unmarshal(body, &dataset))
	assert.Empty(t, dataset.Vehicles)
}
