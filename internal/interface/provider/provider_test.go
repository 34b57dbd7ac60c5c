package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{})        {}
func (testLogger) Info(string, ...interface{})         {}
func (testLogger) Warn(string, ...interface{})         {}
func (testLogger) Error(string, ...interface{})        {}
func (testLogger) Fatal(string, ...interface{})        {}
func (l testLogger) With(...interface{}) logger.Logger { return l }

func TestRegistryLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/aircraft/N12345", r.URL.Path)
		w.Write([]byte(`{
			"response": {
				"aircraft": {
					"type": "737MAX 9",
					"icao_type": "B39M",
					"manufacturer": "Boeing",
					"mode_s": "AC048D",
					"registration": "N12345",
					"registered_owner": "United Airlines",
					"url_photo": "https://example.com/photo.jpg"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewRegistryClient(server.URL, time.Second, testLogger{})
	aircraft, err := client.Lookup(context.Background(), "N12345")

	require.NoError(t, err)
	assert.Equal(t, "N12345", aircraft.Registration)
	assert.Equal(t, "ac048d", aircraft.Icao24, "icao24 is lower-cased for the history provider")
	assert.Equal(t, "Boeing", aircraft.Manufacturer)
	assert.Equal(t, "United Airlines", aircraft.RegisteredOwner)
}

func TestRegistryLookupUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRegistryClient(server.URL, time.Second, testLogger{})
	_, err := client.Lookup(context.Background(), "N12345")

	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}

func TestRegistryLookupMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "not an object`))
	}))
	defer server.Close()

	client := NewRegistryClient(server.URL, time.Second, testLogger{})
	_, err := client.Lookup(context.Background(), "N12345")

	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable, "malformed payloads fail closed")
}

func TestLiveFlightCurrentPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))
		assert.Equal(t, "N12345", r.URL.Query().Get("registrations"))
		w.Write([]byte(`{
			"data": [{
				"fr24_id": "321a0cc3",
				"flight": "UA1234",
				"callsign": "UAL1234",
				"lat": 37.6191,
				"lon": -122.3816,
				"track": 270,
				"alt": 36000,
				"gspeed": 450,
				"orig_icao": "KSFO",
				"orig_iata": "SFO",
				"dest_icao": "KDEN",
				"dest_iata": "DEN",
				"eta": "2025-06-01T14:30:00Z"
			}]
		}`))
	}))
	defer server.Close()

	client := NewLiveFlightClient(server.URL, "test-key", time.Second, testLogger{})
	flight, err := client.CurrentPosition(context.Background(), "N12345")

	require.NoError(t, err)
	require.NotNil(t, flight)
	assert.Equal(t, "UAL1234", flight.Callsign)
	assert.Equal(t, 37.6191, flight.Lat)
	assert.Equal(t, float64(450), flight.GroundSpeed)
	require.NotNil(t, flight.ETA)
	assert.Equal(t, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), flight.ETA.UTC())
}

func TestLiveFlightNotAirborne(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewLiveFlightClient(server.URL, "test-key", time.Second, testLogger{})
	flight, err := client.CurrentPosition(context.Background(), "N12345")

	require.NoError(t, err)
	assert.Nil(t, flight, "empty data means not airborne, not an error")
}

func TestLiveFlightUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewLiveFlightClient(server.URL, "bad-key", time.Second, testLogger{})
	_, err := client.CurrentPosition(context.Background(), "N12345")

	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}

func TestHistoryFetchSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights/aircraft", r.URL.Path)
		assert.Equal(t, "ac048d", r.URL.Query().Get("icao24"))
		assert.Equal(t, "1733200000", r.URL.Query().Get("begin"))
		w.Write([]byte(`[
			{
				"icao24": "ac048d",
				"firstSeen": 1733322360,
				"estDepartureAirport": "KSLC",
				"lastSeen": 1733326918,
				"estArrivalAirport": "KOAK",
				"callsign": "SWA897  ",
				"estDepartureAirportHorizDistance": 1053,
				"estDepartureAirportVertDistance": 92,
				"estArrivalAirportHorizDistance": 1479,
				"estArrivalAirportVertDistance": 94,
				"departureAirportCandidatesCount": 1,
				"arrivalAirportCandidatesCount": 5
			},
			{
				"icao24": "ac048d",
				"firstSeen": 1733271860,
				"estDepartureAirport": "KDAL",
				"lastSeen": 1733280381,
				"estArrivalAirport": "KSLC",
				"callsign": "SWA3390 "
			}
		]`))
	}))
	defer server.Close()

	client := NewHistoryClient(server.URL, server.Client(), testLogger{})
	segments, err := client.FetchSegments(context.Background(), "ac048d", 1733200000, 1733400000)

	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, int64(1733326918), segments[0].LastSeen)
	assert.Equal(t, "KSLC", segments[0].EstDepartureAirport)
	assert.Equal(t, 5, segments[0].ArrivalAirportCandidatesCount)
	assert.Equal(t, "SWA3390 ", segments[1].Callsign, "callsigns are passed through untrimmed")
}

func TestHistoryNoFlightsInWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHistoryClient(server.URL, server.Client(), testLogger{})
	segments, err := client.FetchSegments(context.Background(), "ac048d", 1733200000, 1733400000)

	require.NoError(t, err, "404 means an empty window, not a failure")
	assert.Empty(t, segments)
}

func TestHistoryRejectsOversizedWindow(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewHistoryClient(server.URL, server.Client(), testLogger{})
	begin := int64(1700000000)
	_, err := client.FetchSegments(context.Background(), "ac048d", begin, begin+MaxQueryWindowSeconds+1)

	require.Error(t, err)
	assert.Zero(t, requests, "oversized windows are rejected before hitting the provider")
}

func TestHistoryUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHistoryClient(server.URL, server.Client(), testLogger{})
	_, err := client.FetchSegments(context.Background(), "ac048d", 1733200000, 1733400000)

	assert.ErrorIs(t, err, entity.ErrUpstreamUnavailable)
}
