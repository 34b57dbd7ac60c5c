// internal/domain/entity/live_flight.go
package entity

import (
	"time"
)

// LiveFlight is the current position of an airborne aircraft. It is a
// pass-through value from the live-position provider and never persisted.
type LiveFlight struct {
	FR24ID      string     `json:"fr24_id,omitempty"`
	Flight      string     `json:"flight,omitempty"`
	Callsign    string     `json:"callsign,omitempty"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Track       float64    `json:"track"`
	Alt         float64    `json:"alt"`
	GroundSpeed float64    `json:"gspeed"`
	OrigIcao    string     `json:"orig_icao,omitempty"`
	OrigIata    string     `json:"orig_iata,omitempty"`
	DestIcao    string     `json:"dest_icao,omitempty"`
	DestIata    string     `json:"dest_iata,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
}

// AircraftDetails is the combined details response: the journal record plus
// best-effort enrichment from the external providers.
type AircraftDetails struct {
	Aircraft         *Aircraft      `json:"aircraft"`
	LiveFlight       *LiveFlight    `json:"liveFlight"`
	Sightings        []Sighting     `json:"sightings"`
	FlightHistory    []HistoryEntry `json:"flightHistory"`
	LastHistoryCheck time.Time      `json:"lastHistoryCheck"`
}
