// internal/domain/entity/aircraft_record.go
package entity

import (
	"time"
)

// Interaction types for sightings
const (
	InteractionSaw   = "saw"
	InteractionFlown = "flown"
)

// AircraftRecord is the journal document for one aircraft, keyed by its
// registration. It owns the user's sightings and the cached flight history.
type AircraftRecord struct {
	ID                     string         `bson:"_id,omitempty" json:"id,omitempty"`
	Registration           string         `bson:"registration" json:"registration"` // unique index
	Sightings              []Sighting     `bson:"sightings" json:"sightings"`
	FlightHistory          []HistoryEntry `bson:"flightHistory" json:"flightHistory"`
	LastFlightHistoryCheck time.Time      `bson:"lastFlightHistoryCheck" json:"lastFlightHistoryCheck"`
	CreatedAt              time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Sighting is one user-logged interaction with the aircraft.
type Sighting struct {
	InteractionType    string    `bson:"interactionType" json:"interactionType"` // "saw" or "flown"
	Location           string    `bson:"location,omitempty" json:"location,omitempty"`
	DepartureAirport   string    `bson:"departureAirport,omitempty" json:"departureAirport,omitempty"`
	DestinationAirport string    `bson:"destinationAirport,omitempty" json:"destinationAirport,omitempty"`
	FlightNumber       string    `bson:"flightNumber,omitempty" json:"flightNumber,omitempty"`
	Notes              string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Image              string    `bson:"image,omitempty" json:"image,omitempty"`
	Date               time.Time `bson:"date" json:"date"`
}

// HistoryEntry is one completed flight segment from the history provider.
// Field names follow the provider's wire format so responses decode directly.
// LastSeen is the dedup key within a record's history.
type HistoryEntry struct {
	Icao24                           string `bson:"icao24" json:"icao24"`
	FirstSeen                        int64  `bson:"firstSeen" json:"firstSeen"`
	EstDepartureAirport              string `bson:"estDepartureAirport,omitempty" json:"estDepartureAirport,omitempty"`
	LastSeen                         int64  `bson:"lastSeen" json:"lastSeen"`
	EstArrivalAirport                string `bson:"estArrivalAirport,omitempty" json:"estArrivalAirport,omitempty"`
	Callsign                         string `bson:"callsign,omitempty" json:"callsign,omitempty"`
	EstDepartureAirportHorizDistance int    `bson:"estDepartureAirportHorizDistance,omitempty" json:"estDepartureAirportHorizDistance,omitempty"`
	EstDepartureAirportVertDistance  int    `bson:"estDepartureAirportVertDistance,omitempty" json:"estDepartureAirportVertDistance,omitempty"`
	EstArrivalAirportHorizDistance   int    `bson:"estArrivalAirportHorizDistance,omitempty" json:"estArrivalAirportHorizDistance,omitempty"`
	EstArrivalAirportVertDistance    int    `bson:"estArrivalAirportVertDistance,omitempty" json:"estArrivalAirportVertDistance,omitempty"`
	DepartureAirportCandidatesCount  int    `bson:"departureAirportCandidatesCount,omitempty" json:"departureAirportCandidatesCount,omitempty"`
	ArrivalAirportCandidatesCount    int    `bson:"arrivalAirportCandidatesCount,omitempty" json:"arrivalAirportCandidatesCount,omitempty"`

	// Decorated from the airport reference table, never persisted.
	DepartureAirportName string `bson:"-" json:"departureAirportName,omitempty"`
	ArrivalAirportName   string `bson:"-" json:"arrivalAirportName,omitempty"`
}

// EarliestSightingDate returns the date of the oldest sighting, or the zero
// time when the record has none.
func (r *AircraftRecord) EarliestSightingDate() time.Time {
	var earliest time.Time
	for _, s := range r.Sightings {
		if earliest.IsZero() || s.Date.Before(earliest) {
			earliest = s.Date
		}
	}
	return earliest
}

// LatestHistoryLastSeen returns the greatest lastSeen across the cached
// history, or 0 when the history is empty.
func (r *AircraftRecord) LatestHistoryLastSeen() int64 {
	var latest int64
	for _, h := range r.FlightHistory {
		if h.LastSeen > latest {
			latest = h.LastSeen
		}
	}
	return latest
}
