package repository

import (
	"context"

	"tailtracker-service/internal/domain/entity"
)

// RegistryProvider resolves a registration to static aircraft metadata,
// including the icao24 id the history provider requires.
type RegistryProvider interface {
	Lookup(ctx context.Context, registration string) (*entity.Aircraft, error)
}

// LiveFlightProvider fetches the aircraft's current position. A nil flight
// with a nil error means the aircraft is not currently tracked.
type LiveFlightProvider interface {
	CurrentPosition(ctx context.Context, registration string) (*entity.LiveFlight, error)
}

// FlightHistoryProvider fetches completed flight segments between two epoch
// timestamps. Implementations must reject windows over the provider maximum.
type FlightHistoryProvider interface {
	FetchSegments(ctx context.Context, icao24 string, begin, end int64) ([]entity.HistoryEntry, error)
}
