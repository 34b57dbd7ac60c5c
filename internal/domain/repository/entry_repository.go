package repository

import (
	"context"
	"time"

	"tailtracker-service/internal/domain/entity"
)

// EntryRepository defines the interface for aircraft record persistence
type EntryRepository interface {
	FindByRegistration(ctx context.Context, registration string) (*entity.AircraftRecord, error)
	FindAll(ctx context.Context) ([]*entity.AircraftRecord, error)
	Insert(ctx context.Context, record *entity.AircraftRecord) error
	AddSighting(ctx context.Context, registration string, sighting entity.Sighting) (*entity.AircraftRecord, error)
	UpdateSightings(ctx context.Context, registration string, sightings []entity.Sighting) (*entity.AircraftRecord, error)
	Delete(ctx context.Context, registration string) error

	// UpdateFlightHistory atomically replaces the cached history and the
	// check timestamp. The write only applies if the stored
	// lastFlightHistoryCheck still equals expectedCheckedAt; otherwise it
	// returns entity.ErrConflict.
	UpdateFlightHistory(ctx context.Context, registration string, history []entity.HistoryEntry, checkedAt, expectedCheckedAt time.Time) error
}
