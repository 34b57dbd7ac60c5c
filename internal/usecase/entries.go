package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/internal/domain/repository"
	"tailtracker-service/pkg/logger"
)

// EntryUsecase handles journal record CRUD
type EntryUsecase struct {
	entryRepo repository.EntryRepository
	logger    logger.Logger
}

// NewEntryUsecase creates a new entry usecase
func NewEntryUsecase(entryRepo repository.EntryRepository, logger logger.Logger) *EntryUsecase {
	return &EntryUsecase{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// ListRecords returns all aircraft records, oldest first
func (u *EntryUsecase) ListRecords(ctx context.Context) ([]*entity.AircraftRecord, error) {
	return u.entryRepo.FindAll(ctx)
}

// GetRecord returns one record by registration
func (u *EntryUsecase) GetRecord(ctx context.Context, registration string) (*entity.AircraftRecord, error) {
	return u.entryRepo.FindByRegistration(ctx, registration)
}

// LogSighting appends a sighting to the registration's record, creating the
// record on the first sighting. The bool reports whether a record was created.
func (u *EntryUsecase) LogSighting(ctx context.Context, registration string, sighting entity.Sighting) (*entity.AircraftRecord, bool, error) {
	if sighting.Date.IsZero() {
		sighting.Date = time.Now()
	}

	_, err := u.entryRepo.FindByRegistration(ctx, registration)
	if errors.Is(err, entity.ErrRecordNotFound) {
		record := &entity.AircraftRecord{
			Registration:  registration,
			Sightings:     []entity.Sighting{sighting},
			FlightHistory: []entity.HistoryEntry{},
		}
		if err := u.entryRepo.Insert(ctx, record); err != nil {
			return nil, false, fmt.Errorf("failed to create record: %w", err)
		}
		u.logger.Info("Created aircraft record", "registration", registration)
		return record, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	record, err := u.entryRepo.AddSighting(ctx, registration, sighting)
	if err != nil {
		return nil, false, err
	}
	u.logger.Info("Logged sighting", "registration", registration, "type", sighting.InteractionType)
	return record, false, nil
}

// UpdateSightings replaces the sightings list on a record
func (u *EntryUsecase) UpdateSightings(ctx context.Context, registration string, sightings []entity.Sighting) (*entity.AircraftRecord, error) {
	return u.entryRepo.UpdateSightings(ctx, registration, sightings)
}

// DeleteRecord removes a record by registration
func (u *EntryUsecase) DeleteRecord(ctx context.Context, registration string) error {
	if err := u.entryRepo.Delete(ctx, registration); err != nil {
		return err
	}
	u.logger.Info("Deleted aircraft record", "registration", registration)
	return nil
}
