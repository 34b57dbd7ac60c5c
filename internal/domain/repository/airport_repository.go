package repository

import (
	"context"

	"tailtracker-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference lookups
type AirportRepository interface {
	GetByIcao(ctx context.Context, code string) (*entity.Airport, error)
}
