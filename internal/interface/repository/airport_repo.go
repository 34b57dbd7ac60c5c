package repository

import (
	"context"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Icao      string         `gorm:"column:icao;unique"`
	Iata      string         `gorm:"column:iata"`
	Name      string         `gorm:"column:name"`
	City      string         `gorm:"column:city"`
	Country   string         `gorm:"column:country"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIcao finds an airport by ICAO code
func (r *GormAirportRepository) GetByIcao(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("icao = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:      airport.ID,
		Icao:    airport.Icao,
		Iata:    airport.Iata,
		Name:    airport.Name,
		City:    airport.City,
		Country: airport.Country,
	}, nil
}
