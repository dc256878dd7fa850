package repository

import (
	"context"
	"errors"

	"tourbook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateTier is returned when a tier collides with the structural
// uniqueness of (vehicle, passenger range, effective-from).
var ErrDuplicateTier = errors.New("duplicate price tier")

type PriceTierRepository struct {
	db *gorm.DB
}

func NewPriceTierRepository(db *gorm.DB) *PriceTierRepository {
	return &PriceTierRepository{db: db}
}

func (r *PriceTierRepository) Create(ctx context.Context, t *domain.PriceTier) error {
	tx := r.db.WithContext(ctx).Create(t)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTier
		}
		return tx.Error
	}
	return nil
}

// ListActiveTiers returns the active tiers for one (service, vehicle) pair.
// Filtering by passenger count and effective date is the resolver's job.
func (r *PriceTierRepository) ListActiveTiers(ctx context.Context, serviceType string, vehicleID int64) ([]domain.PriceTier, error) {
	var tiers []domain.PriceTier
	tx := r.db.WithContext(ctx).
		Where("service_type = ? AND vehicle_id = ? AND active = ?", serviceType, vehicleID, true).
		Order("id").
		Find(&tiers)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tiers, nil
}
