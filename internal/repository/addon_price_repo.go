package repository

import (
	"context"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type AddOnPriceRepository struct {
	db *gorm.DB
}

func NewAddOnPriceRepository(db *gorm.DB) *AddOnPriceRepository {
	return &AddOnPriceRepository{db: db}
}

func (r *AddOnPriceRepository) Create(ctx context.Context, p *domain.AddOnPrice) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// ListActive returns the active price rows for one add-on type of a service.
func (r *AddOnPriceRepository) ListActive(ctx context.Context, serviceType, addOnType string) ([]domain.AddOnPrice, error) {
	var rows []domain.AddOnPrice
	tx := r.db.WithContext(ctx).
		Where("service_type = ? AND add_on_type = ? AND active = ?", serviceType, addOnType, true).
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
