package repository

import (
	"context"
	"errors"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	tx := r.db.WithContext(ctx).First(&h, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &h, nil
}

func (r *HotelRepository) ListActive(ctx context.Context) ([]domain.Hotel, error) {
	var hotels []domain.Hotel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&hotels)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return hotels, nil
}

// GetOverride returns the fixed commission for the exact combination,
// or (nil, nil) when no override is configured.
func (r *HotelRepository) GetOverride(ctx context.Context, hotelID int64, serviceType string, vehicleID int64) (*domain.HotelCommissionOverride, error) {
	var o domain.HotelCommissionOverride
	tx := r.db.WithContext(ctx).
		Where("hotel_id = ? AND service_type = ? AND vehicle_id = ?", hotelID, serviceType, vehicleID).
		First(&o)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &o, nil
}

func (r *HotelRepository) CreateOverride(ctx context.Context, o *domain.HotelCommissionOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}
