package repository

import (
	"context"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListActiveServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&services)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return services, nil
}

func (r *CatalogRepository) GetServiceByCode(ctx context.Context, code string) (*domain.Service, error) {
	var s domain.Service
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *CatalogRepository) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	tx := r.db.WithContext(ctx).First(&v, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &v, nil
}

func (r *CatalogRepository) ListActiveVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("capacity_min").Find(&vehicles)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return vehicles, nil
}
