package repository

import (
	"context"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.Notification, error) {
	var rows []domain.Notification
	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
