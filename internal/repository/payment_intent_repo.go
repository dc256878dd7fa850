package repository

import (
	"context"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type PaymentIntentRepository struct {
	db *gorm.DB
}

func NewPaymentIntentRepository(db *gorm.DB) *PaymentIntentRepository {
	return &PaymentIntentRepository{db: db}
}

func (r *PaymentIntentRepository) Create(ctx context.Context, p *domain.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentIntentRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.PaymentIntent, error) {
	var p domain.PaymentIntent
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// MarkApproved flips the intent to approved exactly once. The guarded write
// makes replayed gateway callbacks a no-op; changed reports whether this
// call was the one that flipped it.
func (r *PaymentIntentRepository) MarkApproved(ctx context.Context, orderID int64, rawBody string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.PaymentIntent{}).
		Where("order_id = ? AND status <> ?", orderID, string(domain.IntentApproved)).
		Updates(map[string]any{
			"status":      string(domain.IntentApproved),
			"raw_body":    rawBody,
			"approved_at": at,
			"updated_at":  at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// MarkRejected records a rejected/pending callback body without ever
// downgrading an intent that already reached approved.
func (r *PaymentIntentRepository) MarkRejected(ctx context.Context, orderID int64, rawBody string) error {
	return r.db.WithContext(ctx).Model(&domain.PaymentIntent{}).
		Where("order_id = ? AND status <> ?", orderID, string(domain.IntentApproved)).
		Updates(map[string]any{
			"status":     string(domain.IntentRejected),
			"raw_body":   rawBody,
			"updated_at": time.Now().UTC(),
		}).Error
}
