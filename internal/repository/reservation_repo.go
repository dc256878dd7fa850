package repository

import (
	"context"
	"encoding/json"
	"time"

	"tourbook/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Code            string     `gorm:"column:code"`
	ServiceType     string     `gorm:"column:service_type"`
	HotelID         *int64     `gorm:"column:hotel_id"`
	VehicleID       int64      `gorm:"column:vehicle_id"`
	Passengers      int        `gorm:"column:passengers"`
	ScheduledAt     time.Time  `gorm:"column:scheduled_at"`
	VehiclePrice    float64    `gorm:"column:vehicle_price"`
	AddOnTotal      float64    `gorm:"column:add_on_total"`
	TotalPrice      float64    `gorm:"column:total_price"`
	Commission      float64    `gorm:"column:commission"`
	FinalPrice      float64    `gorm:"column:final_price"`
	Status          string     `gorm:"column:status"`
	ContactName     string     `gorm:"column:contact_name"`
	ContactEmail    string     `gorm:"column:contact_email"`
	ContactPhone    string     `gorm:"column:contact_phone"`
	DriverName      *string    `gorm:"column:driver_name"`
	VehiclePlate    *string    `gorm:"column:vehicle_plate"`
	Notes           *string    `gorm:"column:notes"`
	Details         *string    `gorm:"column:details"`
	CancellationFee float64    `gorm:"column:cancellation_fee"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	r := &domain.Reservation{
		ID:              m.ID,
		Code:            m.Code,
		ServiceType:     m.ServiceType,
		HotelID:         m.HotelID,
		VehicleID:       m.VehicleID,
		Passengers:      m.Passengers,
		ScheduledAt:     m.ScheduledAt,
		VehiclePrice:    m.VehiclePrice,
		AddOnTotal:      m.AddOnTotal,
		TotalPrice:      m.TotalPrice,
		Commission:      m.Commission,
		FinalPrice:      m.FinalPrice,
		Status:          domain.ReservationStatus(m.Status),
		ContactName:     m.ContactName,
		ContactEmail:    m.ContactEmail,
		ContactPhone:    m.ContactPhone,
		CancellationFee: m.CancellationFee,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
	if m.DriverName != nil {
		r.DriverName = *m.DriverName
	}
	if m.VehiclePlate != nil {
		r.VehiclePlate = *m.VehiclePlate
	}
	if m.Notes != nil {
		r.Notes = *m.Notes
	}
	if m.Details != nil && *m.Details != "" {
		_ = json.Unmarshal([]byte(*m.Details), &r.Details)
	}
	return r
}

func toReservationModel(r *domain.Reservation) reservationModel {
	m := reservationModel{
		ID:              r.ID,
		Code:            r.Code,
		ServiceType:     r.ServiceType,
		HotelID:         r.HotelID,
		VehicleID:       r.VehicleID,
		Passengers:      r.Passengers,
		ScheduledAt:     r.ScheduledAt,
		VehiclePrice:    r.VehiclePrice,
		AddOnTotal:      r.AddOnTotal,
		TotalPrice:      r.TotalPrice,
		Commission:      r.Commission,
		FinalPrice:      r.FinalPrice,
		Status:          string(r.Status),
		ContactName:     r.ContactName,
		ContactEmail:    r.ContactEmail,
		ContactPhone:    r.ContactPhone,
		CancellationFee: r.CancellationFee,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		CancelledAt:     r.CancelledAt,
	}
	if r.DriverName != "" {
		v := r.DriverName
		m.DriverName = &v
	}
	if r.VehiclePlate != "" {
		v := r.VehiclePlate
		m.VehiclePlate = &v
	}
	if r.Notes != "" {
		v := r.Notes
		m.Notes = &v
	}
	if len(r.Details) > 0 {
		raw, err := json.Marshal(r.Details)
		if err == nil {
			s := string(raw)
			m.Details = &s
		}
	}
	return m
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus, limit, offset int) ([]domain.Reservation, error) {
	var models []reservationModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("scheduled_at").
		Limit(limit).Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Reservation, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// UpdateFields applies a partial update (quote edits, assignment, notes).
// Status is never written here; all status writes go through the CAS methods.
func (r *ReservationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	delete(fields, "status")
	fields["updated_at"] = time.Now().UTC()
	return r.db.WithContext(ctx).Model(&reservationModel{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatusCAS moves the reservation from expected to next in one guarded
// write. It returns false when the row no longer holds the expected status,
// which is how concurrent writers lose the race instead of clobbering it.
func (r *ReservationRepository) UpdateStatusCAS(ctx context.Context, id int64, expected, next domain.ReservationStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CancelCAS is UpdateStatusCAS specialised for cancellation: it also stamps
// the fee, the cancellation time and the full (already appended) notes text.
func (r *ReservationRepository) CancelCAS(ctx context.Context, id int64, expected domain.ReservationStatus, fee float64, notes string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(map[string]any{
			"status":           string(domain.StatusCancelled),
			"cancellation_fee": fee,
			"notes":            notes,
			"cancelled_at":     at,
			"updated_at":       at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
