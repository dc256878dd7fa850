package reservation

import "tourbook/internal/domain"

// UpdateStatusRequest is the operations-panel write. Every field is
// optional; a request with no new status is a plain quote/assignment edit.
type UpdateStatusRequest struct {
	NewStatus    *string  `json:"new_status"`
	DriverName   *string  `json:"driver_name"`
	VehiclePlate *string  `json:"vehicle_plate"`
	AdminNotes   *string  `json:"admin_notes"`
	VehiclePrice *float64 `json:"vehicle_price"`
	AddOnTotal   *float64 `json:"add_on_total"`
	TotalPrice   *float64 `json:"total_price"`
	Commission   *float64 `json:"commission"`
	FinalPrice   *float64 `json:"final_price"`
}

// HasEdits reports whether the request carries any quote or assignment
// field besides the status itself.
func (r UpdateStatusRequest) HasEdits() bool {
	return r.DriverName != nil || r.VehiclePlate != nil || r.AdminNotes != nil ||
		r.VehiclePrice != nil || r.AddOnTotal != nil || r.TotalPrice != nil ||
		r.Commission != nil || r.FinalPrice != nil
}

type CancelResult struct {
	Reservation    *domain.Reservation `json:"reservation"`
	FeeApplies     bool                `json:"fee_applies"`
	FeeAmount      float64             `json:"fee_amount"`
	HoursRemaining float64             `json:"hours_remaining"`
}
