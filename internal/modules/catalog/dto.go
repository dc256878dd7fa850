package catalog

// VehicleOption is a vehicle the booking form can offer for a passenger
// count. Pre-filtering here keeps capacity rules out of the frontend.
type VehicleOption struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CapacityMin int    `json:"capacity_min"`
	CapacityMax int    `json:"capacity_max"`
}
