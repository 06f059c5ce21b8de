package domain

import "time"

// VehicleType classifies a vehicle for pricing purposes
type VehicleType string

const (
	VehicleSedan      VehicleType = "sedan"
	VehicleSUV        VehicleType = "suv"
	VehicleHatchback  VehicleType = "hatchback"
	VehicleVan        VehicleType = "van"
	VehiclePickup     VehicleType = "pickup"
	VehicleMotorcycle VehicleType = "motorcycle"
)

// IsValid returns true if t is one of the known vehicle types
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleSedan, VehicleSUV, VehicleHatchback,
		VehicleVan, VehiclePickup, VehicleMotorcycle:
		return true
	default:
		return false
	}
}

// Vehicle belongs to a customer; one vehicle cannot be in two places at once,
// which is enforced by the creation pipeline across all centers
type Vehicle struct {
	ID           int64
	CustomerID   int64
	Type         VehicleType
	Make         string
	Model        string
	LicensePlate string

	CreatedAt time.Time
	UpdatedAt time.Time
}
