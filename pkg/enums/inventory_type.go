package enums

import "fmt"

// InventoryType marks whether an inventory item is stocked for sale or rental.
type InventoryType string

const (
	InventoryTypeSell InventoryType = "Sell"
	InventoryTypeRent InventoryType = "Rent"
)

var validInventoryTypes = []InventoryType{
	InventoryTypeSell,
	InventoryTypeRent,
}

// String implements fmt.Stringer.
func (i InventoryType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InventoryType.
func (i InventoryType) IsValid() bool {
	for _, candidate := range validInventoryTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInventoryType converts raw input into an InventoryType.
func ParseInventoryType(value string) (InventoryType, error) {
	for _, candidate := range validInventoryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory type %q", value)
}
