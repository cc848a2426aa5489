package enums

import "fmt"

// OrderStatus tracks the order lifecycle. Cancellation is a status value, not
// a row removal.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "ORDER_PENDING"
	OrderStatusInProgress OrderStatus = "ORDER_INPROGRESS"
	OrderStatusCompleted  OrderStatus = "ORDER_COMPLETED"
	OrderStatusCancelled  OrderStatus = "ORDER_CANCELLED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the order lifecycle.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusCompleted || o == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
