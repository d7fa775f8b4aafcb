package enums

import "fmt"

// SupplierOrderStatus tracks a purchase order through its lifecycle.
type SupplierOrderStatus string

const (
	SupplierOrderStatusPending   SupplierOrderStatus = "PENDING"
	SupplierOrderStatusSent      SupplierOrderStatus = "SENT"
	SupplierOrderStatusReceived  SupplierOrderStatus = "RECEIVED"
	SupplierOrderStatusCancelled SupplierOrderStatus = "CANCELLED"
)

var validSupplierOrderStatuses = []SupplierOrderStatus{
	SupplierOrderStatusPending,
	SupplierOrderStatusSent,
	SupplierOrderStatusReceived,
	SupplierOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s SupplierOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SupplierOrderStatus.
func (s SupplierOrderStatus) IsValid() bool {
	for _, candidate := range validSupplierOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsEditable reports whether lines may still be added or changed.
func (s SupplierOrderStatus) IsEditable() bool {
	return s == SupplierOrderStatusPending
}

// ParseSupplierOrderStatus converts raw input into a SupplierOrderStatus.
func ParseSupplierOrderStatus(value string) (SupplierOrderStatus, error) {
	for _, candidate := range validSupplierOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supplier order status %q", value)
}
