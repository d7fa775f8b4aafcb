package enums

import "fmt"

// UserRole is the application-level role carried in access tokens.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleWarehouse UserRole = "warehouse"
	UserRoleSales     UserRole = "sales"
	UserRoleViewer    UserRole = "viewer"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleWarehouse,
	UserRoleSales,
	UserRoleViewer,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanManageSupplierOrders reports whether the role may edit purchase order lines.
func (r UserRole) CanManageSupplierOrders() bool {
	return r == UserRoleAdmin || r == UserRoleWarehouse
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
