package enums

import "fmt"

// OrderStatus tracks fulfillment state. Transitions are driven by the
// fulfillment collaborator, not by this service; orders are created pending.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether the status is one of the known states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// UserRole distinguishes shoppers from the provisioned admin account.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Theme is the visitor-selected storefront theme.
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeGradient Theme = "gradient"
)

// ParseTheme validates a raw theme value against the closed set.
func ParseTheme(value string) (Theme, error) {
	switch Theme(value) {
	case ThemeLight, ThemeDark, ThemeGradient:
		return Theme(value), nil
	}
	return "", fmt.Errorf("unknown theme %q", value)
}
