package sales

import "github.com/shopspring/decimal"

// CartLine is one requested product and quantity.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// CheckoutInput is a cart submitted by an authenticated user.
type CheckoutInput struct {
	UserID   int64
	ClientID *int64
	Cart     []CartLine
}

// CheckoutResult describes the committed sale.
type CheckoutResult struct {
	SaleID  int64
	Total   decimal.Decimal
	Units   int
	Message string
}
