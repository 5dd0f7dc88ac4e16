package domain

import "errors"

// OrderLine is a requested quantity of a SKU for one order. It is a value:
// two lines with the same fields are the same line.
type OrderLine struct {
	OrderID  string
	SKU      string
	Quantity int
}

var (
	ErrOrderIDRequired  = errors.New("orderId is required")
	ErrSKURequired      = errors.New("sku is required")
	ErrQuantityPositive = errors.New("quantity must be a positive integer")
)

func NewOrderLine(orderID, sku string, quantity int) OrderLine {
	return OrderLine{
		OrderID:  orderID,
		SKU:      sku,
		Quantity: quantity,
	}
}

// Validate reports the first field that makes the line unusable. Batch methods
// never call it.
func (l OrderLine) Validate() error {
	if l.OrderID == "" {
		return ErrOrderIDRequired
	}
	if l.SKU == "" {
		return ErrSKURequired
	}
	if l.Quantity <= 0 {
		return ErrQuantityPositive
	}
	return nil
}
