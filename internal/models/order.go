package models

import "time"

// Order statuses. Checkout moves an order from pending to paid after the
// simulated payment step; there is no real payment gateway.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order represents a checkout order with its line items.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OrderNumber   string      `json:"orderNumber" gorm:"uniqueIndex;type:varchar(30)"`
	CustomerName  string      `json:"customerName" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	CustomerEmail string      `json:"customerEmail" gorm:"type:varchar(255)" validate:"required,email"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64     `json:"subtotal"`
	TaxAmount     float64     `json:"taxAmount"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        string      `json:"status" gorm:"index;type:varchar(20);default:pending" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OrderItem represents a single product line on an order.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"orderId" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"index;type:varchar(36)" validate:"required"`
	Name      string  `json:"name" gorm:"type:varchar(150)"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice"` // Price at the time of checkout
	LineTotal float64 `json:"lineTotal"`
}
