package models

import "time"

// Quote statuses.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// Quote represents a customer price quote request with its line items.
// Totals are computed server-side: taxAmount is VAT over subtotal minus
// discount, totalAmount = subtotal - discount + tax.
type Quote struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	QuoteNumber    string      `json:"quoteNumber" gorm:"uniqueIndex;type:varchar(30)"`
	CustomerName   string      `json:"customerName" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	CustomerEmail  string      `json:"customerEmail" gorm:"type:varchar(255)" validate:"required,email"`
	CustomerPhone  string      `json:"customerPhone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	Items          []QuoteItem `json:"items" validate:"required,min=1,dive"`
	Subtotal       float64     `json:"subtotal"`
	DiscountAmount float64     `json:"discountAmount" validate:"gte=0"`
	TaxAmount      float64     `json:"taxAmount"`
	TotalAmount    float64     `json:"totalAmount"`
	Status         string      `json:"status" gorm:"index;type:varchar(20);default:pending" validate:"omitempty,oneof=pending sent accepted rejected"`
	Notes          string      `json:"notes" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// QuoteItem represents a single line on a quote.
type QuoteItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	QuoteID   string  `json:"quoteId" gorm:"index;type:varchar(36)"`
	Name      string  `json:"name" gorm:"type:varchar(150)" validate:"required,max=150"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"required,gte=0"`
	LineTotal float64 `json:"lineTotal"`
}
