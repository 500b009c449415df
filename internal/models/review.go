package models

import "time"

// Review statuses. Public listings only ever show approved reviews.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review represents a customer product review awaiting moderation.
type Review struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID    string    `json:"productId" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerName string    `json:"customerName" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Title        string    `json:"title" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Comment      string    `json:"comment" gorm:"type:varchar(2000)" validate:"omitempty,max=2000"`
	Status       string    `json:"status" gorm:"index;type:varchar(20);default:pending" validate:"omitempty,oneof=pending approved rejected"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
