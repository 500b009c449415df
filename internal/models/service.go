package models

import "time"

// Service represents a bookable workshop service (mounting, balancing, oil change...).
type Service struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Slug            string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,max=120"`
	Description     string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price           float64   `json:"price" validate:"gte=0"`
	DurationMinutes int       `json:"durationMinutes" validate:"gte=0"`
	IsActive        bool      `json:"isActive" gorm:"default:true"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
