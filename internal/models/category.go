package models

import "time"

// Category represents a catalog category (e.g. summer tires, winter tires, rims).
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,max=120"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
