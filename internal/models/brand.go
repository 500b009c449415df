package models

import "time"

// Brand represents a tire manufacturer shown in the catalog.
type Brand struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,max=120"`
	LogoURL   string    `json:"logoUrl" gorm:"type:varchar(500)" validate:"omitempty,url"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
