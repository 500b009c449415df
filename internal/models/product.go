package models

import "time"

// Product seasons for tire products.
const (
	SeasonSummer    = "summer"
	SeasonWinter    = "winter"
	SeasonAllSeason = "all-season"
)

// Product represents a tire product in the catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;type:varchar(170)" validate:"required,max=170"`
	Description string    `json:"description" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	BrandID     string    `json:"brandId" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID  string    `json:"categoryId" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	Size        string    `json:"size" gorm:"type:varchar(30)" validate:"omitempty,max=30"` // e.g. 205/55R16
	Season      string    `json:"season" gorm:"type:varchar(20)" validate:"omitempty,oneof=summer winter all-season"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
