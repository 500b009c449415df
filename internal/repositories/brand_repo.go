package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	List(params query.ListParams) ([]models.Brand, int64, error)
	GetByID(id string) (*models.Brand, error)
	GetBySlug(slug string) (*models.Brand, error)
	Create(brand *models.Brand) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Brand, error)
	Delete(id string) error
}

var brandSortColumns = map[string]string{
	"name":      "name",
	"slug":      "slug",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{db: db}
}

// List returns a filtered page of brands plus the total match count.
func (r *GORMBrandRepository) List(params query.ListParams) ([]models.Brand, int64, error) {
	base := r.db.Model(&models.Brand{}).
		Scopes(query.Search(params.Search, "name", "slug"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	var brands []models.Brand
	err := base.
		Scopes(query.Sort(params, brandSortColumns, "name"), query.Paginate(params)).
		Find(&brands).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, total, nil
}

// GetByID retrieves a single brand by its ID.
func (r *GORMBrandRepository) GetByID(id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("brand %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand %s: %w", id, err)
	}
	return &brand, nil
}

// GetBySlug retrieves a single brand by its slug.
func (r *GORMBrandRepository) GetBySlug(slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("brand %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand by slug %s: %w", slug, err)
	}
	return &brand, nil
}

// Create inserts a new brand, generating an ID when absent.
func (r *GORMBrandRepository) Create(brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	if err := r.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update: only the given fields change,
// everything else keeps its stored value.
func (r *GORMBrandRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Brand, error) {
	brand, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return brand, nil
	}
	if err := r.db.Model(brand).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand %s: %w", id, err)
	}
	return brand, nil
}

// Delete removes a brand by its ID.
func (r *GORMBrandRepository) Delete(id string) error {
	res := r.db.Delete(&models.Brand{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete brand %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand %s: %w", id, ErrNotFound)
	}
	return nil
}
