package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(params query.ListParams) ([]models.Category, int64, error)
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Category, error)
	Delete(id string) error
}

var categorySortColumns = map[string]string{
	"name":      "name",
	"slug":      "slug",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// List returns a filtered page of categories plus the total match count.
func (r *GORMCategoryRepository) List(params query.ListParams) ([]models.Category, int64, error) {
	base := r.db.Model(&models.Category{}).
		Scopes(query.Search(params.Search, "name", "slug", "description"))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	err := base.
		Scopes(query.Sort(params, categorySortColumns, "name"), query.Paginate(params)).
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return &category, nil
}

// GetBySlug retrieves a single category by its slug.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// Create inserts a new category, generating an ID when absent.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a category.
func (r *GORMCategoryRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Category, error) {
	category, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return category, nil
	}
	if err := r.db.Model(category).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return category, nil
}

// Delete removes a category by its ID.
func (r *GORMCategoryRepository) Delete(id string) error {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}
