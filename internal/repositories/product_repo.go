package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(params query.ListParams) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Create(product *models.Product) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Product, error)
	Delete(id string) error
}

var productSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// List returns a filtered page of products plus the total match count.
// Brand, category and status filters AND together; search ORs across the
// text columns.
func (r *GORMProductRepository) List(params query.ListParams) ([]models.Product, int64, error) {
	base := r.db.Model(&models.Product{}).
		Scopes(query.Search(params.Search, "name", "slug", "description", "size"))
	if params.BrandID != "" {
		base = base.Where("brand_id = ?", params.BrandID)
	}
	if params.CategoryID != "" {
		base = base.Where("category_id = ?", params.CategoryID)
	}
	if params.Status != "" {
		base = base.Where("is_active = ?", params.Status == "active")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := base.
		Scopes(query.Sort(params, productSortColumns, "created_at"), query.Paginate(params)).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// Create inserts a new product, generating an ID when absent.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a product.
func (r *GORMProductRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return product, nil
	}
	if err := r.db.Model(product).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return product, nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}
