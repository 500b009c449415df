package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRepository defines the interface for workshop service data access.
type ServiceRepository interface {
	List(params query.ListParams) ([]models.Service, int64, error)
	GetByID(id string) (*models.Service, error)
	GetBySlug(slug string) (*models.Service, error)
	Create(service *models.Service) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Service, error)
	Delete(id string) error
}

var serviceSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GORMServiceRepository is a GORM implementation of ServiceRepository.
type GORMServiceRepository struct {
	db *gorm.DB
}

// NewGORMServiceRepository creates a new instance of GORMServiceRepository.
func NewGORMServiceRepository(db *gorm.DB) *GORMServiceRepository {
	return &GORMServiceRepository{db: db}
}

// List returns a filtered page of services plus the total match count.
func (r *GORMServiceRepository) List(params query.ListParams) ([]models.Service, int64, error) {
	base := r.db.Model(&models.Service{}).
		Scopes(query.Search(params.Search, "name", "slug", "description"))
	if params.Status != "" {
		base = base.Where("is_active = ?", params.Status == "active")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	var services []models.Service
	err := base.
		Scopes(query.Sort(params, serviceSortColumns, "name"), query.Paginate(params)).
		Find(&services).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	return services, total, nil
}

// GetByID retrieves a single service by its ID.
func (r *GORMServiceRepository) GetByID(id string) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service %s: %w", id, err)
	}
	return &service, nil
}

// GetBySlug retrieves a single service by its slug.
func (r *GORMServiceRepository) GetBySlug(slug string) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("service %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service by slug %s: %w", slug, err)
	}
	return &service, nil
}

// Create inserts a new service, generating an ID when absent.
func (r *GORMServiceRepository) Create(service *models.Service) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	if err := r.db.Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a service.
func (r *GORMServiceRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Service, error) {
	service, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return service, nil
	}
	if err := r.db.Model(service).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update service %s: %w", id, err)
	}
	return service, nil
}

// Delete removes a service by its ID.
func (r *GORMServiceRepository) Delete(id string) error {
	res := r.db.Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return nil
}
