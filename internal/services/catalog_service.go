package services

import (
	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/repositories"
)

// CatalogService handles business logic for the catalog entities: brands,
// categories, products and workshop services. The CRUD shape is identical
// for all four, so they share one service.
type CatalogService struct {
	brandRepo    repositories.BrandRepository
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	serviceRepo  repositories.ServiceRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	brandRepo repositories.BrandRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	serviceRepo repositories.ServiceRepository,
) *CatalogService {
	return &CatalogService{
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
	}
}

// --- Brands ---

func (s *CatalogService) ListBrands(params query.ListParams) ([]models.Brand, int64, error) {
	return s.brandRepo.List(params)
}

func (s *CatalogService) GetBrandByID(id string) (*models.Brand, error) {
	return s.brandRepo.GetByID(id)
}

func (s *CatalogService) GetBrandBySlug(slug string) (*models.Brand, error) {
	return s.brandRepo.GetBySlug(slug)
}

func (s *CatalogService) CreateBrand(brand *models.Brand) error {
	brand.IsActive = true
	return s.brandRepo.Create(brand)
}

func (s *CatalogService) UpdateBrand(id string, fields map[string]interface{}) (*models.Brand, error) {
	return s.brandRepo.UpdateFields(id, fields)
}

func (s *CatalogService) DeleteBrand(id string) error {
	return s.brandRepo.Delete(id)
}

// --- Categories ---

func (s *CatalogService) ListCategories(params query.ListParams) ([]models.Category, int64, error) {
	return s.categoryRepo.List(params)
}

func (s *CatalogService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(slug)
}

func (s *CatalogService) CreateCategory(category *models.Category) error {
	category.IsActive = true
	return s.categoryRepo.Create(category)
}

func (s *CatalogService) UpdateCategory(id string, fields map[string]interface{}) (*models.Category, error) {
	return s.categoryRepo.UpdateFields(id, fields)
}

func (s *CatalogService) DeleteCategory(id string) error {
	return s.categoryRepo.Delete(id)
}

// --- Products ---

func (s *CatalogService) ListProducts(params query.ListParams) ([]models.Product, int64, error) {
	return s.productRepo.List(params)
}

func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	return s.productRepo.GetBySlug(slug)
}

func (s *CatalogService) CreateProduct(product *models.Product) error {
	product.IsActive = true
	return s.productRepo.Create(product)
}

func (s *CatalogService) UpdateProduct(id string, fields map[string]interface{}) (*models.Product, error) {
	return s.productRepo.UpdateFields(id, fields)
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// --- Workshop services ---

func (s *CatalogService) ListServices(params query.ListParams) ([]models.Service, int64, error) {
	return s.serviceRepo.List(params)
}

func (s *CatalogService) GetServiceByID(id string) (*models.Service, error) {
	return s.serviceRepo.GetByID(id)
}

func (s *CatalogService) GetServiceBySlug(slug string) (*models.Service, error) {
	return s.serviceRepo.GetBySlug(slug)
}

func (s *CatalogService) CreateService(service *models.Service) error {
	service.IsActive = true
	return s.serviceRepo.Create(service)
}

func (s *CatalogService) UpdateService(id string, fields map[string]interface{}) (*models.Service, error) {
	return s.serviceRepo.UpdateFields(id, fields)
}

func (s *CatalogService) DeleteService(id string) error {
	return s.serviceRepo.Delete(id)
}
