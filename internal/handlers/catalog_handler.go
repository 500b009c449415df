package handlers

import (
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for brands and categories.
type CatalogHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public read-only catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/brands", h.HandleListBrands)
	router.Get("/brands/slug/:slug", h.HandleGetBrandBySlug)
	router.Get("/brands/:id", h.HandleGetBrand)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/categories/slug/:slug", h.HandleGetCategoryBySlug)
	router.Get("/categories/:id", h.HandleGetCategory)
}

// RegisterAdminRoutes registers the privileged CRUD routes. The admin gate
// is applied on the group by the caller.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	brands := router.Group("/brands")
	brands.Get("/", h.HandleListBrands)
	brands.Post("/", h.HandleCreateBrand)
	brands.Put("/:id", h.HandleUpdateBrand)
	brands.Delete("/:id", h.HandleDeleteBrand)

	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.HandleCreateCategory)
	categories.Put("/:id", h.HandleUpdateCategory)
	categories.Delete("/:id", h.HandleDeleteCategory)
}

// --- Brands ---

// HandleListBrands returns a filtered, paginated brand listing.
func (h *CatalogHandler) HandleListBrands(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	brands, total, err := h.catalog.ListBrands(params)
	if err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondList(c, brands, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetBrand returns a single brand by ID.
func (h *CatalogHandler) HandleGetBrand(c *fiber.Ctx) error {
	brand, err := h.catalog.GetBrandByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondData(c, fiber.StatusOK, brand)
}

// HandleGetBrandBySlug returns a single brand by slug, for storefront
// brand pages.
func (h *CatalogHandler) HandleGetBrandBySlug(c *fiber.Ctx) error {
	brand, err := h.catalog.GetBrandBySlug(c.Params("slug"))
	if err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondData(c, fiber.StatusOK, brand)
}

// HandleCreateBrand creates a brand. Name and slug are required.
func (h *CatalogHandler) HandleCreateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		log.Printf("Error parsing brand request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(brand); err != nil {
		return respondValidation(c, err)
	}
	if err := h.catalog.CreateBrand(&brand); err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondData(c, fiber.StatusCreated, brand)
}

type brandUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug     *string `json:"slug" validate:"omitempty,max=120"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,url"`
	IsActive *bool   `json:"isActive"`
}

// HandleUpdateBrand applies a partial update: only fields present in the
// body change.
func (h *CatalogHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	var req brandUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.LogoURL != nil {
		fields["logo_url"] = *req.LogoURL
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	brand, err := h.catalog.UpdateBrand(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondData(c, fiber.StatusOK, brand)
}

// HandleDeleteBrand removes a brand.
func (h *CatalogHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	if err := h.catalog.DeleteBrand(c.Params("id")); err != nil {
		return respondStorageError(c, "Brand", err)
	}
	return respondMessage(c, "Brand deleted successfully")
}

// --- Categories ---

// HandleListCategories returns a filtered, paginated category listing.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	categories, total, err := h.catalog.ListCategories(params)
	if err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondList(c, categories, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetCategory returns a single category by ID.
func (h *CatalogHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondData(c, fiber.StatusOK, category)
}

// HandleGetCategoryBySlug returns a single category by slug.
func (h *CatalogHandler) HandleGetCategoryBySlug(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategoryBySlug(c.Params("slug"))
	if err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondData(c, fiber.StatusOK, category)
}

// HandleCreateCategory creates a category. Name and slug are required.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(category); err != nil {
		return respondValidation(c, err)
	}
	if err := h.catalog.CreateCategory(&category); err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondData(c, fiber.StatusCreated, category)
}

type categoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

// HandleUpdateCategory applies a partial update to a category.
func (h *CatalogHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req categoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	category, err := h.catalog.UpdateCategory(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondData(c, fiber.StatusOK, category)
}

// HandleDeleteCategory removes a category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Params("id")); err != nil {
		return respondStorageError(c, "Category", err)
	}
	return respondMessage(c, "Category deleted successfully")
}
