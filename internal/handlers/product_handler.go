package handlers

import (
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for tire products.
type ProductHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/slug/:slug", h.HandleGetProductBySlug)
	products.Get("/:id", h.HandleGetProduct)
}

// RegisterAdminRoutes registers the privileged product CRUD routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns a filtered, paginated product listing. Brand,
// category and status filters combine with AND; search matches name, slug,
// description and size.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	products, total, err := h.catalog.ListProducts(params)
	if err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondList(c, products, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetProduct returns a single product by ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleGetProductBySlug returns a single product by slug.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySlug(c.Params("slug"))
	if err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(product); err != nil {
		return respondValidation(c, err)
	}
	if err := h.catalog.CreateProduct(&product); err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondData(c, fiber.StatusCreated, product)
}

type productUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=150"`
	Slug        *string  `json:"slug" validate:"omitempty,max=170"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	BrandID     *string  `json:"brandId" validate:"omitempty,uuid"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	Size        *string  `json:"size" validate:"omitempty,max=30"`
	Season      *string  `json:"season" validate:"omitempty,oneof=summer winter all-season"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// HandleUpdateProduct applies a partial update: absent fields keep their
// stored values.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req productUpdateRequest
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
	if req.BrandID != nil {
		fields["brand_id"] = *req.BrandID
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.Size != nil {
		fields["size"] = *req.Size
	}
	if req.Season != nil {
		fields["season"] = *req.Season
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	product, err := h.catalog.UpdateProduct(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Params("id")); err != nil {
		return respondStorageError(c, "Product", err)
	}
	return respondMessage(c, "Product deleted successfully")
}
