package handlers

import (
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ServiceHandler handles HTTP requests for workshop services.
type ServiceHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalog *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public read-only service routes.
func (h *ServiceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/services", h.HandleListServices)
	router.Get("/services/slug/:slug", h.HandleGetServiceBySlug)
	router.Get("/services/:id", h.HandleGetService)
}

// RegisterAdminRoutes registers the privileged service CRUD routes.
func (h *ServiceHandler) RegisterAdminRoutes(router fiber.Router) {
	svc := router.Group("/services")
	svc.Get("/", h.HandleListServices)
	svc.Get("/:id", h.HandleGetService)
	svc.Post("/", h.HandleCreateService)
	svc.Put("/:id", h.HandleUpdateService)
	svc.Delete("/:id", h.HandleDeleteService)
}

// HandleListServices returns a filtered, paginated service listing.
func (h *ServiceHandler) HandleListServices(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	list, total, err := h.catalog.ListServices(params)
	if err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondList(c, list, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetService returns a single service by ID.
func (h *ServiceHandler) HandleGetService(c *fiber.Ctx) error {
	service, err := h.catalog.GetServiceByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondData(c, fiber.StatusOK, service)
}

// HandleGetServiceBySlug returns a single service by slug.
func (h *ServiceHandler) HandleGetServiceBySlug(c *fiber.Ctx) error {
	service, err := h.catalog.GetServiceBySlug(c.Params("slug"))
	if err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondData(c, fiber.StatusOK, service)
}

// HandleCreateService creates a service. Name and slug are required.
func (h *ServiceHandler) HandleCreateService(c *fiber.Ctx) error {
	var service models.Service
	if err := c.BodyParser(&service); err != nil {
		log.Printf("Error parsing service request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(service); err != nil {
		return respondValidation(c, err)
	}
	if err := h.catalog.CreateService(&service); err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondData(c, fiber.StatusCreated, service)
}

type serviceUpdateRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Slug            *string  `json:"slug" validate:"omitempty,max=120"`
	Description     *string  `json:"description" validate:"omitempty,max=500"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes" validate:"omitempty,gte=0"`
	IsActive        *bool    `json:"isActive"`
}

// HandleUpdateService applies a partial update to a service.
func (h *ServiceHandler) HandleUpdateService(c *fiber.Ctx) error {
	var req serviceUpdateRequest
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
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.DurationMinutes != nil {
		fields["duration_minutes"] = *req.DurationMinutes
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	service, err := h.catalog.UpdateService(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondData(c, fiber.StatusOK, service)
}

// HandleDeleteService removes a service.
func (h *ServiceHandler) HandleDeleteService(c *fiber.Ctx) error {
	if err := h.catalog.DeleteService(c.Params("id")); err != nil {
		return respondStorageError(c, "Service", err)
	}
	return respondMessage(c, "Service deleted successfully")
}
