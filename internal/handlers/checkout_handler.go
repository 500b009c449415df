package handlers

import (
	"log"
	"strings"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the public checkout and the admin order screens.
type CheckoutHandler struct {
	checkout *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public checkout route.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// RegisterAdminRoutes registers the privileged order routes. Orders are
// never deleted, only moved through their status lifecycle.
func (h *CheckoutHandler) RegisterAdminRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Get("/", h.HandleListOrders)
	orders.Get("/:id", h.HandleGetOrder)
	orders.Put("/:id", h.HandleUpdateOrder)
}

// HandleCheckout turns a cart into an order. The simulated payment step runs
// inline, so the response already carries the paid status.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(order); err != nil {
		return respondValidation(c, err)
	}

	if err := h.checkout.PlaceOrder(&order); err != nil {
		if strings.Contains(err.Error(), "insufficient stock") {
			return respondError(c, fiber.StatusBadRequest, "Checkout failed due to insufficient stock", err)
		}
		return respondStorageError(c, "Order", err)
	}
	return respondData(c, fiber.StatusCreated, order)
}

// HandleListOrders returns a filtered, paginated order listing.
func (h *CheckoutHandler) HandleListOrders(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	orders, total, err := h.checkout.ListOrders(params)
	if err != nil {
		return respondStorageError(c, "Order", err)
	}
	return respondList(c, orders, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetOrder returns a single order with its items.
func (h *CheckoutHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.checkout.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Order", err)
	}
	return respondData(c, fiber.StatusOK, order)
}

type orderUpdateRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
}

// HandleUpdateOrder applies a partial update to an order's fulfillment
// status.
func (h *CheckoutHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req orderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	order, err := h.checkout.UpdateOrder(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Order", err)
	}
	return respondData(c, fiber.StatusOK, order)
}
