package handlers

import (
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// QuoteHandler handles HTTP requests for quote requests.
type QuoteHandler struct {
	quotes   *services.QuoteService
	validate *validator.Validate
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quotes:   quotes,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public quote request route.
func (h *QuoteHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/quotes", h.HandleRequestQuote)
}

// RegisterAdminRoutes registers the privileged quote routes.
func (h *QuoteHandler) RegisterAdminRoutes(router fiber.Router) {
	quotes := router.Group("/quotes")
	quotes.Get("/", h.HandleListQuotes)
	quotes.Get("/:id", h.HandleGetQuote)
	quotes.Post("/", h.HandleRequestQuote)
	quotes.Put("/:id", h.HandleUpdateQuote)
	quotes.Delete("/:id", h.HandleDeleteQuote)
}

// HandleListQuotes returns a filtered, paginated quote listing.
func (h *QuoteHandler) HandleListQuotes(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	quotes, total, err := h.quotes.ListQuotes(params)
	if err != nil {
		return respondStorageError(c, "Quote", err)
	}
	return respondList(c, quotes, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetQuote returns a single quote with its items.
func (h *QuoteHandler) HandleGetQuote(c *fiber.Ctx) error {
	quote, err := h.quotes.GetQuoteByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Quote", err)
	}
	return respondData(c, fiber.StatusOK, quote)
}

// HandleRequestQuote creates a quote. Customer name, email and at least one
// item are required; totals are computed server-side.
func (h *QuoteHandler) HandleRequestQuote(c *fiber.Ctx) error {
	var quote models.Quote
	if err := c.BodyParser(&quote); err != nil {
		log.Printf("Error parsing quote request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(quote); err != nil {
		return respondValidation(c, err)
	}
	if err := h.quotes.RequestQuote(&quote); err != nil {
		return respondStorageError(c, "Quote", err)
	}
	return respondData(c, fiber.StatusCreated, quote)
}

type quoteUpdateRequest struct {
	CustomerName  *string `json:"customerName" validate:"omitempty,min=2,max=150"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone *string `json:"customerPhone" validate:"omitempty,max=30"`
	Status        *string `json:"status" validate:"omitempty,oneof=pending sent accepted rejected"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

// HandleUpdateQuote applies a partial update. Items and totals are fixed at
// creation time; only the customer and workflow fields can change.
func (h *QuoteHandler) HandleUpdateQuote(c *fiber.Ctx) error {
	var req quoteUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.CustomerName != nil {
		fields["customer_name"] = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		fields["customer_email"] = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		fields["customer_phone"] = *req.CustomerPhone
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	quote, err := h.quotes.UpdateQuote(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Quote", err)
	}
	return respondData(c, fiber.StatusOK, quote)
}

// HandleDeleteQuote removes a quote and its items.
func (h *QuoteHandler) HandleDeleteQuote(c *fiber.Ctx) error {
	if err := h.quotes.DeleteQuote(c.Params("id")); err != nil {
		return respondStorageError(c, "Quote", err)
	}
	return respondMessage(c, "Quote deleted successfully")
}
