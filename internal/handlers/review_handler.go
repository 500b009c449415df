package handlers

import (
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews. Public and admin
// access levels are separate routes: the public listing always pins the
// status filter to approved, the admin listing under the gate sees
// everything. No request shape is ever inspected to infer admin intent.
type ReviewHandler struct {
	reviews  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews:  reviews,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/reviews", h.HandleListApprovedReviews)
	router.Post("/reviews", h.HandleSubmitReview)
}

// RegisterAdminRoutes registers the privileged moderation routes.
func (h *ReviewHandler) RegisterAdminRoutes(router fiber.Router) {
	reviews := router.Group("/reviews")
	reviews.Get("/", h.HandleListReviews)
	reviews.Get("/:id", h.HandleGetReview)
	reviews.Put("/:id", h.HandleUpdateReview)
	reviews.Delete("/:id", h.HandleDeleteReview)
}

// HandleListApprovedReviews is the public listing, restricted to approved
// reviews whatever status the query string asked for.
func (h *ReviewHandler) HandleListApprovedReviews(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	reviews, total, err := h.reviews.ListApprovedReviews(params)
	if err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondList(c, reviews, query.NewPagination(params.Page, params.Limit, total))
}

// HandleListReviews is the admin listing with full status filtering.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	reviews, total, err := h.reviews.ListReviews(params)
	if err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondList(c, reviews, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetReview returns a single review by ID.
func (h *ReviewHandler) HandleGetReview(c *fiber.Ctx) error {
	review, err := h.reviews.GetReviewByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondData(c, fiber.StatusOK, review)
}

// HandleSubmitReview creates a customer review; it lands in pending until
// moderated.
func (h *ReviewHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing review request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(review); err != nil {
		return respondValidation(c, err)
	}
	if err := h.reviews.SubmitReview(&review); err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondData(c, fiber.StatusCreated, review)
}

type reviewUpdateRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title" validate:"omitempty,max=150"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
	Status  *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// HandleUpdateReview applies a partial update; moderation sets status here.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var req reviewUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	review, err := h.reviews.UpdateReview(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondData(c, fiber.StatusOK, review)
}

// HandleDeleteReview removes a review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.reviews.DeleteReview(c.Params("id")); err != nil {
		return respondStorageError(c, "Review", err)
	}
	return respondMessage(c, "Review deleted successfully")
}
