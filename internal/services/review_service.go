package services

import (
	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/repositories"
)

// ReviewService handles business logic for product reviews and moderation.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// ListReviews retrieves a filtered page of reviews. Admin listings pass the
// caller's status filter through; the public handler pins it to approved.
func (s *ReviewService) ListReviews(params query.ListParams) ([]models.Review, int64, error) {
	return s.reviewRepo.List(params)
}

// ListApprovedReviews is the public listing: the status filter is forced to
// approved regardless of what the request asked for.
func (s *ReviewService) ListApprovedReviews(params query.ListParams) ([]models.Review, int64, error) {
	params.Status = models.ReviewStatusApproved
	return s.reviewRepo.List(params)
}

// GetReviewByID retrieves a single review.
func (s *ReviewService) GetReviewByID(id string) (*models.Review, error) {
	return s.reviewRepo.GetByID(id)
}

// SubmitReview creates a customer review. New reviews always land in
// pending, whatever status the request carried.
func (s *ReviewService) SubmitReview(review *models.Review) error {
	review.Status = models.ReviewStatusPending
	return s.reviewRepo.Create(review)
}

// UpdateReview applies a partial update (moderation changes status here).
func (s *ReviewService) UpdateReview(id string, fields map[string]interface{}) (*models.Review, error) {
	return s.reviewRepo.UpdateFields(id, fields)
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(id string) error {
	return s.reviewRepo.Delete(id)
}
