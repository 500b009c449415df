package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	List(params query.ListParams) ([]models.Review, int64, error)
	GetByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Review, error)
	Delete(id string) error
}

var reviewSortColumns = map[string]string{
	"customerName": "customer_name",
	"rating":       "rating",
	"status":       "status",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// List returns a filtered page of reviews plus the total match count.
// The public endpoint passes Status=approved explicitly: there is no
// admin-intent inference here, access level is decided by the route.
func (r *GORMReviewRepository) List(params query.ListParams) ([]models.Review, int64, error) {
	base := r.db.Model(&models.Review{}).
		Scopes(query.Search(params.Search, "customer_name", "title", "comment"))
	if params.Status != "" {
		base = base.Where("status = ?", params.Status)
	}
	if params.ProductID != "" {
		base = base.Where("product_id = ?", params.ProductID)
	}
	if params.Rating > 0 {
		base = base.Where("rating = ?", params.Rating)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := base.
		Scopes(query.Sort(params, reviewSortColumns, "created_at"), query.Paginate(params)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, total, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review %s: %w", id, err)
	}
	return &review, nil
}

// Create inserts a new review, generating an ID when absent.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a review.
func (r *GORMReviewRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Review, error) {
	review, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return review, nil
	}
	if err := r.db.Model(review).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, err)
	}
	return review, nil
}

// Delete removes a review by its ID.
func (r *GORMReviewRepository) Delete(id string) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
