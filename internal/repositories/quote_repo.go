package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteRepository defines the interface for quote data access.
type QuoteRepository interface {
	List(params query.ListParams) ([]models.Quote, int64, error)
	GetByID(id string) (*models.Quote, error)
	Create(quote *models.Quote) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Quote, error)
	Delete(id string) error
}

var quoteSortColumns = map[string]string{
	"quoteNumber":  "quote_number",
	"customerName": "customer_name",
	"totalAmount":  "total_amount",
	"status":       "status",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// GORMQuoteRepository is a GORM implementation of QuoteRepository.
type GORMQuoteRepository struct {
	db *gorm.DB
}

// NewGORMQuoteRepository creates a new instance of GORMQuoteRepository.
func NewGORMQuoteRepository(db *gorm.DB) *GORMQuoteRepository {
	return &GORMQuoteRepository{db: db}
}

// List returns a filtered page of quotes plus the total match count.
// Items are loaded alongside each quote.
func (r *GORMQuoteRepository) List(params query.ListParams) ([]models.Quote, int64, error) {
	base := r.db.Model(&models.Quote{}).
		Scopes(query.Search(params.Search, "customer_name", "customer_email", "quote_number"))
	if params.Status != "" {
		base = base.Where("status = ?", params.Status)
	}
	if params.DateFrom != nil {
		base = base.Where("created_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		base = base.Where("created_at <= ?", *params.DateTo)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	var quotes []models.Quote
	err := base.
		Preload("Items").
		Scopes(query.Sort(params, quoteSortColumns, "created_at"), query.Paginate(params)).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, total, nil
}

// GetByID retrieves a single quote with its items.
func (r *GORMQuoteRepository) GetByID(id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.Preload("Items").First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quote %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quote %s: %w", id, err)
	}
	return &quote, nil
}

// Create inserts a quote together with its items in one transaction, so a
// failed item insert rolls the parent back instead of leaving an empty quote.
func (r *GORMQuoteRepository) Create(quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	for i := range quote.Items {
		if quote.Items[i].ID == "" {
			quote.Items[i].ID = uuid.New().String()
		}
		quote.Items[i].QuoteID = quote.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		items := quote.Items
		quote.Items = nil
		if err := tx.Create(quote).Error; err != nil {
			quote.Items = items
			return err
		}
		quote.Items = items
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to a quote (items are not touched).
func (r *GORMQuoteRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Quote, error) {
	quote, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return quote, nil
	}
	if err := r.db.Model(quote).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update quote %s: %w", id, err)
	}
	return quote, nil
}

// Delete removes a quote and its items in one transaction.
func (r *GORMQuoteRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Quote{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quote %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("quote %s: %w", id, ErrNotFound)
		}
		if err := tx.Delete(&models.QuoteItem{}, "quote_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete quote items for %s: %w", id, err)
		}
		return nil
	})
}
