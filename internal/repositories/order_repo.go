package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	List(params query.ListParams) ([]models.Order, int64, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Order, error)
}

var orderSortColumns = map[string]string{
	"orderNumber":  "order_number",
	"customerName": "customer_name",
	"totalAmount":  "total_amount",
	"status":       "status",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// List returns a filtered page of orders plus the total match count.
func (r *GORMOrderRepository) List(params query.ListParams) ([]models.Order, int64, error) {
	base := r.db.Model(&models.Order{}).
		Scopes(query.Search(params.Search, "customer_name", "customer_email", "order_number"))
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
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := base.
		Preload("Items").
		Scopes(query.Sort(params, orderSortColumns, "created_at"), query.Paginate(params)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// Create inserts an order together with its items in one transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			order.Items = items
			return err
		}
		order.Items = items
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to an order (items are not touched).
func (r *GORMOrderRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return order, nil
	}
	if err := r.db.Model(order).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return order, nil
}
