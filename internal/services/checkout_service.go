package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/repositories"
	"tireshop/pkg/rabbitmq"
)

// CheckoutService turns a cart into an order. Payment is simulated with a
// short processing delay; there is no real payment gateway behind it.
type CheckoutService struct {
	orderRepo       repositories.OrderRepository
	productRepo     repositories.ProductRepository
	publisher       EventPublisher
	vatRate         float64
	processingDelay time.Duration
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	publisher EventPublisher,
	vatRate float64,
	processingDelay time.Duration,
) *CheckoutService {
	if vatRate <= 0 {
		vatRate = DefaultVATRate
	}
	return &CheckoutService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		publisher:       publisher,
		vatRate:         vatRate,
		processingDelay: processingDelay,
	}
}

// ListOrders retrieves a filtered page of orders.
func (s *CheckoutService) ListOrders(params query.ListParams) ([]models.Order, int64, error) {
	return s.orderRepo.List(params)
}

// GetOrderByID retrieves a single order with its items.
func (s *CheckoutService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder prices the cart against the current catalog, creates the order,
// runs the simulated payment step and marks it paid. Stock is decremented
// last-write-wins; concurrent checkouts of the same product are not
// coordinated.
func (s *CheckoutService) PlaceOrder(order *models.Order) error {
	var subtotal float64
	for i := range order.Items {
		item := &order.Items[i]
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, item.Quantity, product.Stock)
		}
		item.Name = product.Name
		item.UnitPrice = product.Price // Price at the time of checkout
		item.LineTotal = roundCents(float64(item.Quantity) * product.Price)
		subtotal += item.LineTotal
	}

	order.Subtotal = roundCents(subtotal)
	order.TaxAmount = roundCents(order.Subtotal * s.vatRate)
	order.TotalAmount = roundCents(order.Subtotal + order.TaxAmount)
	order.OrderNumber = GenerateNumber("ORD", time.Now())
	order.Status = models.OrderStatusPending

	if err := s.orderRepo.Create(order); err != nil {
		return err
	}

	// Simulated payment step.
	time.Sleep(s.processingDelay)

	paid, err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"status": models.OrderStatusPaid,
	})
	if err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", order.ID, err)
	}
	order.Status = paid.Status

	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			log.Printf("Warning: could not reload product %s for stock update: %v", item.ProductID, err)
			continue
		}
		_, err = s.productRepo.UpdateFields(item.ProductID, map[string]interface{}{
			"stock": product.Stock - item.Quantity,
		})
		if err != nil {
			log.Printf("Warning: could not update stock for product %s: %v", item.ProductID, err)
		}
	}

	s.publishOrderPlaced(order)
	return nil
}

// UpdateOrder applies a partial update (fulfillment status changes).
func (s *CheckoutService) UpdateOrder(id string, fields map[string]interface{}) (*models.Order, error) {
	return s.orderRepo.UpdateFields(id, fields)
}

func (s *CheckoutService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderId":       order.ID,
		"orderNumber":   order.OrderNumber,
		"customerEmail": order.CustomerEmail,
		"totalAmount":   order.TotalAmount,
		"status":        order.Status,
	})
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.EventOrderPlaced, body); err != nil {
		log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
	}
}
