package services

import (
	"encoding/json"
	"log"
	"math"
	"time"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/repositories"
	"tireshop/pkg/rabbitmq"
)

// DefaultVATRate is the Dutch VAT rate applied to quotes and orders.
const DefaultVATRate = 0.21

// QuoteService handles business logic for quote requests, including the
// server-side totals computation.
type QuoteService struct {
	quoteRepo repositories.QuoteRepository
	publisher EventPublisher
	vatRate   float64
}

// NewQuoteService creates a new QuoteService. A non-positive vatRate falls
// back to the default.
func NewQuoteService(quoteRepo repositories.QuoteRepository, publisher EventPublisher, vatRate float64) *QuoteService {
	if vatRate <= 0 {
		vatRate = DefaultVATRate
	}
	return &QuoteService{
		quoteRepo: quoteRepo,
		publisher: publisher,
		vatRate:   vatRate,
	}
}

// ListQuotes retrieves a filtered page of quotes.
func (s *QuoteService) ListQuotes(params query.ListParams) ([]models.Quote, int64, error) {
	return s.quoteRepo.List(params)
}

// GetQuoteByID retrieves a single quote with its items.
func (s *QuoteService) GetQuoteByID(id string) (*models.Quote, error) {
	return s.quoteRepo.GetByID(id)
}

// RequestQuote creates a new quote. Line totals and the subtotal/tax/total
// amounts are always recomputed here; client-supplied totals are ignored.
// VAT applies to the subtotal after discount.
func (s *QuoteService) RequestQuote(quote *models.Quote) error {
	var subtotal float64
	for i := range quote.Items {
		line := roundCents(float64(quote.Items[i].Quantity) * quote.Items[i].UnitPrice)
		quote.Items[i].LineTotal = line
		subtotal += line
	}
	quote.Subtotal = roundCents(subtotal)

	taxable := quote.Subtotal - quote.DiscountAmount
	if taxable < 0 {
		taxable = 0
	}
	quote.TaxAmount = roundCents(taxable * s.vatRate)
	quote.TotalAmount = roundCents(taxable + quote.TaxAmount)

	quote.QuoteNumber = GenerateNumber("QT", time.Now())
	if quote.Status == "" {
		quote.Status = models.QuoteStatusPending
	}

	if err := s.quoteRepo.Create(quote); err != nil {
		return err
	}

	s.publishQuoteRequested(quote)
	return nil
}

// UpdateQuote applies a partial update (status, notes, discount...). Items
// are fixed once the quote is created.
func (s *QuoteService) UpdateQuote(id string, fields map[string]interface{}) (*models.Quote, error) {
	return s.quoteRepo.UpdateFields(id, fields)
}

// DeleteQuote removes a quote and its items.
func (s *QuoteService) DeleteQuote(id string) error {
	return s.quoteRepo.Delete(id)
}

func (s *QuoteService) publishQuoteRequested(quote *models.Quote) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"quoteId":       quote.ID,
		"quoteNumber":   quote.QuoteNumber,
		"customerEmail": quote.CustomerEmail,
		"totalAmount":   quote.TotalAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal quote event: %v", err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.EventQuoteRequested, body); err != nil {
		log.Printf("Warning: Failed to publish quote requested event for quote %s: %v", quote.ID, err)
	}
}

// roundCents rounds a money amount to two decimals.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
