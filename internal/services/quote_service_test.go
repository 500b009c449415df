package services_test

import (
	"fmt"
	"testing"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"
	"tireshop/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuoteRepository is a mock implementation of repositories.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) List(params query.ListParams) ([]models.Quote, int64, error) {
	args := m.Called(params)
	return args.Get(0).([]models.Quote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepository) GetByID(id string) (*models.Quote, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Create(quote *models.Quote) error {
	args := m.Called(quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Quote, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func TestQuoteService_RequestQuote_Totals(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := services.NewQuoteService(mockRepo, nil, 0.21)

	quote := &models.Quote{
		CustomerName:  "Jan de Vries",
		CustomerEmail: "jan@example.com",
		Items: []models.QuoteItem{
			{Name: "Tire", Quantity: 2, UnitPrice: 100},
		},
	}

	mockRepo.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil).Once()

	err := service.RequestQuote(quote)
	require.NoError(t, err)

	assert.Equal(t, 200.0, quote.Subtotal)
	assert.Equal(t, 42.0, quote.TaxAmount)
	assert.Equal(t, 242.0, quote.TotalAmount)
	assert.Equal(t, 200.0, quote.Items[0].LineTotal)
	assert.Equal(t, models.QuoteStatusPending, quote.Status)
	assert.Regexp(t, `^QT-\d{8}-[0-9A-F]{6}$`, quote.QuoteNumber)
	mockRepo.AssertExpectations(t)
}

func TestQuoteService_RequestQuote_DiscountBeforeVAT(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := services.NewQuoteService(mockRepo, nil, 0.21)

	quote := &models.Quote{
		CustomerName:   "Jan de Vries",
		CustomerEmail:  "jan@example.com",
		DiscountAmount: 50,
		Items: []models.QuoteItem{
			{Name: "Tire", Quantity: 2, UnitPrice: 100},
		},
	}

	mockRepo.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil).Once()

	err := service.RequestQuote(quote)
	require.NoError(t, err)

	// VAT applies to the discounted subtotal.
	assert.Equal(t, 200.0, quote.Subtotal)
	assert.Equal(t, 31.5, quote.TaxAmount)
	assert.Equal(t, 181.5, quote.TotalAmount)
	mockRepo.AssertExpectations(t)
}

func TestQuoteService_RequestQuote_IgnoresClientTotals(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := services.NewQuoteService(mockRepo, nil, 0.21)

	quote := &models.Quote{
		CustomerName:  "Jan de Vries",
		CustomerEmail: "jan@example.com",
		Subtotal:      1,
		TaxAmount:     1,
		TotalAmount:   1,
		Items: []models.QuoteItem{
			{Name: "Balancing", Quantity: 1, UnitPrice: 15.50},
		},
	}

	mockRepo.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil).Once()

	err := service.RequestQuote(quote)
	require.NoError(t, err)

	assert.Equal(t, 15.50, quote.Subtotal)
	assert.Equal(t, 3.26, quote.TaxAmount) // 15.50 * 0.21 rounded to cents
	assert.Equal(t, 18.76, quote.TotalAmount)
	mockRepo.AssertExpectations(t)
}

func TestQuoteService_RequestQuote_PublishesEvent(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	mockPublisher := new(MockPublisher)
	service := services.NewQuoteService(mockRepo, mockPublisher, 0.21)

	mockRepo.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil).Once()
	mockPublisher.On("Publish", rabbitmq.EventQuoteRequested, mock.Anything).Return(nil).Once()

	quote := &models.Quote{
		CustomerName:  "Jan de Vries",
		CustomerEmail: "jan@example.com",
		Items:         []models.QuoteItem{{Name: "Tire", Quantity: 1, UnitPrice: 80}},
	}
	err := service.RequestQuote(quote)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestQuoteService_RequestQuote_RepositoryError(t *testing.T) {
	mockRepo := new(MockQuoteRepository)
	service := services.NewQuoteService(mockRepo, nil, 0.21)

	mockRepo.On("Create", mock.AnythingOfType("*models.Quote")).Return(fmt.Errorf("database error")).Once()

	err := service.RequestQuote(&models.Quote{
		CustomerName:  "Jan de Vries",
		CustomerEmail: "jan@example.com",
		Items:         []models.QuoteItem{{Name: "Tire", Quantity: 1, UnitPrice: 80}},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}
