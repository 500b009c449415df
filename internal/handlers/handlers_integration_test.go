package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tireshop/internal/handlers"
	"tireshop/internal/middleware"
	"tireshop/internal/models"
	"tireshop/internal/repositories"
	"tireshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp wires the full application against a fresh in-memory SQLite
// database, mirroring the production wiring with the broker left out and a
// zero payment delay.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:itest-%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.Service{},
		&models.Appointment{},
		&models.Quote{},
		&models.QuoteItem{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	serviceRepo := repositories.NewGORMServiceRepository(db)
	appointmentRepo := repositories.NewGORMAppointmentRepository(db)
	quoteRepo := repositories.NewGORMQuoteRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, "integration-test-secret")
	catalogService := services.NewCatalogService(brandRepo, categoryRepo, productRepo, serviceRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, serviceRepo, nil)
	quoteService := services.NewQuoteService(quoteRepo, nil, 0.21)
	reviewService := services.NewReviewService(reviewRepo)
	checkoutService := services.NewCheckoutService(orderRepo, productRepo, nil, 0.21, 0)

	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(catalogService)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	app := fiber.New()

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	serviceHandler.RegisterRoutes(apiV1)
	appointmentHandler.RegisterRoutes(apiV1)
	quoteHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired)
	catalogHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	serviceHandler.RegisterAdminRoutes(admin)
	appointmentHandler.RegisterAdminRoutes(admin)
	quoteHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	checkoutHandler.RegisterAdminRoutes(admin)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// listData returns the data array of a list envelope. An empty listing may
// be encoded as null, which decodes to nil; both count as empty here.
func listData(body map[string]interface{}) []interface{} {
	data, _ := body["data"].([]interface{})
	return data
}

// registerAndLogin creates an account over the API and returns a token for
// it. When role is admin the promotion happens directly in the database;
// registration itself never grants admin.
func registerAndLogin(t *testing.T, app *fiber.App, db *gorm.DB, role string) string {
	t.Helper()

	username := "user-" + uuid.New().String()[:8]
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	if role == models.RoleAdmin {
		err := db.Model(&models.User{}).
			Where("username = ?", username).
			Update("role", models.RoleAdmin).Error
		require.NoError(t, err)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAdminGateOverHTTP(t *testing.T) {
	app, db := newTestApp(t)

	// No token at all
	resp := doJSON(t, app, http.MethodGet, "/api/v1/admin/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Valid token, customer role
	customerToken := registerAndLogin(t, app, db, models.RoleCustomer)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/services", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])

	// Admin role passes
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/services", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestServiceCRUD(t *testing.T) {
	app, db := newTestApp(t)
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)

	// Create
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/services", adminToken, fiber.Map{
		"name":            "Oil Change",
		"slug":            "oil-change",
		"description":     "Full synthetic oil change",
		"price":           49.95,
		"durationMinutes": 30,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	serviceID := data["id"].(string)
	assert.NotEmpty(t, serviceID)
	assert.Equal(t, "Oil Change", data["name"])
	assert.Equal(t, true, data["isActive"])

	// Public read of what the admin created, by id and by slug
	resp = doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "oil-change", body["data"].(map[string]interface{})["slug"])

	resp = doJSON(t, app, http.MethodGet, "/api/v1/services/slug/oil-change", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, serviceID, body["data"].(map[string]interface{})["id"])

	// Partial update: only price changes, the rest keeps its value
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/services/"+serviceID, adminToken, fiber.Map{
		"price": 54.95,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, 54.95, data["price"])
	assert.Equal(t, "Oil Change", data["name"])
	assert.Equal(t, "oil-change", data["slug"])
	assert.Equal(t, float64(30), data["durationMinutes"])

	// Delete, then the record is gone
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/services/"+serviceID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/services/"+serviceID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Service not found", body["message"])
}

func TestAppointmentLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)

	// Booking against a service that does not exist is the caller's
	// mistake, reported as a bad request rather than a missing appointment.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/appointments", "", fiber.Map{
		"customerName":  "Jan de Vries",
		"customerEmail": "jan@example.com",
		"scheduledDate": "2026-09-15T10:00:00Z",
		"timeSlot":      "10:00-11:00",
		"serviceId":     uuid.New().String(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unknown service", body["message"])

	// Booking is public
	resp = doJSON(t, app, http.MethodPost, "/api/v1/appointments", "", fiber.Map{
		"customerName":  "Jan de Vries",
		"customerEmail": "jan@example.com",
		"scheduledDate": "2026-09-15T10:00:00Z",
		"timeSlot":      "10:00-11:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	appointmentID := data["id"].(string)
	assert.Regexp(t, `^APT-\d{8}-[0-9A-F]{6}$`, data["appointmentNumber"])
	assert.Equal(t, models.AppointmentStatusPending, data["status"])

	// Status-only update keeps the customer fields
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/appointments/"+appointmentID, adminToken, fiber.Map{
		"status": models.AppointmentStatusConfirmed,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, models.AppointmentStatusConfirmed, data["status"])
	assert.Equal(t, "Jan de Vries", data["customerName"])
	assert.Equal(t, "jan@example.com", data["customerEmail"])

	// Delete, then fetch reports not found
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/appointments/"+appointmentID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/appointments/"+appointmentID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Deleting again is also a 404, not a silent success
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/appointments/"+appointmentID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestQuoteTotalsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/quotes", "", fiber.Map{
		"customerName":  "Jan de Vries",
		"customerEmail": "jan@example.com",
		"items": []fiber.Map{
			{"name": "Tire 205/55R16", "quantity": 2, "unitPrice": 100},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, 200.0, data["subtotal"])
	assert.Equal(t, 42.0, data["taxAmount"])
	assert.Equal(t, 242.0, data["totalAmount"])
	assert.Equal(t, models.QuoteStatusPending, data["status"])
	assert.Regexp(t, `^QT-\d{8}-[0-9A-F]{6}$`, data["quoteNumber"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, 200.0, items[0].(map[string]interface{})["lineTotal"])
}

func TestReviewModeration(t *testing.T) {
	app, db := newTestApp(t)
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)

	// A submitted review lands in pending even when the request claims
	// approved.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/reviews", "", fiber.Map{
		"customerName": "Jan de Vries",
		"rating":       5,
		"title":        "Great tires",
		"comment":      "Quiet on the highway.",
		"status":       models.ReviewStatusApproved,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	reviewID := data["id"].(string)
	assert.Equal(t, models.ReviewStatusPending, data["status"])

	// Public listing hides it while pending, even with status=pending asked
	// for explicitly.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/reviews?status=pending", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Empty(t, listData(body))

	// The admin listing sees it
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/reviews?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, listData(body), 1)

	// Approve, then it shows up publicly
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/reviews/"+reviewID, adminToken, fiber.Map{
		"status": models.ReviewStatusApproved,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/reviews", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	reviews := listData(body)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great tires", reviews[0].(map[string]interface{})["title"])
}

func TestCheckoutFlow(t *testing.T) {
	app, db := newTestApp(t)
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/products", adminToken, fiber.Map{
		"name":   "EcoGrip Summer 205/55R16",
		"slug":   "ecogrip-summer-205-55r16",
		"size":   "205/55R16",
		"season": "summer",
		"price":  100.0,
		"stock":  10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	productID := body["data"].(map[string]interface{})["id"].(string)

	// Checkout prices the cart against the catalog; client prices are ignored
	resp = doJSON(t, app, http.MethodPost, "/api/v1/checkout", "", fiber.Map{
		"customerName":  "Jan de Vries",
		"customerEmail": "jan@example.com",
		"items": []fiber.Map{
			{"productId": productID, "quantity": 2, "unitPrice": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	orderID := data["id"].(string)
	assert.Equal(t, models.OrderStatusPaid, data["status"])
	assert.Equal(t, 200.0, data["subtotal"])
	assert.Equal(t, 42.0, data["taxAmount"])
	assert.Equal(t, 242.0, data["totalAmount"])
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, data["orderNumber"])

	// Stock went down
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(8), body["data"].(map[string]interface{})["stock"])

	// Ordering more than the remaining stock fails before any write
	resp = doJSON(t, app, http.MethodPost, "/api/v1/checkout", "", fiber.Map{
		"customerName":  "Jan de Vries",
		"customerEmail": "jan@example.com",
		"items": []fiber.Map{
			{"productId": productID, "quantity": 50},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Contains(t, body["message"], "insufficient stock")

	// The order is visible to the admin and can move through fulfillment
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/orders/"+orderID, adminToken, fiber.Map{
		"status": models.OrderStatusShipped,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, models.OrderStatusShipped, body["data"].(map[string]interface{})["status"])
}

func TestListPaginationAndSentinels(t *testing.T) {
	app, db := newTestApp(t)
	adminToken := registerAndLogin(t, app, db, models.RoleAdmin)

	for i := 0; i < 12; i++ {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/services", adminToken, fiber.Map{
			"name":  fmt.Sprintf("Service %02d", i),
			"slug":  fmt.Sprintf("service-%02d", i),
			"price": float64(10 + i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/services?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, listData(body), 5)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(12), pagination["total"])
	assert.Equal(t, float64(3), pagination["totalPages"])

	// The dropdown sentinels behave like no filter at all
	for _, q := range []string{"", "?search=undefined", "?search=null", "?status=all"} {
		resp = doJSON(t, app, http.MethodGet, "/api/v1/services"+q, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		assert.Equal(t, float64(12), body["pagination"].(map[string]interface{})["total"], "query %q", q)
	}

	// A real search narrows the result
	resp = doJSON(t, app, http.MethodGet, "/api/v1/services?search=Service+03", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["total"])

	// Out-of-range page: empty data, intact metadata
	resp = doJSON(t, app, http.MethodGet, "/api/v1/services?page=99&limit=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Empty(t, listData(body))
	assert.Equal(t, float64(12), body["pagination"].(map[string]interface{})["total"])
}
