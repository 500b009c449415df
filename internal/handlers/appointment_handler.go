package handlers

import (
	"errors"
	"log"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles HTTP requests for workshop appointments.
type AppointmentHandler struct {
	appointments *services.AppointmentService
	validate     *validator.Validate
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the public booking route.
func (h *AppointmentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/appointments", h.HandleBookAppointment)
}

// RegisterAdminRoutes registers the privileged appointment routes.
func (h *AppointmentHandler) RegisterAdminRoutes(router fiber.Router) {
	appointments := router.Group("/appointments")
	appointments.Get("/", h.HandleListAppointments)
	appointments.Get("/:id", h.HandleGetAppointment)
	appointments.Post("/", h.HandleBookAppointment)
	appointments.Put("/:id", h.HandleUpdateAppointment)
	appointments.Delete("/:id", h.HandleDeleteAppointment)
}

// HandleListAppointments returns a filtered, paginated appointment listing.
// Supports status, serviceId and scheduled-date range filters plus search
// over customer name, email and appointment number.
func (h *AppointmentHandler) HandleListAppointments(c *fiber.Ctx) error {
	params := query.ParseListParams(c)
	appointments, total, err := h.appointments.ListAppointments(params)
	if err != nil {
		return respondStorageError(c, "Appointment", err)
	}
	return respondList(c, appointments, query.NewPagination(params.Page, params.Limit, total))
}

// HandleGetAppointment returns a single appointment by ID.
func (h *AppointmentHandler) HandleGetAppointment(c *fiber.Ctx) error {
	appointment, err := h.appointments.GetAppointmentByID(c.Params("id"))
	if err != nil {
		return respondStorageError(c, "Appointment", err)
	}
	return respondData(c, fiber.StatusOK, appointment)
}

// HandleBookAppointment creates an appointment and generates its number.
func (h *AppointmentHandler) HandleBookAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		log.Printf("Error parsing appointment request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(appointment); err != nil {
		return respondValidation(c, err)
	}
	if err := h.appointments.BookAppointment(&appointment); err != nil {
		if errors.Is(err, services.ErrUnknownService) {
			return respondError(c, fiber.StatusBadRequest, "Unknown service", err)
		}
		return respondStorageError(c, "Appointment", err)
	}
	return respondData(c, fiber.StatusCreated, appointment)
}

type appointmentUpdateRequest struct {
	CustomerName  *string `json:"customerName" validate:"omitempty,min=2,max=150"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone *string `json:"customerPhone" validate:"omitempty,max=30"`
	ScheduledDate *string `json:"scheduledDate"`
	TimeSlot      *string `json:"timeSlot" validate:"omitempty,max=20"`
	Status        *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

// HandleUpdateAppointment applies a partial update: absent fields keep
// their stored values, so a status-only PUT never clears customer data.
func (h *AppointmentHandler) HandleUpdateAppointment(c *fiber.Ctx) error {
	var req appointmentUpdateRequest
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
	if req.ScheduledDate != nil {
		t, err := parseWireTime(*req.ScheduledDate)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid scheduledDate", err)
		}
		fields["scheduled_date"] = t
	}
	if req.TimeSlot != nil {
		fields["time_slot"] = *req.TimeSlot
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	appointment, err := h.appointments.UpdateAppointment(c.Params("id"), fields)
	if err != nil {
		return respondStorageError(c, "Appointment", err)
	}
	return respondData(c, fiber.StatusOK, appointment)
}

// HandleDeleteAppointment removes an appointment.
func (h *AppointmentHandler) HandleDeleteAppointment(c *fiber.Ctx) error {
	if err := h.appointments.DeleteAppointment(c.Params("id")); err != nil {
		return respondStorageError(c, "Appointment", err)
	}
	return respondMessage(c, "Appointment deleted successfully")
}
