package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tireshop/internal/models"
	"tireshop/internal/query"
	"tireshop/internal/repositories"
	"tireshop/pkg/rabbitmq"
)

// ErrUnknownService means a booking referenced a service that does not
// exist. It is the caller's input that is wrong, not the appointment
// record, so handlers map it to a bad-request response.
var ErrUnknownService = errors.New("unknown service")

// AppointmentService handles business logic for workshop bookings.
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	serviceRepo     repositories.ServiceRepository
	publisher       EventPublisher
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	serviceRepo repositories.ServiceRepository,
	publisher EventPublisher,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		publisher:       publisher,
	}
}

// ListAppointments retrieves a filtered page of appointments.
func (s *AppointmentService) ListAppointments(params query.ListParams) ([]models.Appointment, int64, error) {
	return s.appointmentRepo.List(params)
}

// GetAppointmentByID retrieves a single appointment.
func (s *AppointmentService) GetAppointmentByID(id string) (*models.Appointment, error) {
	return s.appointmentRepo.GetByID(id)
}

// BookAppointment creates a new appointment. The referenced service must
// exist, the appointment number is generated here, and a booked event is
// published best-effort.
func (s *AppointmentService) BookAppointment(appointment *models.Appointment) error {
	if appointment.ServiceID != "" {
		if _, err := s.serviceRepo.GetByID(appointment.ServiceID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("service %s: %w", appointment.ServiceID, ErrUnknownService)
			}
			return fmt.Errorf("service %s: %w", appointment.ServiceID, err)
		}
	}

	appointment.AppointmentNumber = GenerateNumber("APT", time.Now())
	if appointment.Status == "" {
		appointment.Status = models.AppointmentStatusPending
	}

	if err := s.appointmentRepo.Create(appointment); err != nil {
		return err
	}

	s.publishEvent(rabbitmq.EventAppointmentBooked, map[string]interface{}{
		"appointmentId":     appointment.ID,
		"appointmentNumber": appointment.AppointmentNumber,
		"customerEmail":     appointment.CustomerEmail,
		"scheduledDate":     appointment.ScheduledDate.Format(time.RFC3339),
	})
	return nil
}

// UpdateAppointment applies a partial update.
func (s *AppointmentService) UpdateAppointment(id string, fields map[string]interface{}) (*models.Appointment, error) {
	return s.appointmentRepo.UpdateFields(id, fields)
}

// DeleteAppointment removes an appointment.
func (s *AppointmentService) DeleteAppointment(id string) error {
	return s.appointmentRepo.Delete(id)
}

func (s *AppointmentService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
