package repositories

import (
	"errors"
	"fmt"

	"tireshop/internal/models"
	"tireshop/internal/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository defines the interface for appointment data access.
type AppointmentRepository interface {
	List(params query.ListParams) ([]models.Appointment, int64, error)
	GetByID(id string) (*models.Appointment, error)
	Create(appointment *models.Appointment) error
	UpdateFields(id string, fields map[string]interface{}) (*models.Appointment, error)
	Delete(id string) error
}

var appointmentSortColumns = map[string]string{
	"appointmentNumber": "appointment_number",
	"customerName":      "customer_name",
	"scheduledDate":     "scheduled_date",
	"status":            "status",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

// GORMAppointmentRepository is a GORM implementation of AppointmentRepository.
type GORMAppointmentRepository struct {
	db *gorm.DB
}

// NewGORMAppointmentRepository creates a new instance of GORMAppointmentRepository.
func NewGORMAppointmentRepository(db *gorm.DB) *GORMAppointmentRepository {
	return &GORMAppointmentRepository{db: db}
}

// List returns a filtered page of appointments plus the total match count.
// Status and scheduled-date range filters AND together; search ORs across
// the customer columns and the appointment number.
func (r *GORMAppointmentRepository) List(params query.ListParams) ([]models.Appointment, int64, error) {
	base := r.db.Model(&models.Appointment{}).
		Scopes(query.Search(params.Search, "customer_name", "customer_email", "appointment_number"))
	if params.Status != "" {
		base = base.Where("status = ?", params.Status)
	}
	if params.ServiceID != "" {
		base = base.Where("service_id = ?", params.ServiceID)
	}
	if params.DateFrom != nil {
		base = base.Where("scheduled_date >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		base = base.Where("scheduled_date <= ?", *params.DateTo)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	var appointments []models.Appointment
	err := base.
		Scopes(query.Sort(params, appointmentSortColumns, "scheduled_date"), query.Paginate(params)).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

// GetByID retrieves a single appointment by its ID.
func (r *GORMAppointmentRepository) GetByID(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}
	return &appointment, nil
}

// Create inserts a new appointment, generating an ID when absent. The unique
// index on appointment_number rejects a duplicate generated number.
func (r *GORMAppointmentRepository) Create(appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if err := r.db.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to an appointment.
func (r *GORMAppointmentRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Appointment, error) {
	appointment, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return appointment, nil
	}
	if err := r.db.Model(appointment).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return appointment, nil
}

// Delete removes an appointment by its ID.
func (r *GORMAppointmentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	return nil
}
