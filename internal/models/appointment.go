package models

import "time"

// Appointment statuses.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a customer workshop booking.
// AppointmentNumber is generated at creation time and backed by a unique
// index, so a random-suffix collision surfaces as a storage error instead
// of a silent duplicate.
type Appointment struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	AppointmentNumber string    `json:"appointmentNumber" gorm:"uniqueIndex;type:varchar(30)"`
	CustomerName      string    `json:"customerName" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	CustomerEmail     string    `json:"customerEmail" gorm:"type:varchar(255)" validate:"required,email"`
	CustomerPhone     string    `json:"customerPhone" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	ServiceID         string    `json:"serviceId" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	ScheduledDate     time.Time `json:"scheduledDate" validate:"required"`
	TimeSlot          string    `json:"timeSlot" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Status            string    `json:"status" gorm:"index;type:varchar(20);default:pending" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes             string    `json:"notes" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
