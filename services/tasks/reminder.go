package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeAppointmentReminder is the asynq task type for appointment reminders.
const TypeAppointmentReminder = "appointment:reminder"

// ReminderPayload carries everything the reminder worker needs to notify a
// patient about an upcoming appointment.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	UserID      string `json:"userId"`
	PatientName string `json:"patientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Start       string `json:"start"`
}

// NewReminderTask builds an appointment reminder task scheduled for fireAt.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TypeAppointmentReminder, data,
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
	), nil
}
