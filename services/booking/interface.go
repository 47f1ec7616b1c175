package booking

import (
	"context"
	"time"

	doctorRepo "superclinic/database/repository/doctor"
	scheduleRepo "superclinic/database/repository/schedule"
	"superclinic/models"
	"superclinic/services/tasks"
)

// Service is the backend surface the assistant's tools call into.
type Service interface {
	GetDoctors(ctx context.Context) (*DoctorListResult, error)
	FilterDoctors(ctx context.Context, speciality string) (*FilterResult, error)
	GetDoctorAvailability(ctx context.Context, doctorName, date string, includeBooked bool) (*AvailabilityResult, error)
	BookAppointment(ctx context.Context, req BookingRequest) (*BookingResult, error)
	RecommendAlternatives(ctx context.Context, doctorName, date, startTime, endTime string) ([]models.RecommendationCandidate, error)
}

// BookingRequest carries everything needed to book one slot.
type BookingRequest struct {
	UserID      string
	DoctorName  string
	Date        string
	TimeRange   string
	PatientName string
	Email       string
	Phone       string
}

// ReminderScheduler enqueues an appointment reminder to fire at a given time.
// Booking treats scheduling as best-effort; failures are logged, not surfaced.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload tasks.ReminderPayload, fireAt time.Time) error
}

// DefaultBookingService implements Service on top of the mongo repositories.
type DefaultBookingService struct {
	DoctorRepo   doctorRepo.Repository
	ScheduleRepo scheduleRepo.Repository
	Reminders    ReminderScheduler
}
