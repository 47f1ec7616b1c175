package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scheduleRepo "superclinic/database/repository/schedule"
	"superclinic/models"
	"superclinic/services/tasks"
	"superclinic/utils"
)

const reminderLeadTime = 24 * time.Hour

// MissingPatientFields reports which required patient details are absent,
// in a fixed order suitable for prompting the user.
func MissingPatientFields(name, email, phone string) []string {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// BookAppointment books the slot matching the requested doctor, date and
// time range. When the slot does not exist or is already booked, the result
// carries alternative recommendations instead of a booking.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	start, end, err := parseTimeRange(req.TimeRange)
	if err != nil {
		return nil, &InputError{Message: "Invalid time format. Please use HH:MM-HH:MM."}
	}
	if _, err := parseDate(req.Date); err != nil {
		return nil, &InputError{Message: "Invalid date format. Please use YYYY-MM-DD."}
	}

	doctor, err := s.DoctorRepo.GetByName(ctx, req.DoctorName)
	if err != nil {
		return nil, fmt.Errorf("load doctor %q: %w", req.DoctorName, err)
	}
	if doctor == nil {
		return &BookingResult{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No doctor found with name '%s'.", req.DoctorName),
		}, nil
	}

	av, err := s.ScheduleRepo.ByDoctorAndDate(ctx, doctor.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	slot := matchSlot(av, start, end)

	if slot != nil {
		patient := models.Patient{
			BookingID: uuid.NewString(),
			UserID:    req.UserID,
			SlotID:    slot.ID,
			Name:      strings.TrimSpace(req.PatientName),
			Email:     strings.TrimSpace(req.Email),
			Phone:     strings.TrimSpace(req.Phone),
		}
		err = s.ScheduleRepo.BookSlot(ctx, av.ID, slot.ID, patient)
		if err == nil {
			s.scheduleReminder(ctx, *doctor, req.Date, *slot, patient)
			return s.successResult(ctx, *doctor, req.Date, *slot, patient)
		}
		if !errors.Is(err, scheduleRepo.ErrSlotTaken) {
			return nil, fmt.Errorf("book slot: %w", err)
		}
	}

	// Slot missing or lost to a concurrent booking. Recommend alternatives.
	alternatives, err := s.RecommendAlternatives(ctx, req.DoctorName, req.Date, start, end)
	if err != nil {
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			return nil, err
		}
		alternatives = []models.RecommendationCandidate{}
	}
	return &BookingResult{
		Status:       StatusError,
		Message:      "Slot not available or already booked",
		Alternatives: alternatives,
	}, nil
}

func matchSlot(av *models.Availability, start, end string) *models.Slot {
	if av == nil {
		return nil
	}
	for i := range av.Slots {
		sl := &av.Slots[i]
		if sl.Booked {
			continue
		}
		if sl.Start == start && sl.End == end {
			return sl
		}
	}
	return nil
}

func (s *DefaultBookingService) successResult(ctx context.Context, doctor models.Doctor, date string, slot models.Slot, patient models.Patient) (*BookingResult, error) {
	speciality, err := s.specialityName(ctx, doctor.SpecialityID)
	if err != nil {
		return nil, err
	}
	return &BookingResult{
		Status:  StatusSuccess,
		Type:    "booking_confirmation",
		Message: fmt.Sprintf("Appointment booked successfully with %s", doctor.Name),
		Doctor: &DoctorRef{
			DoctorID:   doctor.ID,
			DoctorName: doctor.Name,
			Email:      doctor.Email,
			Address:    doctor.Address,
			Speciality: speciality,
		},
		Appointment: &AppointmentView{
			Date:   date,
			SlotID: slot.ID,
			Time:   TimeWindow{Start: slot.Start, End: slot.End},
		},
		Patient: &PatientView{
			Name:  patient.Name,
			Email: patient.Email,
			Phone: patient.Phone,
		},
	}, nil
}

// scheduleReminder enqueues a reminder 24h before the appointment. Failures
// never fail the booking.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, doctor models.Doctor, date string, slot models.Slot, patient models.Patient) {
	if s.Reminders == nil {
		return
	}
	startAt, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+slot.Start, time.Local)
	if err != nil {
		utils.GetLogger().Warn("Skipping reminder for unparseable appointment time",
			zap.String("bookingId", patient.BookingID), zap.Error(err))
		return
	}
	fireAt := startAt.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}
	payload := tasks.ReminderPayload{
		BookingID:   patient.BookingID,
		UserID:      patient.UserID,
		PatientName: patient.Name,
		Email:       patient.Email,
		Phone:       patient.Phone,
		DoctorName:  doctor.Name,
		Date:        date,
		Start:       slot.Start,
	}
	if err := s.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Error("Failed to schedule appointment reminder",
			zap.String("bookingId", patient.BookingID), zap.Error(err))
	}
}
