package booking

import (
	"context"
	"fmt"

	"superclinic/models"
)

// GetDoctorAvailability returns a doctor's open slots, optionally narrowed to
// a single date. Booked slots are filtered out unless includeBooked is set.
func (s *DefaultBookingService) GetDoctorAvailability(ctx context.Context, doctorName, date string, includeBooked bool) (*AvailabilityResult, error) {
	if date != "" {
		if _, err := parseDate(date); err != nil {
			return nil, &InputError{Message: "Invalid date format. Please use YYYY-MM-DD."}
		}
	}

	doctor, err := s.DoctorRepo.GetByName(ctx, doctorName)
	if err != nil {
		return nil, fmt.Errorf("load doctor %q: %w", doctorName, err)
	}
	if doctor == nil {
		return &AvailabilityResult{
			Status:       StatusNotFound,
			Message:      fmt.Sprintf("No doctor found with name '%s'.", doctorName),
			Availability: []AvailabilityView{},
		}, nil
	}

	var entries []models.Availability
	if date != "" {
		av, err := s.ScheduleRepo.ByDoctorAndDate(ctx, doctor.ID, date)
		if err != nil {
			return nil, fmt.Errorf("load availability: %w", err)
		}
		if av != nil {
			entries = append(entries, *av)
		}
	} else {
		entries, err = s.ScheduleRepo.ByDoctor(ctx, doctor.ID)
		if err != nil {
			return nil, fmt.Errorf("load availability: %w", err)
		}
	}

	views := make([]AvailabilityView, 0, len(entries))
	for _, av := range entries {
		slots := make([]SlotView, 0, len(av.Slots))
		for _, sl := range av.Slots {
			if sl.Booked && !includeBooked {
				continue
			}
			slots = append(slots, SlotView{
				SlotID:   sl.ID,
				Start:    sl.Start,
				End:      sl.End,
				IsBooked: sl.Booked,
			})
		}
		if len(slots) == 0 {
			continue
		}
		views = append(views, AvailabilityView{
			AvailabilityID: av.ID,
			Date:           av.Date,
			Slots:          slots,
		})
	}

	speciality, err := s.specialityName(ctx, doctor.SpecialityID)
	if err != nil {
		return nil, err
	}
	ref := &DoctorRef{
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Email:      doctor.Email,
		Address:    doctor.Address,
		Speciality: speciality,
	}

	if len(views) == 0 {
		msg := fmt.Sprintf("No available slots for Dr. %s.", doctor.Name)
		if date != "" {
			msg = fmt.Sprintf("No available slots for Dr. %s on %s.", doctor.Name, date)
		}
		return &AvailabilityResult{
			Status:       StatusNotFound,
			Message:      msg,
			Doctor:       ref,
			Availability: []AvailabilityView{},
		}, nil
	}

	return &AvailabilityResult{
		Status:       StatusSuccess,
		Type:         "doctor_availability",
		Doctor:       ref,
		Availability: views,
	}, nil
}

func (s *DefaultBookingService) specialityName(ctx context.Context, specialityID string) (string, error) {
	sp, err := s.DoctorRepo.GetSpecialityByID(ctx, specialityID)
	if err != nil {
		return "", fmt.Errorf("load speciality %s: %w", specialityID, err)
	}
	if sp == nil {
		return "", nil
	}
	return sp.Name, nil
}
