package booking

import (
	"context"
	"fmt"
	"sort"

	"superclinic/models"
)

const maxRecommendations = 3

// RecommendAlternatives suggests up to three open slots near a requested
// appointment that could not be booked. Tiers are tried in order and the
// first tier with matches wins:
//
//  1. other open slots with the same doctor on the same date, nearest
//     start time first
//  2. open slots with other doctors of the same speciality on that date
//  3. open slots with doctors of the same speciality on other dates,
//     earliest date then earliest start
func (s *DefaultBookingService) RecommendAlternatives(ctx context.Context, doctorName, date, startTime, endTime string) ([]models.RecommendationCandidate, error) {
	wantStart, err := normalizeClock(startTime)
	if err != nil {
		return nil, &InputError{Message: "Invalid time format. Please use HH:MM."}
	}
	if _, err := normalizeClock(endTime); err != nil {
		return nil, &InputError{Message: "Invalid time format. Please use HH:MM."}
	}

	doctor, err := s.DoctorRepo.GetByName(ctx, doctorName)
	if err != nil {
		return nil, fmt.Errorf("load doctor %q: %w", doctorName, err)
	}
	if doctor == nil {
		return []models.RecommendationCandidate{}, nil
	}
	speciality, err := s.specialityName(ctx, doctor.SpecialityID)
	if err != nil {
		return nil, err
	}

	// Tier 1: same doctor, same date.
	av, err := s.ScheduleRepo.ByDoctorAndDate(ctx, doctor.ID, date)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	if av != nil {
		cands := openSlots(*doctor, speciality, *av)
		if len(cands) > 0 {
			return rankByProximity(cands, wantStart), nil
		}
	}

	peers, err := s.DoctorRepo.GetBySpeciality(ctx, doctor.SpecialityID)
	if err != nil {
		return nil, fmt.Errorf("load speciality peers: %w", err)
	}
	byID := make(map[string]models.Doctor, len(peers))
	peerIDs := make([]string, 0, len(peers))
	for _, p := range peers {
		if p.ID == doctor.ID {
			continue
		}
		byID[p.ID] = p
		peerIDs = append(peerIDs, p.ID)
	}

	// Tier 2: same speciality, same date.
	if len(peerIDs) > 0 {
		avs, err := s.ScheduleRepo.ByDoctorsAndDate(ctx, peerIDs, date)
		if err != nil {
			return nil, fmt.Errorf("load peer availability: %w", err)
		}
		var cands []models.RecommendationCandidate
		for _, a := range avs {
			cands = append(cands, openSlots(byID[a.DoctorID], speciality, a)...)
		}
		if len(cands) > 0 {
			return rankByProximity(cands, wantStart), nil
		}
	}

	// Tier 3: same speciality, other dates. Includes the requested doctor.
	allIDs := append(peerIDs, doctor.ID)
	byID[doctor.ID] = *doctor
	avs, err := s.ScheduleRepo.ByDoctors(ctx, allIDs)
	if err != nil {
		return nil, fmt.Errorf("load speciality availability: %w", err)
	}
	var cands []models.RecommendationCandidate
	for _, a := range avs {
		if a.Date == date {
			continue
		}
		cands = append(cands, openSlots(byID[a.DoctorID], speciality, a)...)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Date != cands[j].Date {
			return cands[i].Date < cands[j].Date
		}
		return cands[i].Start < cands[j].Start
	})
	return cap3(cands), nil
}

func openSlots(doctor models.Doctor, speciality string, av models.Availability) []models.RecommendationCandidate {
	var out []models.RecommendationCandidate
	for _, sl := range av.Slots {
		if sl.Booked {
			continue
		}
		out = append(out, models.RecommendationCandidate{
			Doctor:     doctor.Name,
			Speciality: speciality,
			Date:       av.Date,
			SlotID:     sl.ID,
			Start:      sl.Start,
			End:        sl.End,
		})
	}
	return out
}

// rankByProximity orders candidates by distance from the requested start
// time. Equal distances keep their original order.
func rankByProximity(cands []models.RecommendationCandidate, wantStart string) []models.RecommendationCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return clockDistance(cands[i].Start, wantStart) < clockDistance(cands[j].Start, wantStart)
	})
	return cap3(cands)
}

func cap3(cands []models.RecommendationCandidate) []models.RecommendationCandidate {
	if cands == nil {
		return []models.RecommendationCandidate{}
	}
	if len(cands) > maxRecommendations {
		return cands[:maxRecommendations]
	}
	return cands
}
