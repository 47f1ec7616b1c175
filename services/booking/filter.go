package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"superclinic/models"
	"superclinic/utils"
)

// GetDoctors returns every doctor with their speciality attached.
func (s *DefaultBookingService) GetDoctors(ctx context.Context) (*DoctorListResult, error) {
	doctors, err := s.DoctorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	specs, err := s.specialityIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DoctorInfo, 0, len(doctors))
	for _, d := range doctors {
		sp := specs[d.SpecialityID]
		out = append(out, DoctorInfo{
			DoctorID:   d.ID,
			DoctorName: d.Name,
			Email:      d.Email,
			Address:    d.Address,
			Speciality: SpecialityRef{ID: d.SpecialityID, Name: sp},
		})
	}
	return &DoctorListResult{
		Status:  StatusSuccess,
		Type:    "doctor_list",
		Total:   len(out),
		Doctors: out,
	}, nil
}

// FilterDoctors finds doctors by speciality. A case-insensitive substring
// match runs first; when it yields nothing, a similarity-ratio fallback
// against the known speciality names handles near-miss phrasing such as
// "Orthopedist" against "Orthopedic / Chiropractic".
func (s *DefaultBookingService) FilterDoctors(ctx context.Context, speciality string) (*FilterResult, error) {
	matched, err := s.DoctorRepo.SearchSpecialities(ctx, speciality)
	if err != nil {
		return nil, fmt.Errorf("search specialities: %w", err)
	}

	if len(matched) == 0 {
		all, err := s.DoctorRepo.ListSpecialities(ctx)
		if err != nil {
			return nil, fmt.Errorf("list specialities: %w", err)
		}
		if best := closestSpeciality(speciality, all, 0.5); best != nil {
			utils.GetLogger().Debug("Fuzzy matched speciality",
				zap.String("requested", speciality), zap.String("matched", best.Name))
			matched = []models.Speciality{*best}
		}
	}

	var out []FilteredDoctor
	for _, sp := range matched {
		doctors, err := s.DoctorRepo.GetBySpeciality(ctx, sp.ID)
		if err != nil {
			return nil, fmt.Errorf("load doctors for speciality %s: %w", sp.ID, err)
		}
		for _, d := range doctors {
			out = append(out, FilteredDoctor{
				DoctorID:   d.ID,
				DoctorName: d.Name,
				Email:      d.Email,
				Address:    d.Address,
				Speciality: sp.Name,
			})
		}
	}

	if len(out) == 0 {
		return &FilterResult{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No doctors found for speciality '%s'.", speciality),
			Doctors: []FilteredDoctor{},
		}, nil
	}
	return &FilterResult{
		Status:     StatusSuccess,
		Type:       "filtered_doctors",
		Speciality: speciality,
		Total:      len(out),
		Doctors:    out,
	}, nil
}

func (s *DefaultBookingService) specialityIndex(ctx context.Context) (map[string]string, error) {
	specs, err := s.DoctorRepo.ListSpecialities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load specialities: %w", err)
	}
	idx := make(map[string]string, len(specs))
	for _, sp := range specs {
		idx[sp.ID] = sp.Name
	}
	return idx, nil
}

// closestSpeciality picks the best similarity match at or above cutoff, or
// nil when nothing comes close.
func closestSpeciality(name string, specialities []models.Speciality, cutoff float64) *models.Speciality {
	var best *models.Speciality
	bestRatio := cutoff
	for i := range specialities {
		r := similarityRatio(name, specialities[i].Name)
		if r >= bestRatio {
			bestRatio = r
			best = &specialities[i]
		}
	}
	return best
}

// similarityRatio is the classic sequence-matcher ratio 2*M/T over lowercased
// inputs, where M is the total length of matching blocks and T the combined
// length.
func similarityRatio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2 * float64(matchingLen(a, b)) / float64(total)
}

// matchingLen sums the longest common substring and, recursively, the
// matches on either side of it.
func matchingLen(a, b string) int {
	ai, bi, n := longestCommonBlock(a, b)
	if n == 0 {
		return 0
	}
	return n + matchingLen(a[:ai], b[:bi]) + matchingLen(a[ai+n:], b[bi+n:])
}

func longestCommonBlock(a, b string) (ai, bi, n int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > n {
					n = cur[j]
					ai = i - n
					bi = j - n
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, n
}
