package assistant

import (
	"context"

	"superclinic/models"
)

// toolHandler executes one tool call. It returns the payload to serialize
// back to the model, or an error for unexpected failures.
type toolHandler func(ctx context.Context, userID string, args map[string]any) (any, error)

type toolEntry struct {
	spec   models.ToolSpec
	handle toolHandler
}

// buildCatalog declares every tool the model may call, paired with its
// handler. Specs and dispatch live in one table so they cannot drift apart.
func (s *Service) buildCatalog() []toolEntry {
	return []toolEntry{
		{
			spec: models.ToolSpec{
				Name:        "get_doctors",
				Description: "Fetch all doctors from the database.",
				Parameters: models.ToolParameters{
					Type:       "object",
					Properties: map[string]models.ToolProperty{},
				},
			},
			handle: s.handleGetDoctors,
		},
		{
			spec: models.ToolSpec{
				Name:        "filter_doctors",
				Description: "Fetch doctors by medical specialty from the database.",
				Parameters: models.ToolParameters{
					Type: "object",
					Properties: map[string]models.ToolProperty{
						"specialty": {
							Type:        "string",
							Description: "The medical specialty, e.g. Cardiologist or Neurologist",
						},
					},
					Required: []string{"specialty"},
				},
			},
			handle: s.handleFilterDoctors,
		},
		{
			spec: models.ToolSpec{
				Name:        "get_doctor_availability",
				Description: "Get available appointment slots for a specific doctor on a given date. The date is optional.",
				Parameters: models.ToolParameters{
					Type: "object",
					Properties: map[string]models.ToolProperty{
						"doctor_name":    {Type: "string"},
						"date":           {Type: "string", Description: "YYYY-MM-DD"},
						"include_booked": {Type: "boolean", Description: "Include already booked slots"},
					},
					Required: []string{"doctor_name"},
				},
			},
			handle: s.handleGetDoctorAvailability,
		},
		{
			spec: models.ToolSpec{
				Name:        "book_appointment",
				Description: "Book a doctor appointment if the selected time slot is available.",
				Parameters: models.ToolParameters{
					Type: "object",
					Properties: map[string]models.ToolProperty{
						"user_id":      {Type: "string", Description: "ID of the user (optional)"},
						"doctor_name":  {Type: "string"},
						"date":         {Type: "string", Description: "Appointment date (YYYY-MM-DD)"},
						"time":         {Type: "string", Description: "Slot time range, e.g. 12:00-13:00"},
						"patient_name": {Type: "string"},
						"email":        {Type: "string"},
						"phone":        {Type: "string"},
					},
					Required: []string{"doctor_name", "date", "time", "patient_name", "email", "phone"},
				},
			},
			handle: s.handleBookAppointment,
		},
		{
			spec: models.ToolSpec{
				Name:        "recommend_alternatives",
				Description: "Recommend alternate slots for a doctor / specialty.",
				Parameters: models.ToolParameters{
					Type: "object",
					Properties: map[string]models.ToolProperty{
						"doctor_name": {Type: "string"},
						"date":        {Type: "string"},
						"start_time":  {Type: "string", Description: "HH:MM:SS"},
						"end_time":    {Type: "string", Description: "HH:MM:SS"},
						"specialty":   {Type: "string"},
					},
					Required: []string{"doctor_name", "date", "start_time", "end_time"},
				},
			},
			handle: s.handleRecommendAlternatives,
		},
	}
}

// ToolSpecs exposes the catalog's declarations for the model request.
func (s *Service) ToolSpecs() []models.ToolSpec {
	specs := make([]models.ToolSpec, 0, len(s.catalog))
	for _, e := range s.catalog {
		specs = append(specs, e.spec)
	}
	return specs
}
