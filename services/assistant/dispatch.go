package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"superclinic/services/booking"
)

// genericToolError is returned to the model whenever a backend call fails
// unexpectedly. The model relays it; internals stay in the logs.
const genericToolError = "Something went wrong while processing your request. Please try again later."

type toolErrorPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type missingFieldsPayload struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	RequiredFields []string `json:"required_fields"`
}

// executeTool runs one named tool call and serializes the outcome for the
// model. Unknown tools and backend failures both come back as structured
// error payloads, never as Go errors; the dialogue must keep moving.
func (s *Service) executeTool(ctx context.Context, userID, name, rawArgs string) string {
	args := map[string]any{}
	if strings.TrimSpace(rawArgs) != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			s.log.Warn("Malformed tool arguments",
				zap.String("tool", name), zap.Error(err))
			return marshalToolResult(toolErrorPayload{Status: "error", Message: genericToolError})
		}
	}

	for _, e := range s.catalog {
		if e.spec.Name != name {
			continue
		}
		result, err := e.handle(ctx, userID, args)
		if err != nil {
			var inputErr *booking.InputError
			if errors.As(err, &inputErr) {
				return marshalToolResult(toolErrorPayload{Status: "error", Message: inputErr.Message})
			}
			s.log.Error("Tool execution failed",
				zap.String("tool", name), zap.String("userId", userID), zap.Error(err))
			return marshalToolResult(toolErrorPayload{Status: "error", Message: genericToolError})
		}
		return marshalToolResult(result)
	}

	s.log.Warn("Model requested unknown tool", zap.String("tool", name))
	return marshalToolResult(toolErrorPayload{
		Status:  "error",
		Message: fmt.Sprintf("Unknown function '%s'.", name),
	})
}

func marshalToolResult(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"status":"error","message":"` + genericToolError + `"}`
	}
	return string(data)
}

func (s *Service) handleGetDoctors(ctx context.Context, _ string, _ map[string]any) (any, error) {
	return s.booking.GetDoctors(ctx)
}

func (s *Service) handleFilterDoctors(ctx context.Context, _ string, args map[string]any) (any, error) {
	speciality := argString(args, "specialty", "speciality")
	return s.booking.FilterDoctors(ctx, speciality)
}

func (s *Service) handleGetDoctorAvailability(ctx context.Context, _ string, args map[string]any) (any, error) {
	return s.booking.GetDoctorAvailability(ctx,
		argString(args, "doctor_name"),
		argString(args, "date"),
		argBool(args, "include_booked"),
	)
}

func (s *Service) handleBookAppointment(ctx context.Context, userID string, args map[string]any) (any, error) {
	name := argString(args, "patient_name")
	email := argString(args, "email")
	phone := argString(args, "phone")
	if missing := booking.MissingPatientFields(name, email, phone); len(missing) > 0 {
		return missingFieldsPayload{
			Status:         "error",
			Message:        "Missing required patient details.",
			RequiredFields: missing,
		}, nil
	}

	id := argString(args, "user_id")
	if id == "" {
		id = userID
	}
	if id == "" {
		id = "anonymous"
	}
	return s.booking.BookAppointment(ctx, booking.BookingRequest{
		UserID:      id,
		DoctorName:  argString(args, "doctor_name"),
		Date:        argString(args, "date"),
		TimeRange:   argString(args, "time", "time_range"),
		PatientName: name,
		Email:       email,
		Phone:       phone,
	})
}

func (s *Service) handleRecommendAlternatives(ctx context.Context, _ string, args map[string]any) (any, error) {
	return s.booking.RecommendAlternatives(ctx,
		argString(args, "doctor_name"),
		argString(args, "date"),
		argString(args, "start_time"),
		argString(args, "end_time"),
	)
}

// argString returns the first present key as a string, tolerating the
// aliases different models use for the same argument.
func argString(args map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := args[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case fmt.Stringer:
			return t.String()
		default:
			return fmt.Sprintf("%v", t)
		}
	}
	return ""
}

// argBool coerces a boolean argument, accepting the string spellings models
// sometimes emit.
func argBool(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y":
			return true
		}
		return false
	case float64:
		return t != 0
	default:
		return false
	}
}
