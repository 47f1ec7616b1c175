package assistant

import (
	"context"
	"errors"
	"time"

	"superclinic/models"
	"superclinic/services/booking"
)

// scriptedClient replays a fixed sequence of replies or errors.
type scriptedClient struct {
	replies []models.ChatMessage
	errs    []error
	calls   int

	// lastMessages captures the history sent on the most recent call.
	lastMessages []models.ChatMessage
}

func (c *scriptedClient) ChatCompletion(_ context.Context, messages []models.ChatMessage, _ []models.ToolSpec) (models.ChatMessage, error) {
	c.lastMessages = messages
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return models.ChatMessage{}, c.errs[i]
	}
	if i < len(c.replies) {
		return c.replies[i], nil
	}
	return models.ChatMessage{Role: models.RoleAssistant, Content: "done"}, nil
}

// fakeBookingService records calls and returns canned results.
type fakeBookingService struct {
	doctorsResult      *booking.DoctorListResult
	filterResult       *booking.FilterResult
	availabilityResult *booking.AvailabilityResult
	bookResult         *booking.BookingResult
	recommendResult    []models.RecommendationCandidate
	err                error

	filterArg       string
	availabilityArg struct {
		doctorName    string
		date          string
		includeBooked bool
	}
	bookRequests []booking.BookingRequest
}

func (f *fakeBookingService) GetDoctors(_ context.Context) (*booking.DoctorListResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.doctorsResult != nil {
		return f.doctorsResult, nil
	}
	return &booking.DoctorListResult{Status: booking.StatusSuccess, Doctors: []booking.DoctorInfo{}}, nil
}

func (f *fakeBookingService) FilterDoctors(_ context.Context, speciality string) (*booking.FilterResult, error) {
	f.filterArg = speciality
	if f.err != nil {
		return nil, f.err
	}
	if f.filterResult != nil {
		return f.filterResult, nil
	}
	return &booking.FilterResult{Status: booking.StatusSuccess, Doctors: []booking.FilteredDoctor{}}, nil
}

func (f *fakeBookingService) GetDoctorAvailability(_ context.Context, doctorName, date string, includeBooked bool) (*booking.AvailabilityResult, error) {
	f.availabilityArg.doctorName = doctorName
	f.availabilityArg.date = date
	f.availabilityArg.includeBooked = includeBooked
	if f.err != nil {
		return nil, f.err
	}
	if f.availabilityResult != nil {
		return f.availabilityResult, nil
	}
	return &booking.AvailabilityResult{Status: booking.StatusSuccess}, nil
}

func (f *fakeBookingService) BookAppointment(_ context.Context, req booking.BookingRequest) (*booking.BookingResult, error) {
	f.bookRequests = append(f.bookRequests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.bookResult != nil {
		return f.bookResult, nil
	}
	return &booking.BookingResult{Status: booking.StatusSuccess, Message: "booked"}, nil
}

func (f *fakeBookingService) RecommendAlternatives(_ context.Context, _, _, _, _ string) ([]models.RecommendationCandidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recommendResult, nil
}

func newTestService(llm Client, bookingSvc booking.Service) *Service {
	svc := NewService(llm, NewMemoryStore(0, 0), bookingSvc, 0)
	svc.sleep = func(time.Duration) {}
	return svc
}

var errProvider = errors.New("provider exploded")
