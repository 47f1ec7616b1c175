package booking

import "superclinic/models"

// Result statuses. Absence of data is "not_found", never an error: the
// assistant is expected to relay it, not fail on it.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// InputError marks a malformed argument (bad date, bad time range). The
// message is safe to surface to the model and the end user.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// SpecialityRef is the embedded speciality view in doctor listings.
type SpecialityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DoctorInfo is the full doctor view returned by the list operation.
type DoctorInfo struct {
	DoctorID   string        `json:"doctorId"`
	DoctorName string        `json:"doctorName"`
	Email      string        `json:"email"`
	Address    string        `json:"address,omitempty"`
	Speciality SpecialityRef `json:"speciality"`
}

// FilteredDoctor is the flattened doctor view returned by speciality filtering.
type FilteredDoctor struct {
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	Speciality string `json:"speciality"`
}

// DoctorRef identifies a doctor inside availability and booking payloads.
type DoctorRef struct {
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Speciality string `json:"speciality"`
}

type DoctorListResult struct {
	Status  string       `json:"status"`
	Type    string       `json:"type"`
	Total   int          `json:"total"`
	Doctors []DoctorInfo `json:"doctors"`
}

type FilterResult struct {
	Status     string           `json:"status"`
	Type       string           `json:"type,omitempty"`
	Message    string           `json:"message,omitempty"`
	Speciality string           `json:"speciality,omitempty"`
	Total      int              `json:"total"`
	Doctors    []FilteredDoctor `json:"doctors"`
}

type SlotView struct {
	SlotID   string `json:"slotId"`
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}

type AvailabilityView struct {
	AvailabilityID string     `json:"availabilityId"`
	Date           string     `json:"date"`
	Slots          []SlotView `json:"slots"`
}

type AvailabilityResult struct {
	Status       string             `json:"status"`
	Type         string             `json:"type,omitempty"`
	Message      string             `json:"message,omitempty"`
	Doctor       *DoctorRef         `json:"doctor,omitempty"`
	Availability []AvailabilityView `json:"availability"`
}

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AppointmentView struct {
	Date   string     `json:"date"`
	SlotID string     `json:"slotId"`
	Time   TimeWindow `json:"time"`
}

type PatientView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingResult is the single outcome type for book attempts. Status selects
// the variant: success carries doctor/appointment/patient, error carries
// either alternatives (slot taken) or a plain message (bad input).
type BookingResult struct {
	Status       string                           `json:"status"`
	Type         string                           `json:"type,omitempty"`
	Message      string                           `json:"message"`
	Doctor       *DoctorRef                       `json:"doctor,omitempty"`
	Appointment  *AppointmentView                 `json:"appointment,omitempty"`
	Patient      *PatientView                     `json:"patient,omitempty"`
	Alternatives []models.RecommendationCandidate `json:"alternatives,omitempty"`
}
