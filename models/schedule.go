package models

// Slot is a fixed time interval under a doctor's availability for one date,
// bookable at most once. Times are "HH:MM:SS" wall-clock strings.
type Slot struct {
	ID     string `bson:"id" json:"slotId"`
	Start  string `bson:"start" json:"start"`
	End    string `bson:"end" json:"end"`
	Booked bool   `bson:"booked" json:"isBooked"`
}

// Availability is the set of slots a doctor offers on a specific date
// ("YYYY-MM-DD").
type Availability struct {
	ID       string `bson:"id" json:"availabilityId"`
	DoctorID string `bson:"doctorId" json:"doctorId"`
	Date     string `bson:"date" json:"date"`
	Slots    []Slot `bson:"slots" json:"slots"`
}

// RecommendationCandidate is a presentation-only projection of an open slot
// offered as an alternative to a booking request that could not be satisfied.
type RecommendationCandidate struct {
	Doctor     string `json:"doctor"`
	Speciality string `json:"speciality"`
	Date       string `json:"date"`
	SlotID     string `json:"slotId"`
	Start      string `json:"start"`
	End        string `json:"end"`
}
