package models

// Speciality groups doctors by medical discipline.
type Speciality struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Doctor is a bookable practitioner. Lookups from the assistant use the
// display name as the key; two doctors sharing a name resolve to the first
// match, which is a known limitation of the tool surface.
type Doctor struct {
	ID           string `bson:"id" json:"doctorId"`
	Name         string `bson:"name" json:"doctorName"`
	Email        string `bson:"email" json:"email"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	SpecialityID string `bson:"specialityId" json:"specialityId"`
}
