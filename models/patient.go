package models

// Patient is a booking record binding patient contact details to exactly one
// slot. It is created as a side effect of a successful booking and never
// updated afterwards.
type Patient struct {
	BookingID string `bson:"bookingId" json:"bookingId"`
	UserID    string `bson:"userId" json:"userId"`
	SlotID    string `bson:"slotId" json:"slotId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
}
