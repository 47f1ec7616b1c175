// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"superclinic/database"
	"superclinic/models"
)

// ErrSlotTaken is returned by BookSlot when the target slot no longer exists
// in an unbooked state.
var ErrSlotTaken = errors.New("slot not available or already booked")

// Repository exposes availability/slot lookups and the single booking
// mutation. All list queries return availabilities sorted by date ascending.
type Repository interface {
	ByDoctorAndDate(ctx context.Context, doctorID, date string) (*models.Availability, error)
	ByDoctor(ctx context.Context, doctorID string) ([]models.Availability, error)
	ByDoctorsAndDate(ctx context.Context, doctorIDs []string, date string) ([]models.Availability, error)
	ByDoctors(ctx context.Context, doctorIDs []string) ([]models.Availability, error)

	// BookSlot marks the slot booked and inserts the patient record in one
	// transaction; either both persist or neither does.
	BookSlot(ctx context.Context, availabilityID, slotID string, patient models.Patient) error
}

type mongoScheduleRepo struct {
	availColl   *mongo.Collection
	patientColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB schedule repository.
func NewMongoScheduleRepo() Repository {
	db := database.MongoClient.Database("superclinic")
	return &mongoScheduleRepo{
		availColl:   db.Collection("availabilities"),
		patientColl: db.Collection("patients"),
	}
}
