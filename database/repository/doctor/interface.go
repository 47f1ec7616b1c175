// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"superclinic/database"
	"superclinic/models"
)

// Repository exposes read-only access to doctor and speciality records.
// Absence of a record is reported as a nil result, not an error.
type Repository interface {
	GetAll(ctx context.Context) ([]models.Doctor, error)
	GetByName(ctx context.Context, name string) (*models.Doctor, error)
	GetBySpeciality(ctx context.Context, specialityID string) ([]models.Doctor, error)
	GetSpecialityByID(ctx context.Context, id string) (*models.Speciality, error)
	ListSpecialities(ctx context.Context) ([]models.Speciality, error)
	SearchSpecialities(ctx context.Context, name string) ([]models.Speciality, error)
}

type mongoDoctorRepo struct {
	doctorColl     *mongo.Collection
	specialityColl *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB doctor repository.
func NewMongoDoctorRepo() Repository {
	db := database.MongoClient.Database("superclinic")
	return &mongoDoctorRepo{
		doctorColl:     db.Collection("doctors"),
		specialityColl: db.Collection("specialities"),
	}
}
