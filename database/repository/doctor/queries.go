// File: database/repository/doctor/queries.go
package doctorRepo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"superclinic/models"
)

func (r *mongoDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.doctorColl.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *mongoDoctorRepo) GetByName(ctx context.Context, name string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.doctorColl.FindOne(ctx, bson.M{"name": name}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) GetBySpeciality(ctx context.Context, specialityID string) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.doctorColl.Find(ctx, bson.M{"specialityId": specialityID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *mongoDoctorRepo) GetSpecialityByID(ctx context.Context, id string) (*models.Speciality, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var speciality models.Speciality
	err := r.specialityColl.FindOne(ctx, bson.M{"id": id}).Decode(&speciality)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &speciality, nil
}

func (r *mongoDoctorRepo) ListSpecialities(ctx context.Context) ([]models.Speciality, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.specialityColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var specialities []models.Speciality
	if err := cursor.All(ctx, &specialities); err != nil {
		return nil, err
	}
	return specialities, nil
}

func (r *mongoDoctorRepo) SearchSpecialities(ctx context.Context, name string) ([]models.Speciality, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	cursor, err := r.specialityColl.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var specialities []models.Speciality
	if err := cursor.All(ctx, &specialities); err != nil {
		return nil, err
	}
	return specialities, nil
}
