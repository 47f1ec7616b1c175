// File: database/repository/schedule/queries.go
package scheduleRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"superclinic/models"
)

var dateAsc = options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

func (r *mongoScheduleRepo) ByDoctorAndDate(ctx context.Context, doctorID, date string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var availability models.Availability
	err := r.availColl.FindOne(ctx, bson.M{"doctorId": doctorID, "date": date}).Decode(&availability)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

func (r *mongoScheduleRepo) ByDoctor(ctx context.Context, doctorID string) ([]models.Availability, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *mongoScheduleRepo) ByDoctorsAndDate(ctx context.Context, doctorIDs []string, date string) ([]models.Availability, error) {
	return r.find(ctx, bson.M{"doctorId": bson.M{"$in": doctorIDs}, "date": date})
}

func (r *mongoScheduleRepo) ByDoctors(ctx context.Context, doctorIDs []string) ([]models.Availability, error) {
	return r.find(ctx, bson.M{"doctorId": bson.M{"$in": doctorIDs}})
}

func (r *mongoScheduleRepo) find(ctx context.Context, filter bson.M) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.availColl.Find(ctx, filter, dateAsc)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var availabilities []models.Availability
	if err := cursor.All(ctx, &availabilities); err != nil {
		return nil, err
	}
	return availabilities, nil
}
