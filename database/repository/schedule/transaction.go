// File: database/repository/schedule/transaction.go
package scheduleRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"superclinic/models"
)

// BookSlot flips the slot's booked flag and records the patient inside one
// mongo transaction. The update filter requires booked=false, so a slot that
// was taken between lookup and commit aborts with ErrSlotTaken and leaves no
// partial state behind.
func (r *mongoScheduleRepo) BookSlot(ctx context.Context, availabilityID, slotID string, patient models.Patient) error {
	client := r.availColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id": availabilityID,
			"slots": bson.M{
				"$elemMatch": bson.M{
					"id":     slotID,
					"booked": false,
				},
			},
		}
		update := bson.M{
			"$set": bson.M{"slots.$.booked": true},
		}

		res, err := r.availColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("mark slot booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotTaken
		}

		if _, err := r.patientColl.InsertOne(sc, patient); err != nil {
			return fmt.Errorf("insert patient record failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
