package db

import (
	"context"

	"roost/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Bookings struct {
	coll       *mongo.Collection
	placesColl string
}

func (b *Bookings) Insert(ctx context.Context, booking *models.Booking) error {
	_, err := b.coll.InsertOne(ctx, booking)
	return err
}

// ByUser returns the user's bookings, each joined with its place.
func (b *Bookings) ByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	cursor, err := b.coll.Aggregate(ctx, b.joinedPipeline(bson.D{{Key: "userid", Value: userID}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ByIDForUser returns one booking scoped to its creator, joined with its
// place, or (nil, nil) when no booking matches both id and user.
func (b *Bookings) ByIDForUser(ctx context.Context, id, userID string) (*models.Booking, error) {
	cursor, err := b.coll.Aggregate(ctx, b.joinedPipeline(bson.D{
		{Key: "bookingid", Value: id},
		{Key: "userid", Value: userID},
	}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, err
		}
		return &booking, nil
	}
	return nil, cursor.Err()
}

func (b *Bookings) joinedPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: b.placesColl},
			{Key: "localField", Value: "placeid"},
			{Key: "foreignField", Value: "placeid"},
			{Key: "as", Value: "place"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$place"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
