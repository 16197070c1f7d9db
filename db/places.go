package db

import (
	"context"
	"time"

	"roost/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Places struct {
	coll *mongo.Collection
}

func (p *Places) Insert(ctx context.Context, place *models.Place) error {
	_, err := p.coll.InsertOne(ctx, place)
	return err
}

// ByID returns (nil, nil) when the place does not exist.
func (p *Places) ByID(ctx context.Context, id string) (*models.Place, error) {
	var place models.Place
	err := p.coll.FindOne(ctx, bson.M{"placeid": id}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (p *Places) ByOwner(ctx context.Context, ownerID string) ([]models.Place, error) {
	return p.find(ctx, bson.M{"owner": ownerID})
}

func (p *Places) All(ctx context.Context) ([]models.Place, error) {
	return p.find(ctx, bson.M{})
}

func (p *Places) find(ctx context.Context, filter bson.M) ([]models.Place, error) {
	cursor, err := p.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// UpdateOwned applies the place's mutable fields where both id and owner
// match, as one conditional UpdateOne. The caller only learns
// matched-or-not.
func (p *Places) UpdateOwned(ctx context.Context, id, ownerID string, fields models.Place) (bool, error) {
	result, err := p.coll.UpdateOne(ctx,
		bson.M{"placeid": id, "owner": ownerID},
		bson.M{"$set": bson.M{
			"title":       fields.Title,
			"address":     fields.Address,
			"photos":      fields.Photos,
			"description": fields.Description,
			"perks":       fields.Perks,
			"extrainfo":   fields.ExtraInfo,
			"checkin":     fields.CheckIn,
			"checkout":    fields.CheckOut,
			"maxguests":   fields.MaxGuests,
			"price":       fields.Price,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
