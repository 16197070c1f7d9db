package db

import (
	"context"

	"roost/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Users struct {
	coll *mongo.Collection
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	_, err := u.coll.InsertOne(ctx, user)
	return err
}

// FindByEmail returns (nil, nil) when no account matches.
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
