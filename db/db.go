package db

import (
	"context"

	"roost/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the document-store collaborator. Each wrapped collection
// provides single-document atomicity; nothing here takes locks.
type Store struct {
	client   *mongo.Client
	Users    *Users
	Places   *Places
	Bookings *Bookings
}

func Connect(ctx context.Context, cfg config.Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(cfg.Database)
	store := &Store{
		client:   client,
		Users:    &Users{coll: database.Collection("users")},
		Places:   &Places{coll: database.Collection("places")},
		Bookings: &Bookings{coll: database.Collection("bookings"), placesColl: "places"},
	}
	if err := store.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.Users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
