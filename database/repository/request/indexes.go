package requestRepo

import (
	"context"
	"time"

	"github.com/DDismyname28/home-portal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureRequestIndexes creates the lookup indexes for the requests
// collection.
func EnsureRequestIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := database.DB().Collection("requests")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "requesterId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "providerId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "provider", Value: 1}},
		},
	})
	return err
}
