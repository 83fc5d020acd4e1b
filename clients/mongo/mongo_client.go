package mongo_client

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"
)

var (
	Client *mongo.Client
)

// Connect dials MongoDB from MONGO_URI and verifies the connection with a
// ping. Call it once from main before building mongo-backed repositories.
func Connect(ctx context.Context) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	mongoURI := os.Getenv("MONGO_URI")
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)

	var err error
	Client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	pingCmd := bson.M{"ping": 1}
	if err := Client.Database("admin").RunCommand(ctx, pingCmd).Err(); err != nil {
		return err
	}

	zap.L().Info("Connected to MongoDB")
	return nil
}

// NegotiationCollection returns the collection the negotiation records go
// into, honoring DATABASE and NEGOTIATION_COLLECTION overrides.
func NegotiationCollection() *mongo.Collection {
	database := os.Getenv("DATABASE")
	if database == "" {
		database = "estatebackend"
	}
	collection := os.Getenv("NEGOTIATION_COLLECTION")
	if collection == "" {
		collection = "negotiations"
	}
	return Client.Database(database).Collection(collection)
}
