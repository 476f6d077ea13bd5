package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var Instance *MongoInstance

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "trashtrack"

func Connect() error {
	connectionString := defaultConnectionString
	dbName := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["TRASHTRACK_MONGODB_CONNECTION"] != "" {
		connectionString = env["TRASHTRACK_MONGODB_CONNECTION"]
	}

	if env["TRASHTRACK_MONGODB_DATABASE"] != "" {
		dbName = env["TRASHTRACK_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	Instance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	// Mongo may still be starting when we are, so ping with a backoff
	// before giving up on the connection
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 1 * time.Minute

	err = backoff.Retry(func() error {
		return client.Ping(context.Background(), nil)
	}, retryBackoff)
	if err != nil {
		return err
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return Instance.Database.Collection(collectionName)
}
