package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTPSIndexes()
	createUsersIndexes()
	createSchedulesIndexes()
}

func createTPSIndexes() {
	tpsCollection := GetCollection("tps")
	tpsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2d"}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := tpsCollection.Indexes().CreateMany(context.Background(), tpsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createUsersIndexes() {
	usersCollection := GetCollection("users")
	usersIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := usersCollection.Indexes().CreateMany(context.Background(), usersIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createSchedulesIndexes() {
	schedulesCollection := GetCollection("schedules")
	schedulesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "driverref", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "routecompletiondata.tpsref", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := schedulesCollection.Indexes().CreateMany(context.Background(), schedulesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
