package repository

import (
	"context"

	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

type MongoTPSSource struct {
}

func (s MongoTPSSource) GetAllTPS(ctx context.Context) ([]wcdf.TPS, error) {
	tpsCollection := database.GetCollection("tps")

	cursor, err := tpsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tpsRecords := []wcdf.TPS{}
	for cursor.Next(ctx) {
		var tps wcdf.TPS
		if err := cursor.Decode(&tps); err != nil {
			return nil, err
		}

		tpsRecords = append(tpsRecords, tps)
	}

	return tpsRecords, cursor.Err()
}
