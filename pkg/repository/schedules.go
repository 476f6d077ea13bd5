package repository

import (
	"context"

	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

type MongoScheduleSource struct {
}

func (s MongoScheduleSource) GetAllSchedules(ctx context.Context) ([]wcdf.Schedule, error) {
	schedulesCollection := database.GetCollection("schedules")

	cursor, err := schedulesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	schedules := []wcdf.Schedule{}
	for cursor.Next(ctx) {
		var schedule wcdf.Schedule
		if err := cursor.Decode(&schedule); err != nil {
			return nil, err
		}

		schedules = append(schedules, schedule)
	}

	return schedules, cursor.Err()
}
