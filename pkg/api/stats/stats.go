package stats

import (
	"context"
	"time"

	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

type RecordsStats struct {
	TPS       int64
	Users     int64
	Schedules int64

	SchedulesInProgress int64
	SchedulesCompleted  int64
}

var CurrentRecordsStats *RecordsStats

func UpdateRecordsStats() {
	CurrentRecordsStats = &RecordsStats{}

	for {
		tpsCollection := database.GetCollection("tps")
		numberTPS, _ := tpsCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.TPS = numberTPS

		usersCollection := database.GetCollection("users")
		numberUsers, _ := usersCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.Users = numberUsers

		schedulesCollection := database.GetCollection("schedules")
		numberSchedules, _ := schedulesCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.Schedules = numberSchedules

		numberInProgress, _ := schedulesCollection.CountDocuments(context.Background(),
			bson.M{"status": wcdf.ScheduleStatusInProgress})
		CurrentRecordsStats.SchedulesInProgress = numberInProgress

		numberCompleted, _ := schedulesCollection.CountDocuments(context.Background(),
			bson.M{"status": wcdf.ScheduleStatusCompleted})
		CurrentRecordsStats.SchedulesCompleted = numberCompleted

		time.Sleep(10 * time.Minute)
	}
}
