package dbwatch

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/redis_client"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SchedulesWatch struct {
	EventQueue rmq.Queue
}

type scheduleUpdate struct {
	OperationType     string `bson:"operationType"`
	UpdateDescription struct {
		UpdatedFields bson.M `bson:"updatedFields"`
	} `bson:"updateDescription"`
	FullDocument             wcdf.Schedule `bson:"fullDocument"`
	FullDocumentBeforeChange wcdf.Schedule `bson:"fullDocumentBeforeChange"`
}

func NewSchedulesWatch() *SchedulesWatch {
	eventQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start event queue")
	}

	return &SchedulesWatch{
		EventQueue: eventQueue,
	}
}

func (w *SchedulesWatch) Run() {
	log.Info().Msg("Starting dbwatch on collection schedules")
	collection := database.GetCollection("schedules")
	matchPipeline := bson.D{
		{
			Key: "$match", Value: bson.D{
				{
					Key: "operationType", Value: bson.D{
						{Key: "$in", Value: bson.A{"insert", "update"}},
					},
				},
			},
		},
	}

	opts := options.ChangeStream().SetFullDocumentBeforeChange(options.WhenAvailable).SetFullDocument(options.WhenAvailable)
	stream, err := collection.Watch(context.Background(), mongo.Pipeline{matchPipeline}, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to watch collection")
	}

	defer stream.Close(context.Background())

	for stream.Next(context.Background()) {
		var data scheduleUpdate

		if err := stream.Decode(&data); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		if data.OperationType == "insert" {
			log.Info().Str("id", data.FullDocument.PrimaryIdentifier).Msg("New Schedule inserted")

			w.publishEvent(wcdf.EventTypeScheduleCreated, data.FullDocument)
		} else if data.OperationType == "update" {
			if data.FullDocument.PrimaryIdentifier == "" {
				continue
			}

			// Detect a driver being assigned to the schedule
			if _, updated := data.UpdateDescription.UpdatedFields["driverref"]; updated {
				if data.FullDocument.HasAssignedDriver() && data.FullDocument.DriverRef != data.FullDocumentBeforeChange.DriverRef {
					log.Info().
						Str("id", data.FullDocument.PrimaryIdentifier).
						Str("driver", data.FullDocument.DriverRef).
						Msg("Schedule has been assigned")

					w.publishEvent(wcdf.EventTypeScheduleAssigned, data.FullDocument)
				}
			}

			// Detect completion records being pushed onto the route
			if w.completionDataUpdated(data.UpdateDescription.UpdatedFields) {
				newRecords := data.FullDocument.RouteCompletionData
				oldCount := len(data.FullDocumentBeforeChange.RouteCompletionData)

				for _, record := range newRecords[min(oldCount, len(newRecords)):] {
					var eventType wcdf.EventType = wcdf.EventTypeCompletionRecorded
					if record.HasIssue {
						eventType = wcdf.EventTypeCompletionWithIssue
					}

					log.Info().
						Str("id", data.FullDocument.PrimaryIdentifier).
						Str("tps", record.TPSRef).
						Msg("Schedule completion recorded")

					w.publishEvent(eventType, record)
				}
			}
		}
	}
}

// Pushes onto routecompletiondata show up as either the whole array or a
// positional key like routecompletiondata.2
func (w *SchedulesWatch) completionDataUpdated(updatedFields bson.M) bool {
	for key := range updatedFields {
		if key == "routecompletiondata" || strings.HasPrefix(key, "routecompletiondata.") {
			return true
		}
	}

	return false
}

func (w *SchedulesWatch) publishEvent(eventType wcdf.EventType, body interface{}) {
	eventBytes, _ := json.Marshal(wcdf.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Body:      body,
	})
	w.EventQueue.PublishBytes(eventBytes)
}
