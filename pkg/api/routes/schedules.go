package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/events"
	"github.com/trashtrack/trashtrack/pkg/repository"
	"github.com/trashtrack/trashtrack/pkg/routedetails"
	"github.com/trashtrack/trashtrack/pkg/util"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"

	iso8601 "github.com/senseyeio/duration"
)

func SchedulesRouter(router fiber.Router) {
	router.Get("/", listSchedules)
	router.Get("/:identifier", getSchedule)
	router.Get("/:identifier/route_details", getScheduleRouteDetails)
	router.Post("/:identifier/completions", postScheduleCompletion)
}

func listSchedules(c *fiber.Ctx) error {
	query := bson.M{}

	if driverRef := c.Query("driver"); driverRef != "" {
		scheduleQuery := wcdf.QuerySchedule{DriverRef: driverRef}
		query = scheduleQuery.ToBson()
	}

	if dateString := c.Query("date"); dateString != "" {
		date, err := time.Parse("2006-01-02", dateString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter date should be formatted as 2006-01-02",
			})
		}

		// Shift by a day to get the exclusive upper bound of the window
		nextDayDuration, _ := iso8601.ParseISO8601("P1D")
		dayAfter := nextDayDuration.Shift(date)

		query["date"] = bson.M{"$gte": date, "$lt": dayAfter}
	}

	schedules := []wcdf.Schedule{}

	schedulesCollection := database.GetCollection("schedules")
	cursor, _ := schedulesCollection.Find(context.Background(), query)

	for cursor.Next(context.TODO()) {
		var schedule wcdf.Schedule
		err := cursor.Decode(&schedule)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Schedule")
			continue
		}

		schedules = append(schedules, schedule)
	}

	if status := c.Query("status"); status != "" {
		util.InPlaceFilter(&schedules, func(schedule wcdf.Schedule) bool {
			return schedule.Status == wcdf.ScheduleStatus(status)
		})
	}

	return c.JSON(schedules)
}

func getSchedule(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	scheduleQuery := wcdf.QuerySchedule{PrimaryIdentifier: identifier}

	schedulesCollection := database.GetCollection("schedules")
	var schedule *wcdf.Schedule
	schedulesCollection.FindOne(context.Background(), scheduleQuery.ToBson()).Decode(&schedule)

	if schedule == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Schedule matching Schedule Identifier",
		})
	}

	return c.JSON(schedule)
}

func getScheduleRouteDetails(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	assembler := routedetails.NewAssembler(
		repository.MongoScheduleSource{},
		repository.MongoUserSource{},
		repository.MongoTPSSource{},
	)

	err := assembler.LoadRouteDetails(c.UserContext(), identifier)
	snapshot := assembler.State().Current()

	if errors.Is(err, routedetails.ErrScheduleNotFound) {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": snapshot.Error,
		})
	} else if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": snapshot.Error,
		})
	}

	snapshotReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, &snapshot)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce RouteDetails",
		})
	}

	return c.JSON(snapshotReduced)
}

func postScheduleCompletion(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var requestBody struct {
		TPSRef        string
		ProofPhotoURL string
		Notes         string
		HasIssue      bool
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if requestBody.TPSRef == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "TPSRef is required",
		})
	}

	schedulesCollection := database.GetCollection("schedules")

	scheduleQuery := wcdf.QuerySchedule{PrimaryIdentifier: identifier}
	var schedule *wcdf.Schedule
	schedulesCollection.FindOne(context.Background(), scheduleQuery.ToBson()).Decode(&schedule)

	if schedule == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Schedule matching Schedule Identifier",
		})
	}

	if !util.ContainsString(schedule.TPSRoute, requestBody.TPSRef) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "TPS is not part of this schedules route",
		})
	}

	completionRecord := wcdf.CompletionRecord{
		TPSRef:        requestBody.TPSRef,
		CompletedAt:   time.Now(),
		ProofPhotoURL: requestBody.ProofPhotoURL,
		Notes:         requestBody.Notes,
		HasIssue:      requestBody.HasIssue,
	}

	update := bson.M{
		"$push": bson.M{"routecompletiondata": completionRecord},
		"$set": bson.M{
			"modificationdatetime": time.Now(),
			"status":               wcdf.ScheduleStatusInProgress,
		},
	}
	_, err := schedulesCollection.UpdateOne(context.Background(), scheduleQuery.ToBson(), update)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	eventType := wcdf.EventTypeCompletionRecorded
	if completionRecord.HasIssue {
		eventType = wcdf.EventTypeCompletionWithIssue
	}

	events.Publish(wcdf.Event{
		Type:      wcdf.EventType(eventType),
		Timestamp: time.Now(),
		Body:      completionRecord,
	})

	return c.JSON(fiber.Map{
		"success": true,
	})
}
