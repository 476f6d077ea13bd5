package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/transforms"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

func TPSRouter(router fiber.Router) {
	router.Get("/", listTPS)
	router.Get("/:identifier", getTPS)
}

func listTPS(c *fiber.Ctx) error {
	query := bson.M{"status": "active"}

	if c.Query("bounds") != "" {
		locationQuery, err := getBoundsQuery(c)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		query = bson.M{"$and": bson.A{bson.M{"status": "active"}, bson.M{"location": locationQuery}}}
	}

	tpsRecords := []wcdf.TPS{}

	tpsCollection := database.GetCollection("tps")
	cursor, _ := tpsCollection.Find(context.Background(), query)

	for cursor.Next(context.TODO()) {
		var tps wcdf.TPS
		err := cursor.Decode(&tps)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode TPS")
			continue
		}

		tpsRecords = append(tpsRecords, tps)
	}

	transforms.Transform(tpsRecords)

	return c.JSON(tpsRecords)
}

func getTPS(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var tps *wcdf.TPS
	if tpsCache != nil {
		tps = tpsCache.Get(identifier)
	} else {
		tpsCollection := database.GetCollection("tps")
		tpsCollection.FindOne(context.Background(), bson.M{"primaryidentifier": identifier}).Decode(&tps)
	}

	if tps == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find TPS matching TPS Identifier",
		})
	}

	transforms.Transform(tps)

	return c.JSON(tps)
}
