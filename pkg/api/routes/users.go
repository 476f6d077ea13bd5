package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/util"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var allowedUserRoles = []string{string(wcdf.UserRoleAdmin), string(wcdf.UserRoleDriver)}

func UsersRouter(router fiber.Router) {
	router.Get("/", listUsers)
	router.Get("/:identifier", getUser)
	router.Post("/", createUser)
	router.Patch("/:identifier", updateUser)
	router.Delete("/:identifier", deleteUser)
}

func listUsers(c *fiber.Ctx) error {
	query := bson.M{}

	if role := c.Query("role"); role != "" {
		if !util.ContainsString(allowedUserRoles, role) {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Unknown user role",
			})
		}

		query["role"] = role
	}

	users := []wcdf.User{}

	usersCollection := database.GetCollection("users")
	cursor, _ := usersCollection.Find(context.Background(), query)

	for cursor.Next(context.TODO()) {
		var user wcdf.User
		err := cursor.Decode(&user)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode User")
			continue
		}

		users = append(users, user)
	}

	return c.JSON(users)
}

func getUser(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	usersCollection := database.GetCollection("users")
	var user *wcdf.User
	usersCollection.FindOne(context.Background(), bson.M{"primaryidentifier": identifier}).Decode(&user)

	if user == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find User matching User Identifier",
		})
	}

	return c.JSON(user)
}

func createUser(c *fiber.Ctx) error {
	var user wcdf.User
	if err := c.BodyParser(&user); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if user.PrimaryIdentifier == "" || user.Name == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "PrimaryIdentifier and Name are required",
		})
	}

	if !util.ContainsString(allowedUserRoles, string(user.Role)) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Unknown user role",
		})
	}

	user.CreationDateTime = time.Now()
	user.ModificationDateTime = time.Now()
	if user.Status == "" {
		user.Status = "active"
	}

	usersCollection := database.GetCollection("users")

	filter := bson.M{"primaryidentifier": user.PrimaryIdentifier}
	update := bson.M{"$set": user}
	opts := options.Update().SetUpsert(true)
	_, err := usersCollection.UpdateOne(context.Background(), filter, update, opts)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func updateUser(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var requestBody struct {
		Name        string
		Role        string
		PhoneNumber string
		Status      string
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updatedFields := bson.M{"modificationdatetime": time.Now()}

	if requestBody.Name != "" {
		updatedFields["name"] = requestBody.Name
	}
	if requestBody.Role != "" {
		if !util.ContainsString(allowedUserRoles, requestBody.Role) {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Unknown user role",
			})
		}

		updatedFields["role"] = requestBody.Role
	}
	if requestBody.PhoneNumber != "" {
		updatedFields["phonenumber"] = requestBody.PhoneNumber
	}
	if requestBody.Status != "" {
		updatedFields["status"] = requestBody.Status
	}

	usersCollection := database.GetCollection("users")
	result, err := usersCollection.UpdateOne(context.Background(), bson.M{"primaryidentifier": identifier}, bson.M{"$set": updatedFields})

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find User matching User Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func deleteUser(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	usersCollection := database.GetCollection("users")
	result, err := usersCollection.DeleteOne(context.Background(), bson.M{"primaryidentifier": identifier})

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find User matching User Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
