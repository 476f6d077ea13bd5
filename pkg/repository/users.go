package repository

import (
	"context"

	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
)

type MongoUserSource struct {
}

func (s MongoUserSource) GetAllUsers(ctx context.Context) ([]wcdf.User, error) {
	usersCollection := database.GetCollection("users")

	cursor, err := usersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []wcdf.User{}
	for cursor.Next(ctx) {
		var user wcdf.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, cursor.Err()
}
