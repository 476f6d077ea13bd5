package userscsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersCSV struct {
	Records []UserRecord
}

type UserRecord struct {
	Identifier  string `csv:"id"`
	Name        string `csv:"name"`
	Role        string `csv:"role"`
	PhoneNumber string `csv:"phone_number"`
	Status      string `csv:"status"`
}

func (u *UsersCSV) ParseFile(reader io.Reader) error {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	return gocsv.Unmarshal(reader, &u.Records)
}

func (u *UsersCSV) Import(datasource *wcdf.DataSource) error {
	log.Info().Msgf("Importing %d user records into Mongo", len(u.Records))

	collection := database.GetCollection("users")

	var operations []mongo.WriteModel

	for _, record := range u.Records {
		if record.Identifier == "" {
			log.Debug().Interface("record", record).Msg("Skipping user record with no identifier")
			continue
		}

		role := wcdf.UserRole(record.Role)
		if role != wcdf.UserRoleAdmin && role != wcdf.UserRoleDriver {
			log.Debug().Str("role", record.Role).Msg("Skipping user record with unknown role")
			continue
		}

		user := wcdf.User{
			PrimaryIdentifier: fmt.Sprintf("ID:USER:%s", record.Identifier),

			ModificationDateTime: time.Now(),

			Name:        record.Name,
			Role:        role,
			PhoneNumber: record.PhoneNumber,
			Status:      record.Status,
		}

		if user.Status == "" {
			user.Status = "active"
		}

		bsonRep, _ := bson.Marshal(bson.M{
			"$set":         user,
			"$setOnInsert": bson.M{"creationdatetime": time.Now()},
		})
		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"primaryidentifier": user.PrimaryIdentifier})
		updateModel.SetUpdate(bsonRep)
		updateModel.SetUpsert(true)

		operations = append(operations, updateModel)
	}

	if len(operations) == 0 {
		return nil
	}

	result, err := collection.BulkWrite(context.Background(), operations, options.BulkWrite())
	if err != nil {
		return err
	}

	log.Info().
		Int64("upserted", result.UpsertedCount).
		Int64("modified", result.ModifiedCount).
		Msg("Imported user records")

	return nil
}
