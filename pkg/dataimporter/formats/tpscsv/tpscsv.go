package tpscsv

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

type TPSCSV struct {
	Records []TPSRecord
}

type TPSRecord struct {
	Identifier string  `csv:"id"`
	Name       string  `csv:"name"`
	Address    string  `csv:"address"`
	Latitude   float64 `csv:"latitude"`
	Longitude  float64 `csv:"longitude"`
	Status     string  `csv:"status"`
}

func (t *TPSCSV) ParseFile(reader io.Reader) error {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	return gocsv.Unmarshal(reader, &t.Records)
}

func (t *TPSCSV) Import(datasource *wcdf.DataSource) error {
	log.Info().Msgf("Importing %d TPS records into Mongo", len(t.Records))

	collection := database.GetCollection("tps")

	var operations []mongo.WriteModel

	for _, record := range t.Records {
		if record.Identifier == "" {
			log.Debug().Interface("record", record).Msg("Skipping TPS record with no identifier")
			continue
		}

		tps := wcdf.TPS{
			PrimaryIdentifier: fmt.Sprintf("ID:TPS:%s", record.Identifier),

			ModificationDateTime: time.Now(),

			DataSource: datasource,

			Name:    record.Name,
			Address: record.Address,
			Status:  record.Status,
		}

		if record.Latitude != 0 || record.Longitude != 0 {
			tps.Location = &wcdf.Location{
				Type:        "Point",
				Coordinates: []float64{record.Longitude, record.Latitude},
			}
		}

		if tps.Status == "" {
			tps.Status = "active"
		}

		bsonRep, _ := bson.Marshal(bson.M{
			"$set":         tps,
			"$setOnInsert": bson.M{"creationdatetime": time.Now()},
		})
		updateModel := mongo.NewUpdateOneModel()
		updateModel.SetFilter(bson.M{"primaryidentifier": tps.PrimaryIdentifier})
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
		Msg("Imported TPS records")

	return nil
}
