package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/api"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/dataimporter"
	"github.com/trashtrack/trashtrack/pkg/dbwatch"
	"github.com/trashtrack/trashtrack/pkg/elastic_client"
	"github.com/trashtrack/trashtrack/pkg/events"
	"github.com/trashtrack/trashtrack/pkg/transforms"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRASHTRACK_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRASHTRACK_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	transforms.SetupClient()

	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := elastic_client.Connect(false); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Elasticsearch")
	}

	app := &cli.App{
		Name:        "trashtrack",
		Description: "Single binary of truth for TrashTrack - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			events.RegisterCLI(),
			dbwatch.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
