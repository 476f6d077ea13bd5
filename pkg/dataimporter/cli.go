package dataimporter

import (
	"time"

	"github.com/trashtrack/trashtrack/pkg/dataimporter/insertrecords"
	"github.com/trashtrack/trashtrack/pkg/dataimporter/manager"

	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/urfave/cli/v2"

	"github.com/rs/zerolog/log"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & import third party datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "repeat-every",
						Usage:    "Repeat this file import every X seconds",
						Required: false,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					datasetid := c.String("id")

					repeatEvery := c.String("repeat-every")
					repeat := repeatEvery != ""
					var repeatDuration time.Duration
					if repeat {
						var err error
						repeatDuration, err = time.ParseDuration(repeatEvery)

						if err != nil {
							return err
						}
					}

					dataset, err := manager.GetDataset(datasetid)
					if err != nil {
						return err
					}

					for {
						startTime := time.Now()

						err := manager.ImportDataset(&dataset)

						if err != nil {
							return err
						}
						if !repeat {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							time.Sleep(waitTime)
						}
					}

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					for _, dataset := range manager.GetRegisteredDataSets() {
						log.Info().
							Str("id", dataset.Identifier).
							Str("format", string(dataset.Format)).
							Str("provider", dataset.Provider.Name).
							Msg("Registered dataset")
					}

					return nil
				},
			},
			{
				Name:  "insert-records",
				Usage: "Upsert the static records into the database",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					insertrecords.Insert()

					return nil
				},
			},
		},
	}
}
