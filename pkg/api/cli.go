package api

import (
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/api/routes"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/events"
	"github.com/trashtrack/trashtrack/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}

					if err := events.SetupQueue(); err != nil {
						log.Error().Err(err).Msg("Failed to open events queue, events will not be published")
					}

					routes.SetupCaches()

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
