package events

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/consumer"
	"github.com/trashtrack/trashtrack/pkg/database"
	"github.com/trashtrack/trashtrack/pkg/redis_client"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events server",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       queueName,
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewEventsBatchConsumer(),
					}
					redisConsumer.Setup()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test event",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					if err := SetupQueue(); err != nil {
						log.Fatal().Err(err).Msg("Failed to start event queue")
					}

					completionRecord := wcdf.CompletionRecord{
						TPSRef:      "ID:TPS:TEST",
						CompletedAt: time.Now(),
						Notes:       "Bins were overflowing onto the street",
						HasIssue:    true,
					}

					Publish(wcdf.Event{
						Type:      wcdf.EventTypeCompletionWithIssue,
						Timestamp: time.Now(),
						Body:      completionRecord,
					})

					return nil
				},
			},
		},
	}
}
