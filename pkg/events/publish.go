package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/redis_client"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

const queueName = "events-queue"

var eventsQueue rmq.Queue

// SetupQueue opens the shared events queue. Publish is a no-op until this
// has run successfully.
func SetupQueue() error {
	queue, err := redis_client.QueueConnection.OpenQueue(queueName)
	if err != nil {
		return err
	}

	eventsQueue = queue

	return nil
}

func Publish(event wcdf.Event) {
	if eventsQueue == nil {
		log.Debug().Str("type", string(event.Type)).Msg("Events queue not set up, dropping event")
		return
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal event")
		return
	}

	if err := eventsQueue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
	}
}
