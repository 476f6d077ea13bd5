package events

import (
	"bytes"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/elastic_client"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

const eventsIndexName = "trashtrack-events-1"

type EventsBatchConsumer struct {
}

func NewEventsBatchConsumer() *EventsBatchConsumer {
	return &EventsBatchConsumer{}
}

func (consumer *EventsBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var event wcdf.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		elastic_client.IndexRequest(eventsIndexName, bytes.NewReader([]byte(payload)))

		notificationData := event.GetNotificationData()

		if notificationData.Message == "" {
			pretty.Println(payload)
			continue
		}

		log.Info().
			Str("type", string(event.Type)).
			Str("title", notificationData.Title).
			Str("message", notificationData.Message).
			Msg("Event")
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume event")
		}
	}
}
