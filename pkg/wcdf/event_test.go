package wcdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvent(t *testing.T, event Event) Event {
	eventBytes, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(eventBytes, &decoded))

	return decoded
}

func TestGetNotificationDataCompletionRecorded(t *testing.T) {
	event := decodeEvent(t, Event{
		Type:      EventTypeCompletionRecorded,
		Timestamp: time.Now(),
		Body: CompletionRecord{
			TPSRef:      "ID:TPS:MEN-001",
			CompletedAt: time.Now(),
		},
	})

	notificationData := event.GetNotificationData()

	assert.Equal(t, "Stop completed", notificationData.Title)
	assert.Contains(t, notificationData.Message, "ID:TPS:MEN-001")
}

func TestGetNotificationDataCompletionWithIssue(t *testing.T) {
	event := decodeEvent(t, Event{
		Type:      EventTypeCompletionWithIssue,
		Timestamp: time.Now(),
		Body: CompletionRecord{
			TPSRef:   "ID:TPS:MEN-001",
			Notes:    "Access road blocked",
			HasIssue: true,
		},
	})

	notificationData := event.GetNotificationData()

	assert.Equal(t, "Issue reported", notificationData.Title)
	assert.Contains(t, notificationData.Message, "ID:TPS:MEN-001")
	assert.Contains(t, notificationData.Message, "Access road blocked")
}

func TestGetNotificationDataScheduleAssigned(t *testing.T) {
	event := decodeEvent(t, Event{
		Type:      EventTypeScheduleAssigned,
		Timestamp: time.Now(),
		Body: Schedule{
			PrimaryIdentifier: "ID:SCHEDULE:S1",
			DriverRef:         "ID:USER:U1",
		},
	})

	notificationData := event.GetNotificationData()

	assert.Equal(t, "Schedule assigned", notificationData.Title)
	assert.Contains(t, notificationData.Message, "ID:SCHEDULE:S1")
	assert.Contains(t, notificationData.Message, "ID:USER:U1")
}

func TestGetNotificationDataNonMapBody(t *testing.T) {
	event := Event{
		Type:      EventTypeScheduleCreated,
		Timestamp: time.Now(),
		Body:      "not a map",
	}

	notificationData := event.GetNotificationData()

	assert.Empty(t, notificationData.Title)
	assert.Empty(t, notificationData.Message)
}
