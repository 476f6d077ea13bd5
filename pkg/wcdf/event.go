package wcdf

import (
	"fmt"
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeScheduleCreated EventType = "ScheduleCreated"

	EventTypeScheduleAssigned    = "ScheduleAssigned"
	EventTypeCompletionRecorded  = "CompletionRecorded"
	EventTypeCompletionWithIssue = "CompletionWithIssue"
)

// GetNotificationData derives a human readable notification from an event.
// Events arrive from the queue as decoded JSON so the body is a generic map.
func (e *Event) GetNotificationData() EventNotificationData {
	eventNotificationData := EventNotificationData{}

	eventBody, ok := e.Body.(map[string]interface{})
	if !ok {
		return eventNotificationData
	}

	switch e.Type {
	case EventTypeScheduleCreated:
		eventNotificationData.Title = "New schedule"
		eventNotificationData.Message = fmt.Sprintf("Schedule %s has been created for %s", eventBody["PrimaryIdentifier"], eventBody["Date"])
	case EventTypeScheduleAssigned:
		eventNotificationData.Title = "Schedule assigned"
		eventNotificationData.Message = fmt.Sprintf("Schedule %s has been assigned to driver %s", eventBody["PrimaryIdentifier"], eventBody["DriverRef"])
	case EventTypeCompletionRecorded:
		eventNotificationData.Title = "Stop completed"
		eventNotificationData.Message = fmt.Sprintf("TPS %s has been collected", eventBody["TPSRef"])
	case EventTypeCompletionWithIssue:
		eventNotificationData.Title = "Issue reported"

		message := fmt.Sprintf("An issue was reported at TPS %s", eventBody["TPSRef"])
		if notes, ok := eventBody["Notes"].(string); ok && notes != "" {
			message = fmt.Sprintf("%s: %s", message, notes)
		}
		eventNotificationData.Message = message
	}

	return eventNotificationData
}

type EventNotificationData struct {
	Title   string
	Message string
}
