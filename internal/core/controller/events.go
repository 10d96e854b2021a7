package controller

import "time"

// EventType defines the type of Controller event.
type EventType string

const (
	EventStarted      EventType = "started"
	EventStopped      EventType = "stopped"
	EventTick         EventType = "tick"
	EventCompleted    EventType = "completed"
	EventReconfigured EventType = "reconfigured"
	EventNotified     EventType = "notified"
	EventNotifyFailed EventType = "notify_failed"
)

// Event represents a Controller update for observers.
type Event struct {
	Type           EventType
	Remaining      int
	Text           string
	NotificationID string
	Message        string
	At             time.Time
}
