package models

import "time"

// Meeting statuses and priorities as sent by the API.
const (
	StatusScheduled = "SCHEDULED"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"

	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meeting is a server-computed meeting as listed on the calendar page.
// ScheduledAt is nil until the server has placed the meeting.
type Meeting struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Duration    int        `json:"duration"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Team        Team       `json:"team"`
}
