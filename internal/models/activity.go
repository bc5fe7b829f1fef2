package models

import "time"

type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"
)

// Activity represents a recurring habit an actor tracks
type Activity struct {
	ID            string        `json:"id"`
	ActorID       string        `json:"actor_id"`
	Name          string        `json:"name"`
	FrequencyType FrequencyType `json:"frequency_type"`
	TargetTime    string        `json:"target_time,omitempty"` // HH:MM format
	CreatedAt     time.Time     `json:"created_at"`
}

type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusSkipped   CompletionStatus = "skipped"
	StatusPartial   CompletionStatus = "partial"
)

// CompletionEvent represents a single day's record of an activity.
// At most one event exists per (activity, calendar day); the storage layer
// rejects duplicates before the engine ever sees them.
type CompletionEvent struct {
	ID            string           `json:"id"`
	ActivityID    string           `json:"activity_id"`
	ActorID       string           `json:"actor_id"`
	CompletedAt   time.Time        `json:"completed_at"`
	Status        CompletionStatus `json:"status"`
	QualityRating int              `json:"quality_rating,omitempty"` // 1-5, 0 when unrated
	Mood          string           `json:"mood,omitempty"`
	Energy        string           `json:"energy,omitempty"`
}
