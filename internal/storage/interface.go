package storage

import (
	"time"

	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/models"
)

// Provider is the persistence surface the CLI layer drives. It is a superset
// of engine.Store; the engine sees only the subset it needs.
//
// Concurrency note:
//   - A Provider is safe for concurrent use from one process only when all
//     writes go through a single shared Engine, which serializes them.
//   - Running multiple pulse processes that share the same storage path at
//     the same time is not supported and may lose updates.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Activity catalogue
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetActivityByName(actorID, name string) (models.Activity, error)
	GetActivities(actorID string) ([]models.Activity, error)

	// Completion log. AddCompletionEvent rejects a second event for the same
	// (activity, calendar day); GetCompletionEvents returns newest first.
	AddCompletionEvent(models.CompletionEvent) error
	GetCompletionEvents(activityID string) ([]models.CompletionEvent, error)

	// Actors and their journal events
	EnsureActor(actorID string, createdAt time.Time) error
	AddActorEvent(models.ActorEvent) error

	// Display reads
	GetAchievements(actorID string) ([]models.UserAchievement, error)
	GetPrediction(activityID, date string) (models.Prediction, bool, error)
	GetStreaks(actorID string) ([]models.Streak, error)

	// Daily challenges
	AddDailyChallenge(models.DailyChallenge) error
	GetChallengeByDate(date string) (models.DailyChallenge, bool, error)

	// Engine persistence
	engine.Store

	// Utils
	GetConfigPath() string
}
