// Package engine implements the habit analytics and gamification core:
// streak counters, completion statistics, skip-risk prediction, XP leveling,
// achievements and daily challenges. It is a library with no transport or
// storage of its own; persistence arrives through the Store interface.
package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

var (
	// ErrInvalidAmount is returned by AwardXP for non-positive amounts.
	ErrInvalidAmount = errors.New("xp amount must be positive")
	// ErrAlreadyCompleted is returned when a challenge is claimed twice.
	ErrAlreadyCompleted = errors.New("challenge already completed")
)

// Snapshot is the view of an actor's history that achievement formulas
// evaluate against. The store assembles it in one pass so a single
// CheckAndAward run sees a consistent picture.
type Snapshot struct {
	CreatedAt    time.Time
	Counts       map[string]int // lifetime counts per counter kind
	RecentCounts map[string]int // counts within the trailing 7 days, per kind
	LongEntries  int            // journal entries with >= LongEntryMinWords words
	Streaks      map[string]int // best current streak per streak type
}

// Store is the persistence surface the engine requires. Every Get/Put pair
// targets a uniquely keyed record; the engine serializes its own mutating
// calls with a mutex, so a shared Engine is safe for concurrent use as long
// as no other writer touches the same records (see the storage package for
// the multi-process caveats).
type Store interface {
	GetStreak(actorID, streakType, targetID string) (models.Streak, bool, error)
	PutStreak(models.Streak) error

	SavePrediction(models.Prediction) error

	GetUserLevel(actorID string) (models.UserLevel, bool, error)
	PutUserLevel(models.UserLevel) error

	HasAchievement(actorID, code string) (bool, error)
	AddAchievement(models.UserAchievement) error
	ActorSnapshot(actorID string) (Snapshot, error)

	GetChallenge(challengeID string) (models.DailyChallenge, error)
	HasChallengeCompletion(actorID, challengeID string) (bool, error)
	AddChallengeCompletion(models.ChallengeCompletion) error
}

// Engine exposes the analytics and reward operations to the request-handling
// layer. All state transitions run under one mutex: two concurrent calls for
// the same key are applied one after the other, never interleaved.
type Engine struct {
	mu       sync.Mutex
	store    Store
	registry *Registry
	now      func() time.Time
}

// New creates an engine over the given store with the default achievement
// catalogue.
func New(store Store) *Engine {
	return NewWithRegistry(store, DefaultRegistry())
}

// NewWithRegistry creates an engine with a custom achievement catalogue.
func NewWithRegistry(store Store, registry *Registry) *Engine {
	return &Engine{
		store:    store,
		registry: registry,
		now:      time.Now,
	}
}

// AchievementCatalogue returns the engine's achievement registry.
func (e *Engine) AchievementCatalogue() *Registry {
	return e.registry
}
