package models

// Streak types tracked by the engine. Habit streaks carry the activity ID in
// TargetID; actor-wide streaks leave it empty.
const (
	StreakTypeHabit   = "habit"
	StreakTypeJournal = "journal"
)

// Streak counts consecutive calendar days with a qualifying completion,
// keyed by (ActorID, Type, TargetID). LongestStreak records the historical
// best and never decreases.
type Streak struct {
	ActorID          string `json:"actor_id"`
	Type             string `json:"type"`
	TargetID         string `json:"target_id,omitempty"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"` // YYYY-MM-DD format
	StreakStartDate  string `json:"streak_start_date,omitempty"`  // YYYY-MM-DD format
}
