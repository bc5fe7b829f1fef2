package models

import "time"

// UserLevel tracks an actor's XP progression. CurrentXP is the amount banked
// toward the next level; TotalXP is lifetime and only ever grows.
type UserLevel struct {
	ActorID       string `json:"actor_id"`
	Level         int    `json:"level"`
	CurrentXP     int    `json:"current_xp"`
	TotalXP       int    `json:"total_xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
	Title         string `json:"title"`
}

// UserAchievement marks an achievement as earned. The (ActorID, Code) pair is
// unique and write-once.
type UserAchievement struct {
	ActorID  string    `json:"actor_id"`
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earned_at"`
}

// DailyChallenge is a dated, claimable reward. One challenge exists per day.
type DailyChallenge struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD format
	XPReward    int    `json:"xp_reward"`
	Description string `json:"description"`
}

// ChallengeCompletion records that an actor claimed a challenge. Existence of
// the (ActorID, ChallengeID) pair is the sole marker of "already completed".
type ChallengeCompletion struct {
	ActorID     string    `json:"actor_id"`
	ChallengeID string    `json:"challenge_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Actor event kinds recorded outside the habit log.
const (
	EventMood     = "mood"
	EventDream    = "dream"
	EventJournal  = "journal"
	EventDecision = "decision"
	EventInsight  = "insight"
	EventCheckin  = "checkin"
)

// ActorEvent is a reward-worthy action outside the habit log (mood check-in,
// journal entry, dream log, ...). These feed the achievement counters.
type ActorEvent struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Kind      string    `json:"kind"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	WordCount int       `json:"word_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
