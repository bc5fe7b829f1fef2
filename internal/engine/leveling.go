package engine

import (
	"fmt"
	"math"

	"github.com/pulseapp/pulse/internal/models"
)

// Leveling constants. XP is integer throughout: thresholds are rounded once
// per level so there is no floating-point drift in the level-up comparison.
const (
	baseLevelXP = 100
	levelGrowth = 1.2
)

// AwardResult reports the outcome of one XP award.
type AwardResult struct {
	XPAwarded int    `json:"xp_awarded"`
	NewLevel  int    `json:"new_level"`
	Title     string `json:"title"`
	TotalXP   int    `json:"total_xp"`
	LeveledUp bool   `json:"leveled_up"`
	Reason    string `json:"reason"`
}

// XPToNextLevel returns the XP required to clear the given level.
func XPToNextLevel(level int) int {
	return int(math.Round(baseLevelXP * math.Pow(levelGrowth, float64(level-1))))
}

// TitleForLevel derives the display title for a level.
func TitleForLevel(level int) string {
	switch {
	case level < 5:
		return "Beginner"
	case level < 10:
		return "Explorer"
	case level < 20:
		return "Achiever"
	case level < 35:
		return "Expert"
	case level < 50:
		return "Master"
	default:
		return "Grandmaster"
	}
}

// NewUserLevel returns the level record created on an actor's first XP award.
func NewUserLevel(actorID string) models.UserLevel {
	return models.UserLevel{
		ActorID:       actorID,
		Level:         1,
		XPToNextLevel: XPToNextLevel(1),
		Title:         TitleForLevel(1),
	}
}

// AwardXP adds XP to an actor, applying as many level-ups as the new total
// covers, and finishes by checking for newly earned achievements. Returns
// ErrInvalidAmount (and changes nothing) when amount is not positive.
func (e *Engine) AwardXP(actorID string, amount int, reason string) (AwardResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.awardXP(actorID, amount, reason)
}

func (e *Engine) awardXP(actorID string, amount int, reason string) (AwardResult, error) {
	if amount <= 0 {
		return AwardResult{}, fmt.Errorf("award of %d: %w", amount, ErrInvalidAmount)
	}

	level, ok, err := e.store.GetUserLevel(actorID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("failed to load level: %w", err)
	}
	if !ok {
		level = NewUserLevel(actorID)
	}

	level.CurrentXP += amount
	level.TotalXP += amount

	leveledUp := false
	for level.CurrentXP >= level.XPToNextLevel {
		level.CurrentXP -= level.XPToNextLevel
		level.Level++
		level.XPToNextLevel = XPToNextLevel(level.Level)
		leveledUp = true
	}
	level.Title = TitleForLevel(level.Level)

	if err := e.store.PutUserLevel(level); err != nil {
		return AwardResult{}, fmt.Errorf("failed to save level: %w", err)
	}

	result := AwardResult{
		XPAwarded: amount,
		NewLevel:  level.Level,
		Title:     level.Title,
		TotalXP:   level.TotalXP,
		LeveledUp: leveledUp,
		Reason:    reason,
	}

	// An award can push counters over achievement thresholds, so every award
	// ends with an achievement pass.
	if err := e.checkAndAward(actorID); err != nil {
		return AwardResult{}, err
	}

	return result, nil
}
