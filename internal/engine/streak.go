package engine

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/models"
)

// UpdateStreak applies one day of qualifying activity to the streak keyed by
// (actorID, streakType, targetID) and returns the updated row. The activity
// date is truncated to its UTC calendar day before any comparison.
//
// Calling twice for the same day is a no-op, so the operation is safe to
// retry. A gap of more than one day (or a backdated call) resets the current
// count to 1 while LongestStreak keeps the historical best.
func (e *Engine) UpdateStreak(actorID, streakType, targetID string, activityDate time.Time) (models.Streak, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := dates.DayString(activityDate)

	streak, ok, err := e.store.GetStreak(actorID, streakType, targetID)
	if err != nil {
		return models.Streak{}, fmt.Errorf("failed to load streak: %w", err)
	}
	if !ok {
		streak = models.Streak{
			ActorID:          actorID,
			Type:             streakType,
			TargetID:         targetID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: day,
			StreakStartDate:  day,
		}
		if err := e.store.PutStreak(streak); err != nil {
			return models.Streak{}, fmt.Errorf("failed to save streak: %w", err)
		}
		return streak, nil
	}

	last, err := dates.ParseDay(streak.LastActivityDate)
	if err != nil {
		return models.Streak{}, fmt.Errorf("corrupt last activity date for streak %s/%s/%s: %w",
			actorID, streakType, targetID, err)
	}

	switch diff := dates.DaysBetween(last, activityDate); {
	case diff == 0:
		// Already recorded for this day
		return streak, nil
	case diff == 1:
		streak.CurrentStreak++
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
		streak.LastActivityDate = day
	default:
		streak.CurrentStreak = 1
		streak.StreakStartDate = day
		streak.LastActivityDate = day
	}

	if err := e.store.PutStreak(streak); err != nil {
		return models.Streak{}, fmt.Errorf("failed to save streak: %w", err)
	}
	return streak, nil
}
