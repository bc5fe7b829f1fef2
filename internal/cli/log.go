package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseapp/pulse/internal/constants"
	"github.com/pulseapp/pulse/internal/models"
)

type LogCmd struct {
	Habit   string `arg:"" help:"Habit name."`
	Status  string `short:"s" help:"Status (completed|skipped|partial)." default:"completed"`
	Quality int    `short:"q" help:"Quality rating (1-5)." default:"0"`
	Mood    string `short:"m" help:"Mood while doing the habit."`
	Energy  string `short:"e" help:"Energy level while doing the habit."`
	Date    string `short:"d" help:"Day to log for (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *LogCmd) Validate() error {
	if c.Quality < 0 || c.Quality > 5 {
		return fmt.Errorf("quality must be between 1 and 5")
	}
	return nil
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	var status models.CompletionStatus
	switch c.Status {
	case "completed":
		status = models.StatusCompleted
	case "skipped":
		status = models.StatusSkipped
	case "partial":
		status = models.StatusPartial
	default:
		return fmt.Errorf("invalid status: %s", c.Status)
	}

	activity, err := ctx.Store.GetActivityByName(ctx.Actor, c.Habit)
	if err != nil {
		return err
	}

	day, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	// Preserve the actual clock time when logging for today
	completedAt := day
	now := time.Now().UTC()
	if day.Year() == now.Year() && day.YearDay() == now.YearDay() {
		completedAt = now
	}

	event := models.CompletionEvent{
		ID:            uuid.New().String(),
		ActivityID:    activity.ID,
		ActorID:       ctx.Actor,
		CompletedAt:   completedAt,
		Status:        status,
		QualityRating: c.Quality,
		Mood:          c.Mood,
		Energy:        c.Energy,
	}
	if err := ctx.Store.AddCompletionEvent(event); err != nil {
		return err
	}
	fmt.Printf("Logged %s: %s\n", activity.Name, status)

	if status != models.StatusCompleted {
		return nil
	}

	streak, err := ctx.Engine.UpdateStreak(ctx.Actor, models.StreakTypeHabit, activity.ID, day)
	if err != nil {
		return err
	}
	fmt.Printf("Streak: %d (longest %d)\n", streak.CurrentStreak, streak.LongestStreak)

	award, err := ctx.Engine.AwardXP(ctx.Actor, constants.XPHabitCompletion, "Habit: "+activity.Name)
	if err != nil {
		return err
	}
	printAward(award)
	return nil
}
