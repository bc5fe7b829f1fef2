package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/models"
)

type HabitAddCmd struct {
	Name       string `arg:"" help:"Habit name."`
	Frequency  string `short:"f" help:"Frequency (daily|weekly|custom)." default:"daily"`
	TargetTime string `short:"t" help:"Preferred time of day (HH:MM)."`
}

func (c *HabitAddCmd) Validate() error {
	if c.TargetTime != "" && !dates.ValidClock(c.TargetTime) {
		return fmt.Errorf("invalid target time: %s (expected HH:MM)", c.TargetTime)
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	var freq models.FrequencyType
	switch c.Frequency {
	case "daily":
		freq = models.FrequencyDaily
	case "weekly":
		freq = models.FrequencyWeekly
	case "custom":
		freq = models.FrequencyCustom
	default:
		return fmt.Errorf("invalid frequency: %s", c.Frequency)
	}

	if _, err := ctx.Store.GetActivityByName(ctx.Actor, c.Name); err == nil {
		return fmt.Errorf("habit already exists: %s", c.Name)
	}

	activity := models.Activity{
		ID:            uuid.New().String(),
		ActorID:       ctx.Actor,
		Name:          c.Name,
		FrequencyType: freq,
		TargetTime:    c.TargetTime,
		CreatedAt:     time.Now().UTC(),
	}
	if err := ctx.Store.AddActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", c.Name, activity.ID)

	// A first habit can unlock achievements on its own.
	if err := ctx.Engine.CheckAndAward(ctx.Actor); err != nil {
		return err
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	activities, err := ctx.Store.GetActivities(ctx.Actor)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No habits yet. Add one with 'pulse habit add'.")
		return nil
	}

	today := dates.Day(time.Now().UTC())
	fmt.Printf("Habits (%d):\n\n", len(activities))
	for _, activity := range activities {
		logs, err := ctx.Store.GetCompletionEvents(activity.ID)
		if err != nil {
			return err
		}
		stats := engine.ComputeStats(activity, logs, today)

		line := fmt.Sprintf("  %-20s %s", activity.Name, activity.FrequencyType)
		if activity.TargetTime != "" {
			line += " @ " + activity.TargetTime
		}
		fmt.Println(line)
		fmt.Printf("    streak %d · %d%% completion · %d total\n",
			stats.CurrentStreak, stats.CompletionRate, stats.TotalCompletions)
	}
	return nil
}
