package cli

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
)

type StatsCmd struct {
	Habit string `arg:"" help:"Habit name."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivityByName(ctx.Actor, c.Habit)
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetCompletionEvents(activity.ID)
	if err != nil {
		return err
	}

	stats := engine.ComputeStats(activity, logs, dates.Day(time.Now().UTC()))

	fmt.Printf("Stats for %s:\n", activity.Name)
	fmt.Printf("  Current streak:    %d\n", stats.CurrentStreak)
	fmt.Printf("  Completion rate:   %d%%\n", stats.CompletionRate)
	fmt.Printf("  Total completions: %d\n", stats.TotalCompletions)
	if stats.RecentAvgQuality > 0 {
		fmt.Printf("  Avg quality:       %.1f\n", stats.RecentAvgQuality)
	}
	return nil
}
