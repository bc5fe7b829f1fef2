package cli

import (
	"fmt"
)

type AchievementsCmd struct {
	All bool `short:"a" help:"Show locked achievements with progress too."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	earned, err := ctx.Store.GetAchievements(ctx.Actor)
	if err != nil {
		return err
	}
	earnedAt := make(map[string]string, len(earned))
	for _, a := range earned {
		earnedAt[a.Code] = a.EarnedAt.Format("2006-01-02")
	}

	registry := ctx.Engine.AchievementCatalogue()
	catalogue := registry.All()

	fmt.Printf("Achievements (%d/%d earned):\n\n", len(earned), len(catalogue))

	var snapshotLoaded bool
	var progress map[string]float64
	if c.All {
		snapshot, err := ctx.Store.ActorSnapshot(ctx.Actor)
		if err != nil {
			return err
		}
		progress = make(map[string]float64, len(catalogue))
		for _, a := range catalogue {
			progress[a.Code] = a.Progress(snapshot)
		}
		snapshotLoaded = true
	}

	for _, a := range catalogue {
		if date, ok := earnedAt[a.Code]; ok {
			fmt.Printf("  ✓ %-20s %s (+%d XP, earned %s)\n", a.Name, a.Description, a.XPReward, date)
			continue
		}
		if !snapshotLoaded {
			continue
		}
		fmt.Printf("    %-20s %s (+%d XP, %.0f%%)\n", a.Name, a.Description, a.XPReward, progress[a.Code]*100)
	}

	if len(earned) == 0 && !c.All {
		fmt.Println("  None yet. Use --all to see what's available.")
	}
	return nil
}
