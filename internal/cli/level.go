package cli

import (
	"fmt"

	"github.com/pulseapp/pulse/internal/engine"
)

type LevelCmd struct{}

func (c *LevelCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	level, ok, err := ctx.Store.GetUserLevel(ctx.Actor)
	if err != nil {
		return err
	}
	if !ok {
		level = engine.NewUserLevel(ctx.Actor)
	}

	fmt.Printf("Level %d · %s\n", level.Level, level.Title)
	fmt.Printf("  XP: %d / %d to next level (total %d)\n", level.CurrentXP, level.XPToNextLevel, level.TotalXP)
	return nil
}
