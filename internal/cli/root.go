package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *engine.Engine
	Actor  string
}

// loadStore opens the storage and makes sure the acting user exists, so
// commands can assume both.
func (ctx *Context) loadStore() error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	return ctx.Store.EnsureActor(ctx.Actor, time.Now().UTC())
}

// parseDate accepts "today", an empty string, or a YYYY-MM-DD day.
func parseDate(s string) (time.Time, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return dates.Day(time.Now().UTC()), nil
	}
	day, err := dates.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", s)
	}
	return day, nil
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// printAward reports XP grants and any resulting level-up.
func printAward(award engine.AwardResult) {
	fmt.Printf("+%d XP (%s)\n", award.XPAwarded, award.Reason)
	if award.LeveledUp {
		fmt.Printf("🎉 Level up! You are now level %d (%s)\n", award.NewLevel, award.Title)
	}
}
