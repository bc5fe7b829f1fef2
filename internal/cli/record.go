package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseapp/pulse/internal/constants"
	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/models"
)

// recordEvent stores one journaling entry and hands back its day.
func recordEvent(ctx *Context, kind string, wordCount int) (time.Time, error) {
	now := time.Now().UTC()
	event := models.ActorEvent{
		ID:        uuid.New().String(),
		ActorID:   ctx.Actor,
		Kind:      kind,
		Day:       dates.DayString(now),
		WordCount: wordCount,
		CreatedAt: now,
	}
	if err := ctx.Store.AddActorEvent(event); err != nil {
		return time.Time{}, err
	}
	return dates.Day(now), nil
}

func runRecord(ctx *Context, kind string, wordCount, xp int, reason string) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}
	if _, err := recordEvent(ctx, kind, wordCount); err != nil {
		return err
	}
	fmt.Printf("Recorded %s entry.\n", kind)

	award, err := ctx.Engine.AwardXP(ctx.Actor, xp, reason)
	if err != nil {
		return err
	}
	printAward(award)
	return nil
}

type RecordMoodCmd struct{}

func (c *RecordMoodCmd) Run(ctx *Context) error {
	return runRecord(ctx, models.EventMood, 0, constants.XPMoodCheckin, "Mood check-in")
}

type RecordDreamCmd struct{}

func (c *RecordDreamCmd) Run(ctx *Context) error {
	return runRecord(ctx, models.EventDream, 0, constants.XPDreamEntry, "Dream entry")
}

type RecordJournalCmd struct {
	Text string `arg:"" optional:"" help:"Journal entry text (used for word count)."`
}

func (c *RecordJournalCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	day, err := recordEvent(ctx, models.EventJournal, countWords(c.Text))
	if err != nil {
		return err
	}
	fmt.Println("Recorded journal entry.")

	// Journaling keeps its own actor-wide streak.
	streak, err := ctx.Engine.UpdateStreak(ctx.Actor, models.StreakTypeJournal, "", day)
	if err != nil {
		return err
	}
	fmt.Printf("Journal streak: %d (longest %d)\n", streak.CurrentStreak, streak.LongestStreak)

	award, err := ctx.Engine.AwardXP(ctx.Actor, constants.XPJournalEntry, "Journal entry")
	if err != nil {
		return err
	}
	printAward(award)
	return nil
}

type RecordDecisionCmd struct{}

func (c *RecordDecisionCmd) Run(ctx *Context) error {
	return runRecord(ctx, models.EventDecision, 0, constants.XPDecisionLogged, "Decision logged")
}

type RecordInsightCmd struct{}

func (c *RecordInsightCmd) Run(ctx *Context) error {
	return runRecord(ctx, models.EventInsight, 0, constants.XPInsightSaved, "Insight saved")
}

type RecordCheckinCmd struct{}

func (c *RecordCheckinCmd) Run(ctx *Context) error {
	return runRecord(ctx, models.EventCheckin, 0, constants.XPMorningCheckin, "Morning check-in")
}
