package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/models"
)

// challengeRotation cycles by day of year, so every install issues the same
// challenge on the same date.
var challengeRotation = []struct {
	Description string
	XPReward    int
}{
	{"Complete 2 habits today", 30},
	{"Write a journal entry", 25},
	{"Log your mood", 15},
	{"Record a dream you remember", 20},
	{"Complete a habit before 09:00", 35},
	{"Save one insight about your day", 25},
	{"Do a morning check-in", 15},
	{"Complete every daily habit", 50},
	{"Log a decision you made", 20},
	{"Write 250+ words in your journal", 40},
}

// todaysChallenge returns the challenge for the given day, minting it on
// first access.
func todaysChallenge(ctx *Context, day time.Time) (models.DailyChallenge, error) {
	date := dates.DayString(day)

	challenge, ok, err := ctx.Store.GetChallengeByDate(date)
	if err != nil {
		return models.DailyChallenge{}, err
	}
	if ok {
		return challenge, nil
	}

	tmpl := challengeRotation[day.YearDay()%len(challengeRotation)]
	challenge = models.DailyChallenge{
		ID:          uuid.New().String(),
		Date:        date,
		XPReward:    tmpl.XPReward,
		Description: tmpl.Description,
	}
	if err := ctx.Store.AddDailyChallenge(challenge); err != nil {
		return models.DailyChallenge{}, err
	}
	return challenge, nil
}

type ChallengeTodayCmd struct{}

func (c *ChallengeTodayCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	challenge, err := todaysChallenge(ctx, dates.Day(time.Now().UTC()))
	if err != nil {
		return err
	}

	fmt.Printf("Today's challenge: %s (+%d XP)\n", challenge.Description, challenge.XPReward)

	done, err := ctx.Store.HasChallengeCompletion(ctx.Actor, challenge.ID)
	if err != nil {
		return err
	}
	if done {
		fmt.Println("Already completed. Nice work!")
	}
	return nil
}

type ChallengeCompleteCmd struct{}

func (c *ChallengeCompleteCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	challenge, err := todaysChallenge(ctx, dates.Day(time.Now().UTC()))
	if err != nil {
		return err
	}

	result, err := ctx.Engine.CompleteChallenge(ctx.Actor, challenge.ID)
	if err != nil {
		if errors.Is(err, engine.ErrAlreadyCompleted) {
			return fmt.Errorf("challenge already completed today")
		}
		return err
	}

	fmt.Printf("Challenge complete: %s\n", challenge.Description)
	printAward(result.Award)
	return nil
}
