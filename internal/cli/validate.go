package cli

import (
	"fmt"

	"github.com/pulseapp/pulse/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	validator := validation.New()

	activities, err := ctx.Store.GetActivities(ctx.Actor)
	if err != nil {
		return err
	}
	result := validator.ValidateActivities(activities)

	for _, activity := range activities {
		events, err := ctx.Store.GetCompletionEvents(activity.ID)
		if err != nil {
			return err
		}
		result = validation.Merge(result, validator.ValidateEvents(activity, events))
	}

	streaks, err := ctx.Store.GetStreaks(ctx.Actor)
	if err != nil {
		return err
	}
	result = validation.Merge(result, validator.ValidateStreaks(streaks))

	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
