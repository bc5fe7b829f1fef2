package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pulseapp/pulse/internal/dates"
)

type PredictCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Date  string `short:"d" help:"Day to predict for (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *PredictCmd) Run(ctx *Context) error {
	if err := ctx.loadStore(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivityByName(ctx.Actor, c.Habit)
	if err != nil {
		return err
	}
	day, err := parseDate(c.Date)
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetCompletionEvents(activity.ID)
	if err != nil {
		return err
	}

	prediction, err := ctx.Engine.GeneratePrediction(activity, logs, day)
	if err != nil {
		return err
	}

	fmt.Printf("Skip risk for %s on %s:\n", activity.Name, dates.DayString(day))
	fmt.Printf("  Risk:       %.0f%%\n", prediction.SkipRiskScore*100)
	fmt.Printf("  Confidence: %.0f%%\n", prediction.Confidence*100)
	if len(prediction.RecommendedTimes) > 0 {
		fmt.Printf("  Best times: %s\n", strings.Join(prediction.RecommendedTimes, ", "))
	}
	if len(prediction.RiskFactors) > 0 {
		factors := make([]string, 0, len(prediction.RiskFactors))
		for name := range prediction.RiskFactors {
			factors = append(factors, name)
		}
		sort.Strings(factors)
		fmt.Println("  Factors:")
		for _, name := range factors {
			fmt.Printf("    %-16s +%.2f\n", name, prediction.RiskFactors[name])
		}
	}
	return nil
}
