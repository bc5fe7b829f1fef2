package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/models"
)

// Skip-risk model parameters. The base score blends three completion rates;
// the named factors add on top and the result is clamped to [0,1].
const (
	weightOverallRate = 0.4
	weightRecentRate  = 0.4
	weightWeekdayRate = 0.2

	riskDecliningTrend = 0.2
	riskDayOfWeek      = 0.1
	riskWeekendEffect  = 0.1

	recentWindow        = 7
	maxRecommendedTimes = 5

	// defaultRecommendedTime is suggested when an activity has no completion
	// history and no target time.
	defaultRecommendedTime = "09:00"
)

// BuildPrediction derives the skip-risk estimate for an activity on the
// target date. logs must be ordered newest first, the way the storage layer
// returns them.
func BuildPrediction(activity models.Activity, logs []models.CompletionEvent, targetDate time.Time) models.Prediction {
	prediction := models.Prediction{
		ActivityID:  activity.ID,
		Date:        dates.DayString(targetDate),
		RiskFactors: make(map[string]float64),
	}

	completionRate := completedRatio(logs)

	recent := logs
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}
	recentRate := completedRatio(recent)

	weekday := dates.Day(targetDate).Weekday()
	var sameWeekday []models.CompletionEvent
	for _, ev := range logs {
		if dates.Day(ev.CompletedAt).Weekday() == weekday {
			sameWeekday = append(sameWeekday, ev)
		}
	}
	dayOfWeekRate := completionRate
	if len(sameWeekday) > 0 {
		dayOfWeekRate = completedRatio(sameWeekday)
	}

	risk := 1 - (weightOverallRate*completionRate + weightRecentRate*recentRate + weightWeekdayRate*dayOfWeekRate)

	if recentRate < completionRate-0.2 {
		risk += riskDecliningTrend
		prediction.RiskFactors["declining_trend"] = riskDecliningTrend
	}
	if dayOfWeekRate < completionRate-0.1 {
		risk += riskDayOfWeek
		prediction.RiskFactors["day_of_week"] = riskDayOfWeek
	}
	if activity.FrequencyType == models.FrequencyWeekly && weekday == time.Sunday {
		risk += riskWeekendEffect
		prediction.RiskFactors["weekend_effect"] = riskWeekendEffect
	}

	if risk < 0 {
		risk = 0
	}
	if risk > 1 {
		risk = 1
	}
	prediction.SkipRiskScore = risk

	prediction.RecommendedTimes = recommendedTimes(activity, logs)

	if len(logs) >= 10 {
		prediction.Confidence = 0.8
	} else {
		prediction.Confidence = float64(len(logs)) * 0.1
		if prediction.Confidence > 0.7 {
			prediction.Confidence = 0.7
		}
	}

	return prediction
}

// GeneratePrediction builds the skip-risk estimate and persists it, replacing
// any earlier prediction for the same (activity, day).
func (e *Engine) GeneratePrediction(activity models.Activity, logs []models.CompletionEvent, targetDate time.Time) (models.Prediction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prediction := BuildPrediction(activity, logs, targetDate)
	prediction.GeneratedAt = e.now()
	if err := e.store.SavePrediction(prediction); err != nil {
		return models.Prediction{}, fmt.Errorf("failed to save prediction: %w", err)
	}
	return prediction, nil
}

func completedRatio(logs []models.CompletionEvent) float64 {
	if len(logs) == 0 {
		return 0
	}
	completed := 0
	for _, ev := range logs {
		if ev.Status == models.StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(logs))
}

// recommendedTimes buckets completed logs by time of day and returns the most
// frequent HH:MM values, most likely first. Ties keep first-seen order.
func recommendedTimes(activity models.Activity, logs []models.CompletionEvent) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for i, ev := range logs {
		if ev.Status != models.StatusCompleted {
			continue
		}
		clock := dates.Clock(ev.CompletedAt)
		if _, ok := counts[clock]; !ok {
			firstSeen[clock] = i
			order = append(order, clock)
		}
		counts[clock]++
	}

	if len(order) == 0 {
		if activity.TargetTime != "" {
			return []string{activity.TargetTime}
		}
		return []string{defaultRecommendedTime}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxRecommendedTimes {
		order = order[:maxRecommendedTimes]
	}
	return order
}
