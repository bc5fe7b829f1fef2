package engine

import (
	"math"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/models"
)

// statsWindowDays bounds both the backward streak scan and the completion
// rate denominator.
const statsWindowDays = 30

// Stats summarizes an activity's recent completion history.
type Stats struct {
	CurrentStreak    int     `json:"current_streak"`
	CompletionRate   int     `json:"completion_rate"` // percent, rounded
	TotalCompletions int     `json:"total_completions"`
	RecentAvgQuality float64 `json:"recent_avg_quality"`
}

// ComputeStats derives rolling statistics from an activity's completion log.
// The streak scan walks backward from today one calendar day at a time and
// stops at the first day without a completed entry; a missing entry for
// today itself is tolerated so an in-progress streak is not hidden from
// actors who simply have not logged yet.
func ComputeStats(activity models.Activity, logs []models.CompletionEvent, today time.Time) Stats {
	var stats Stats

	completedDays := make(map[string]bool)
	for _, ev := range logs {
		if ev.Status == models.StatusCompleted {
			stats.TotalCompletions++
			completedDays[dates.DayString(ev.CompletedAt)] = true
		}
	}

	day0 := dates.Day(today)
	for i := 0; i < statsWindowDays; i++ {
		day := dates.DayString(day0.AddDate(0, 0, -i))
		if completedDays[day] {
			stats.CurrentStreak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}

	if len(logs) > 0 {
		window := len(logs)
		if window > statsWindowDays {
			window = statsWindowDays
		}
		stats.CompletionRate = int(math.Round(float64(stats.TotalCompletions) / float64(window) * 100))
	}

	var qualitySum, rated int
	for _, ev := range logs {
		if ev.Status == models.StatusCompleted && ev.QualityRating > 0 {
			qualitySum += ev.QualityRating
			rated++
		}
	}
	if rated > 0 {
		stats.RecentAvgQuality = float64(qualitySum) / float64(rated)
	}

	return stats
}
