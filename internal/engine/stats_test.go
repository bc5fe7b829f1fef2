package engine

import (
	"testing"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

func completionOn(dayStr string, status models.CompletionStatus, quality int) models.CompletionEvent {
	return models.CompletionEvent{
		ID:            dayStr,
		ActivityID:    "act-1",
		ActorID:       "alice",
		CompletedAt:   day(dayStr).Add(8 * time.Hour),
		Status:        status,
		QualityRating: quality,
	}
}

func TestComputeStats_EmptyLogs(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}

	stats := ComputeStats(activity, nil, day("2026-03-10"))

	if stats.CurrentStreak != 0 || stats.CompletionRate != 0 || stats.TotalCompletions != 0 || stats.RecentAvgQuality != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestComputeStats_CountsAndRate(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}
	logs := []models.CompletionEvent{
		completionOn("2026-03-09", models.StatusCompleted, 4),
		completionOn("2026-03-08", models.StatusSkipped, 0),
		completionOn("2026-03-07", models.StatusCompleted, 5),
		completionOn("2026-03-06", models.StatusPartial, 0),
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	if stats.TotalCompletions != 2 {
		t.Errorf("expected 2 completions, got %d", stats.TotalCompletions)
	}
	// 2 completed / 4 logs = 50%
	if stats.CompletionRate != 50 {
		t.Errorf("expected 50%%, got %d%%", stats.CompletionRate)
	}
	if stats.RecentAvgQuality != 4.5 {
		t.Errorf("expected avg quality 4.5, got %v", stats.RecentAvgQuality)
	}
}

func TestComputeStats_StreakToleratesMissingToday(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}
	// Completed yesterday and the two days before; nothing logged today yet.
	logs := []models.CompletionEvent{
		completionOn("2026-03-09", models.StatusCompleted, 0),
		completionOn("2026-03-08", models.StatusCompleted, 0),
		completionOn("2026-03-07", models.StatusCompleted, 0),
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	if stats.CurrentStreak != 3 {
		t.Errorf("a missing entry for today should not break the streak, got %d", stats.CurrentStreak)
	}
}

func TestComputeStats_StreakIncludesToday(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}
	logs := []models.CompletionEvent{
		completionOn("2026-03-10", models.StatusCompleted, 0),
		completionOn("2026-03-09", models.StatusCompleted, 0),
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	if stats.CurrentStreak != 2 {
		t.Errorf("expected streak 2, got %d", stats.CurrentStreak)
	}
}

func TestComputeStats_StreakBreaksOnGap(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}
	logs := []models.CompletionEvent{
		completionOn("2026-03-10", models.StatusCompleted, 0),
		completionOn("2026-03-09", models.StatusCompleted, 0),
		// 03-08 missing
		completionOn("2026-03-07", models.StatusCompleted, 0),
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	if stats.CurrentStreak != 2 {
		t.Errorf("streak should stop at the gap, got %d", stats.CurrentStreak)
	}
}

func TestComputeStats_SkippedDayBreaksStreak(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}
	logs := []models.CompletionEvent{
		completionOn("2026-03-10", models.StatusCompleted, 0),
		completionOn("2026-03-09", models.StatusSkipped, 0),
		completionOn("2026-03-08", models.StatusCompleted, 0),
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	if stats.CurrentStreak != 1 {
		t.Errorf("a skipped day only counts as missing, got streak %d", stats.CurrentStreak)
	}
}

func TestComputeStats_RateWindowCapsAtThirty(t *testing.T) {
	activity := models.Activity{ID: "act-1", FrequencyType: models.FrequencyDaily}

	var logs []models.CompletionEvent
	start := day("2026-01-01")
	for i := 0; i < 40; i++ {
		d := start.AddDate(0, 0, i)
		status := models.StatusCompleted
		if i%2 == 0 {
			status = models.StatusSkipped
		}
		logs = append(logs, completionOn(d.Format("2006-01-02"), status, 0))
	}

	stats := ComputeStats(activity, logs, day("2026-03-10"))

	// 20 completed out of a window capped at 30 = 67%
	if stats.CompletionRate != 67 {
		t.Errorf("expected 67%%, got %d%%", stats.CompletionRate)
	}
}
