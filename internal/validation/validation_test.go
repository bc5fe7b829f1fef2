package validation

import (
	"testing"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

func activity(id, actorID, name, targetTime string, freq models.FrequencyType) models.Activity {
	return models.Activity{
		ID:            id,
		ActorID:       actorID,
		Name:          name,
		FrequencyType: freq,
		TargetTime:    targetTime,
		CreatedAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestValidateActivities_Clean(t *testing.T) {
	v := New()
	result := v.ValidateActivities([]models.Activity{
		activity("a1", "alice", "meditate", "07:30", models.FrequencyDaily),
		activity("a2", "alice", "read", "", models.FrequencyWeekly),
	})
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("unexpected report: %q", got)
	}
}

func TestValidateActivities_DuplicateNamesPerActor(t *testing.T) {
	v := New()
	result := v.ValidateActivities([]models.Activity{
		activity("a1", "alice", "meditate", "", models.FrequencyDaily),
		activity("a2", "alice", "meditate", "", models.FrequencyDaily),
		// Same name for a different actor is fine
		activity("a3", "bob", "meditate", "", models.FrequencyDaily),
	})
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d: %s", len(result.Conflicts), result.FormatReport())
	}
	if result.Conflicts[0].Type != ConflictDuplicateHabitName {
		t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, ConflictDuplicateHabitName)
	}
}

func TestValidateActivities_BadFrequencyAndTime(t *testing.T) {
	v := New()
	result := v.ValidateActivities([]models.Activity{
		activity("a1", "alice", "meditate", "25:99", "hourly"),
	})
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %s", len(result.Conflicts), result.FormatReport())
	}

	types := map[ConflictType]bool{}
	for _, c := range result.Conflicts {
		types[c.Type] = true
	}
	if !types[ConflictInvalidFrequency] || !types[ConflictInvalidTime] {
		t.Errorf("missing expected conflict types, got: %v", types)
	}
}

func TestValidateEvents(t *testing.T) {
	v := New()
	habit := activity("a1", "alice", "meditate", "", models.FrequencyDaily)

	events := []models.CompletionEvent{
		{ID: "e1", ActivityID: "a1", CompletedAt: time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC), Status: models.StatusCompleted, QualityRating: 4},
		{ID: "e2", ActivityID: "a1", CompletedAt: time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC), Status: "done", QualityRating: 9},
	}
	result := v.ValidateEvents(habit, events)

	types := map[ConflictType]int{}
	for _, c := range result.Conflicts {
		types[c.Type]++
	}
	if types[ConflictInvalidStatus] != 1 {
		t.Errorf("expected 1 invalid status conflict, got %d", types[ConflictInvalidStatus])
	}
	if types[ConflictInvalidQuality] != 1 {
		t.Errorf("expected 1 invalid quality conflict, got %d", types[ConflictInvalidQuality])
	}
	if types[ConflictDuplicateDay] != 1 {
		t.Errorf("expected 1 duplicate day conflict, got %d", types[ConflictDuplicateDay])
	}
}

func TestValidateStreaks(t *testing.T) {
	v := New()
	streaks := []models.Streak{
		{ActorID: "alice", Type: "habit", TargetID: "a1", CurrentStreak: 3, LongestStreak: 5, LastActivityDate: "2026-03-05"},
		{ActorID: "alice", Type: "habit", TargetID: "a2", CurrentStreak: 7, LongestStreak: 3},
		{ActorID: "alice", Type: "journal", TargetID: "", CurrentStreak: -1, LongestStreak: 2},
		{ActorID: "alice", Type: "habit", TargetID: "a3", CurrentStreak: 1, LongestStreak: 1, LastActivityDate: "03/05/2026"},
	}
	result := v.ValidateStreaks(streaks)
	if len(result.Conflicts) != 3 {
		t.Fatalf("expected 3 conflicts, got %d: %s", len(result.Conflicts), result.FormatReport())
	}
}

func TestMerge(t *testing.T) {
	a := Result{Conflicts: []Conflict{{Type: ConflictInvalidTime}}}
	b := Result{Conflicts: []Conflict{}}
	c := Result{Conflicts: []Conflict{{Type: ConflictDuplicateDay}, {Type: ConflictInvalidStatus}}}

	merged := Merge(a, b, c)
	if len(merged.Conflicts) != 3 {
		t.Errorf("expected 3 merged conflicts, got %d", len(merged.Conflicts))
	}
	if !merged.HasConflicts() {
		t.Error("merged result should have conflicts")
	}
}
