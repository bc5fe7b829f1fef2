package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "pulse.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testActivity(actorID, name string) models.Activity {
	return models.Activity{
		ID:            "act-" + name,
		ActorID:       actorID,
		Name:          name,
		FrequencyType: models.FrequencyDaily,
		TargetTime:    "07:30",
		CreatedAt:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_ActivityRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	want := testActivity("alice", "meditate")
	if err := store.AddActivity(want); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	got, err := store.GetActivity(want.ID)
	if err != nil {
		t.Fatalf("GetActivity failed: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name || got.FrequencyType != want.FrequencyType ||
		got.TargetTime != want.TargetTime || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("GetActivity = %+v, want %+v", got, want)
	}

	got, err = store.GetActivityByName("alice", "meditate")
	if err != nil {
		t.Fatalf("GetActivityByName failed: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("GetActivityByName returned %s, want %s", got.ID, want.ID)
	}

	if _, err := store.GetActivityByName("alice", "missing"); err == nil {
		t.Error("expected error for unknown habit name")
	}
	if _, err := store.GetActivityByName("bob", "meditate"); err == nil {
		t.Error("habits must be scoped per actor")
	}
}

func TestSQLiteStore_GetActivitiesOrderedByCreation(t *testing.T) {
	store := setupSQLiteStore(t)

	second := testActivity("alice", "read")
	second.CreatedAt = second.CreatedAt.Add(time.Hour)
	if err := store.AddActivity(second); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	first := testActivity("alice", "meditate")
	if err := store.AddActivity(first); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	activities, err := store.GetActivities("alice")
	if err != nil {
		t.Fatalf("GetActivities failed: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	if activities[0].Name != "meditate" || activities[1].Name != "read" {
		t.Errorf("activities out of creation order: %s, %s", activities[0].Name, activities[1].Name)
	}
}

func TestSQLiteStore_RejectsDuplicateCompletionDay(t *testing.T) {
	store := setupSQLiteStore(t)

	event := models.CompletionEvent{
		ID:          "evt-1",
		ActivityID:  "act-meditate",
		ActorID:     "alice",
		CompletedAt: time.Date(2026, 3, 5, 7, 30, 0, 0, time.UTC),
		Status:      models.StatusCompleted,
	}
	if err := store.AddCompletionEvent(event); err != nil {
		t.Fatalf("AddCompletionEvent failed: %v", err)
	}

	// Same calendar day, different clock time
	dup := event
	dup.ID = "evt-2"
	dup.CompletedAt = event.CompletedAt.Add(5 * time.Hour)
	err := store.AddCompletionEvent(dup)
	if err == nil {
		t.Fatal("expected duplicate day to be rejected")
	}
	if !strings.Contains(err.Error(), "2026-03-05") {
		t.Errorf("error should name the day, got: %v", err)
	}

	// Next day is fine
	next := event
	next.ID = "evt-3"
	next.CompletedAt = event.CompletedAt.AddDate(0, 0, 1)
	if err := store.AddCompletionEvent(next); err != nil {
		t.Fatalf("next-day event rejected: %v", err)
	}

	events, err := store.GetCompletionEvents("act-meditate")
	if err != nil {
		t.Fatalf("GetCompletionEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "evt-3" {
		t.Errorf("events must be newest first, got %s", events[0].ID)
	}
}

func TestSQLiteStore_StreakRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, ok, err := store.GetStreak("alice", "habit", "act-1"); err != nil || ok {
		t.Fatalf("expected no streak, got ok=%v err=%v", ok, err)
	}

	want := models.Streak{
		ActorID:          "alice",
		Type:             "habit",
		TargetID:         "act-1",
		CurrentStreak:    3,
		LongestStreak:    5,
		LastActivityDate: "2026-03-05",
		StreakStartDate:  "2026-03-03",
	}
	if err := store.PutStreak(want); err != nil {
		t.Fatalf("PutStreak failed: %v", err)
	}

	got, ok, err := store.GetStreak("alice", "habit", "act-1")
	if err != nil || !ok {
		t.Fatalf("GetStreak failed: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Errorf("GetStreak = %+v, want %+v", got, want)
	}

	// Upsert replaces
	want.CurrentStreak = 4
	want.LastActivityDate = "2026-03-06"
	if err := store.PutStreak(want); err != nil {
		t.Fatalf("PutStreak update failed: %v", err)
	}
	got, _, _ = store.GetStreak("alice", "habit", "act-1")
	if got.CurrentStreak != 4 {
		t.Errorf("expected updated streak 4, got %d", got.CurrentStreak)
	}
}

func TestSQLiteStore_PredictionOverwritesSameDay(t *testing.T) {
	store := setupSQLiteStore(t)

	prediction := models.Prediction{
		ActivityID:       "act-1",
		Date:             "2026-03-05",
		SkipRiskScore:    0.4,
		RecommendedTimes: []string{"07:30", "18:00"},
		RiskFactors:      map[string]float64{"declining_trend": 0.2},
		Confidence:       0.8,
		GeneratedAt:      time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC),
	}
	if err := store.SavePrediction(prediction); err != nil {
		t.Fatalf("SavePrediction failed: %v", err)
	}

	prediction.SkipRiskScore = 0.6
	if err := store.SavePrediction(prediction); err != nil {
		t.Fatalf("second SavePrediction failed: %v", err)
	}

	got, ok, err := store.GetPrediction("act-1", "2026-03-05")
	if err != nil || !ok {
		t.Fatalf("GetPrediction failed: ok=%v err=%v", ok, err)
	}
	if got.SkipRiskScore != 0.6 {
		t.Errorf("expected overwritten score 0.6, got %v", got.SkipRiskScore)
	}
	if len(got.RecommendedTimes) != 2 || got.RecommendedTimes[0] != "07:30" {
		t.Errorf("recommended times not preserved: %v", got.RecommendedTimes)
	}
	if got.RiskFactors["declining_trend"] != 0.2 {
		t.Errorf("risk factors not preserved: %v", got.RiskFactors)
	}
}

func TestSQLiteStore_LevelAndAchievements(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, ok, err := store.GetUserLevel("alice"); err != nil || ok {
		t.Fatalf("expected no level, got ok=%v err=%v", ok, err)
	}

	level := models.UserLevel{ActorID: "alice", Level: 2, CurrentXP: 30, TotalXP: 130, XPToNextLevel: 120, Title: "Beginner"}
	if err := store.PutUserLevel(level); err != nil {
		t.Fatalf("PutUserLevel failed: %v", err)
	}
	got, ok, err := store.GetUserLevel("alice")
	if err != nil || !ok {
		t.Fatalf("GetUserLevel failed: ok=%v err=%v", ok, err)
	}
	if got != level {
		t.Errorf("GetUserLevel = %+v, want %+v", got, level)
	}

	has, err := store.HasAchievement("alice", "first_habit")
	if err != nil || has {
		t.Fatalf("expected no achievement yet, got has=%v err=%v", has, err)
	}
	earned := models.UserAchievement{ActorID: "alice", Code: "first_habit", EarnedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}
	if err := store.AddAchievement(earned); err != nil {
		t.Fatalf("AddAchievement failed: %v", err)
	}
	has, err = store.HasAchievement("alice", "first_habit")
	if err != nil || !has {
		t.Fatalf("expected achievement, got has=%v err=%v", has, err)
	}

	achievements, err := store.GetAchievements("alice")
	if err != nil {
		t.Fatalf("GetAchievements failed: %v", err)
	}
	if len(achievements) != 1 || achievements[0].Code != "first_habit" {
		t.Errorf("unexpected achievements: %+v", achievements)
	}
}

func TestSQLiteStore_ChallengeFlow(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, ok, err := store.GetChallengeByDate("2026-03-05"); err != nil || ok {
		t.Fatalf("expected no challenge, got ok=%v err=%v", ok, err)
	}

	challenge := models.DailyChallenge{ID: "ch-1", Date: "2026-03-05", XPReward: 30, Description: "Complete 2 habits today"}
	if err := store.AddDailyChallenge(challenge); err != nil {
		t.Fatalf("AddDailyChallenge failed: %v", err)
	}

	got, ok, err := store.GetChallengeByDate("2026-03-05")
	if err != nil || !ok {
		t.Fatalf("GetChallengeByDate failed: ok=%v err=%v", ok, err)
	}
	if got != challenge {
		t.Errorf("GetChallengeByDate = %+v, want %+v", got, challenge)
	}

	byID, err := store.GetChallenge("ch-1")
	if err != nil {
		t.Fatalf("GetChallenge failed: %v", err)
	}
	if byID != challenge {
		t.Errorf("GetChallenge = %+v, want %+v", byID, challenge)
	}

	has, err := store.HasChallengeCompletion("alice", "ch-1")
	if err != nil || has {
		t.Fatalf("expected no completion, got has=%v err=%v", has, err)
	}
	completion := models.ChallengeCompletion{ActorID: "alice", ChallengeID: "ch-1", CompletedAt: time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)}
	if err := store.AddChallengeCompletion(completion); err != nil {
		t.Fatalf("AddChallengeCompletion failed: %v", err)
	}
	has, err = store.HasChallengeCompletion("alice", "ch-1")
	if err != nil || !has {
		t.Fatalf("expected completion, got has=%v err=%v", has, err)
	}
}

func TestSQLiteStore_ActorSnapshot(t *testing.T) {
	store := setupSQLiteStore(t)

	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if err := store.EnsureActor("alice", created); err != nil {
		t.Fatalf("EnsureActor failed: %v", err)
	}
	// Second call keeps the original timestamp
	if err := store.EnsureActor("alice", created.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("EnsureActor repeat failed: %v", err)
	}

	if err := store.AddActivity(testActivity("alice", "meditate")); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}

	now := time.Now().UTC()
	events := []models.ActorEvent{
		{ID: "e1", ActorID: "alice", Kind: models.EventMood, Day: "2026-02-10", CreatedAt: now},
		{ID: "e2", ActorID: "alice", Kind: models.EventJournal, Day: "2026-02-11", WordCount: 400, CreatedAt: now},
		{ID: "e3", ActorID: "alice", Kind: models.EventJournal, Day: now.Format("2006-01-02"), WordCount: 50, CreatedAt: now},
	}
	for _, e := range events {
		if err := store.AddActorEvent(e); err != nil {
			t.Fatalf("AddActorEvent failed: %v", err)
		}
	}

	streaks := []models.Streak{
		{ActorID: "alice", Type: "habit", TargetID: "a", CurrentStreak: 2, LongestStreak: 2},
		{ActorID: "alice", Type: "habit", TargetID: "b", CurrentStreak: 7, LongestStreak: 7},
		{ActorID: "bob", Type: "habit", TargetID: "c", CurrentStreak: 30, LongestStreak: 30},
	}
	for _, s := range streaks {
		if err := store.PutStreak(s); err != nil {
			t.Fatalf("PutStreak failed: %v", err)
		}
	}

	snapshot, err := store.ActorSnapshot("alice")
	if err != nil {
		t.Fatalf("ActorSnapshot failed: %v", err)
	}
	if !snapshot.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", snapshot.CreatedAt, created)
	}
	if snapshot.Counts["habit"] != 1 {
		t.Errorf("habit count = %d, want 1", snapshot.Counts["habit"])
	}
	if snapshot.Counts[models.EventJournal] != 2 {
		t.Errorf("journal count = %d, want 2", snapshot.Counts[models.EventJournal])
	}
	if snapshot.RecentCounts[models.EventJournal] != 1 {
		t.Errorf("recent journal count = %d, want 1", snapshot.RecentCounts[models.EventJournal])
	}
	if snapshot.LongEntries != 1 {
		t.Errorf("long entries = %d, want 1", snapshot.LongEntries)
	}
	if snapshot.Streaks["habit"] != 7 {
		t.Errorf("best habit streak = %d, want 7", snapshot.Streaks["habit"])
	}
}

func TestSQLiteStore_LoadRejectsMissingFile(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for uninitialized storage")
	}
}
