package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/models"
)

type Store struct {
	Version              int                                  `json:"version"`
	Actors               map[string]string                    `json:"actors"`
	Activities           map[string]models.Activity           `json:"activities"`
	CompletionEvents     map[string][]models.CompletionEvent  `json:"completion_events"`
	ActorEvents          map[string][]models.ActorEvent       `json:"actor_events"`
	Streaks              map[string]models.Streak             `json:"streaks"`
	Predictions          map[string]models.Prediction         `json:"predictions"`
	Levels               map[string]models.UserLevel          `json:"levels"`
	Achievements         map[string][]models.UserAchievement  `json:"achievements"`
	Challenges           map[string]models.DailyChallenge     `json:"challenges"`
	ChallengeCompletions map[string]models.ChallengeCompletion `json:"challenge_completions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func newStore() *Store {
	return &Store{
		Version:              1,
		Actors:               make(map[string]string),
		Activities:           make(map[string]models.Activity),
		CompletionEvents:     make(map[string][]models.CompletionEvent),
		ActorEvents:          make(map[string][]models.ActorEvent),
		Streaks:              make(map[string]models.Streak),
		Predictions:          make(map[string]models.Prediction),
		Levels:               make(map[string]models.UserLevel),
		Achievements:         make(map[string][]models.UserAchievement),
		Challenges:           make(map[string]models.DailyChallenge),
		ChallengeCompletions: make(map[string]models.ChallengeCompletion),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = newStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'pulse init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	defaults := newStore()
	if s.store.Actors == nil {
		s.store.Actors = defaults.Actors
	}
	if s.store.Activities == nil {
		s.store.Activities = defaults.Activities
	}
	if s.store.CompletionEvents == nil {
		s.store.CompletionEvents = defaults.CompletionEvents
	}
	if s.store.ActorEvents == nil {
		s.store.ActorEvents = defaults.ActorEvents
	}
	if s.store.Streaks == nil {
		s.store.Streaks = defaults.Streaks
	}
	if s.store.Predictions == nil {
		s.store.Predictions = defaults.Predictions
	}
	if s.store.Levels == nil {
		s.store.Levels = defaults.Levels
	}
	if s.store.Achievements == nil {
		s.store.Achievements = defaults.Achievements
	}
	if s.store.Challenges == nil {
		s.store.Challenges = defaults.Challenges
	}
	if s.store.ChallengeCompletions == nil {
		s.store.ChallengeCompletions = defaults.ChallengeCompletions
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func streakKey(actorID, streakType, targetID string) string {
	return actorID + "|" + streakType + "|" + targetID
}

func predictionKey(activityID, date string) string {
	return activityID + "|" + date
}

func completionKey(actorID, challengeID string) string {
	return actorID + "|" + challengeID
}

func (s *JSONStore) AddActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("habit not found: %s", id)
	}
	return activity, nil
}

func (s *JSONStore) GetActivityByName(actorID, name string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	for _, activity := range s.store.Activities {
		if activity.ActorID == actorID && activity.Name == name {
			return activity, nil
		}
	}
	return models.Activity{}, fmt.Errorf("habit not found: %s", name)
}

func (s *JSONStore) GetActivities(actorID string) ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var activities []models.Activity
	for _, activity := range s.store.Activities {
		if activity.ActorID == actorID {
			activities = append(activities, activity)
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.Before(activities[j].CreatedAt)
	})
	return activities, nil
}

func (s *JSONStore) AddCompletionEvent(event models.CompletionEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	day := dates.DayString(event.CompletedAt)
	for _, existing := range s.store.CompletionEvents[event.ActivityID] {
		if dates.DayString(existing.CompletedAt) == day {
			return fmt.Errorf("already logged for %s", day)
		}
	}

	s.store.CompletionEvents[event.ActivityID] = append(s.store.CompletionEvents[event.ActivityID], event)
	return s.save()
}

func (s *JSONStore) GetCompletionEvents(activityID string) ([]models.CompletionEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	events := make([]models.CompletionEvent, len(s.store.CompletionEvents[activityID]))
	copy(events, s.store.CompletionEvents[activityID])
	sort.Slice(events, func(i, j int) bool {
		return events[i].CompletedAt.After(events[j].CompletedAt)
	})
	return events, nil
}

func (s *JSONStore) EnsureActor(actorID string, createdAt time.Time) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Actors[actorID]; ok {
		return nil
	}
	s.store.Actors[actorID] = createdAt.UTC().Format(time.RFC3339)
	return s.save()
}

func (s *JSONStore) AddActorEvent(event models.ActorEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.ActorEvents[event.ActorID] = append(s.store.ActorEvents[event.ActorID], event)
	return s.save()
}

func (s *JSONStore) GetStreak(actorID, streakType, targetID string) (models.Streak, bool, error) {
	if s.store == nil {
		return models.Streak{}, false, fmt.Errorf("storage not loaded")
	}

	streak, ok := s.store.Streaks[streakKey(actorID, streakType, targetID)]
	return streak, ok, nil
}

func (s *JSONStore) GetStreaks(actorID string) ([]models.Streak, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var streaks []models.Streak
	for _, streak := range s.store.Streaks {
		if streak.ActorID == actorID {
			streaks = append(streaks, streak)
		}
	}
	sort.Slice(streaks, func(i, j int) bool {
		if streaks[i].Type != streaks[j].Type {
			return streaks[i].Type < streaks[j].Type
		}
		return streaks[i].TargetID < streaks[j].TargetID
	})
	return streaks, nil
}

func (s *JSONStore) PutStreak(streak models.Streak) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Streaks[streakKey(streak.ActorID, streak.Type, streak.TargetID)] = streak
	return s.save()
}

func (s *JSONStore) SavePrediction(prediction models.Prediction) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Predictions[predictionKey(prediction.ActivityID, prediction.Date)] = prediction
	return s.save()
}

func (s *JSONStore) GetPrediction(activityID, date string) (models.Prediction, bool, error) {
	if s.store == nil {
		return models.Prediction{}, false, fmt.Errorf("storage not loaded")
	}

	prediction, ok := s.store.Predictions[predictionKey(activityID, date)]
	return prediction, ok, nil
}

func (s *JSONStore) GetUserLevel(actorID string) (models.UserLevel, bool, error) {
	if s.store == nil {
		return models.UserLevel{}, false, fmt.Errorf("storage not loaded")
	}

	level, ok := s.store.Levels[actorID]
	return level, ok, nil
}

func (s *JSONStore) PutUserLevel(level models.UserLevel) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Levels[level.ActorID] = level
	return s.save()
}

func (s *JSONStore) HasAchievement(actorID, code string) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	for _, a := range s.store.Achievements[actorID] {
		if a.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *JSONStore) AddAchievement(achievement models.UserAchievement) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Achievements[achievement.ActorID] = append(s.store.Achievements[achievement.ActorID], achievement)
	return s.save()
}

func (s *JSONStore) GetAchievements(actorID string) ([]models.UserAchievement, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	achievements := make([]models.UserAchievement, len(s.store.Achievements[actorID]))
	copy(achievements, s.store.Achievements[actorID])
	sort.Slice(achievements, func(i, j int) bool {
		return achievements[i].EarnedAt.Before(achievements[j].EarnedAt)
	})
	return achievements, nil
}

func (s *JSONStore) ActorSnapshot(actorID string) (engine.Snapshot, error) {
	if s.store == nil {
		return engine.Snapshot{}, fmt.Errorf("storage not loaded")
	}

	snapshot := engine.Snapshot{
		Counts:       make(map[string]int),
		RecentCounts: make(map[string]int),
		Streaks:      make(map[string]int),
	}

	if createdAt, ok := s.store.Actors[actorID]; ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			snapshot.CreatedAt = t
		}
	}

	for _, activity := range s.store.Activities {
		if activity.ActorID == actorID {
			snapshot.Counts[engine.CountHabits]++
		}
	}

	// Trailing 7-day window, inclusive of today
	cutoff := dates.DayString(time.Now().UTC().AddDate(0, 0, -6))
	for _, event := range s.store.ActorEvents[actorID] {
		snapshot.Counts[event.Kind]++
		if event.Day >= cutoff {
			snapshot.RecentCounts[event.Kind]++
		}
		if event.Kind == models.EventJournal && event.WordCount >= engine.LongEntryMinWords {
			snapshot.LongEntries++
		}
	}

	for _, streak := range s.store.Streaks {
		if streak.ActorID != actorID {
			continue
		}
		if streak.CurrentStreak > snapshot.Streaks[streak.Type] {
			snapshot.Streaks[streak.Type] = streak.CurrentStreak
		}
	}

	return snapshot, nil
}

func (s *JSONStore) AddDailyChallenge(challenge models.DailyChallenge) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Challenges[challenge.ID] = challenge
	return s.save()
}

func (s *JSONStore) GetChallenge(challengeID string) (models.DailyChallenge, error) {
	if s.store == nil {
		return models.DailyChallenge{}, fmt.Errorf("storage not loaded")
	}

	challenge, ok := s.store.Challenges[challengeID]
	if !ok {
		return models.DailyChallenge{}, fmt.Errorf("challenge not found: %s", challengeID)
	}
	return challenge, nil
}

func (s *JSONStore) GetChallengeByDate(date string) (models.DailyChallenge, bool, error) {
	if s.store == nil {
		return models.DailyChallenge{}, false, fmt.Errorf("storage not loaded")
	}

	for _, challenge := range s.store.Challenges {
		if challenge.Date == date {
			return challenge, true, nil
		}
	}
	return models.DailyChallenge{}, false, nil
}

func (s *JSONStore) HasChallengeCompletion(actorID, challengeID string) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	_, ok := s.store.ChallengeCompletions[completionKey(actorID, challengeID)]
	return ok, nil
}

func (s *JSONStore) AddChallengeCompletion(completion models.ChallengeCompletion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.ChallengeCompletions[completionKey(completion.ActorID, completion.ChallengeID)] = completion
	return s.save()
}
