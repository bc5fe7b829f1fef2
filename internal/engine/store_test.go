package engine

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

// fakeStore is an in-memory Store used by the engine tests.
type fakeStore struct {
	streaks      map[string]models.Streak
	predictions  map[string]models.Prediction
	levels       map[string]models.UserLevel
	achievements map[string]models.UserAchievement
	snapshots    map[string]Snapshot
	challenges   map[string]models.DailyChallenge
	completions  map[string]models.ChallengeCompletion
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		streaks:      make(map[string]models.Streak),
		predictions:  make(map[string]models.Prediction),
		levels:       make(map[string]models.UserLevel),
		achievements: make(map[string]models.UserAchievement),
		snapshots:    make(map[string]Snapshot),
		challenges:   make(map[string]models.DailyChallenge),
		completions:  make(map[string]models.ChallengeCompletion),
	}
}

func streakKey(actorID, streakType, targetID string) string {
	return actorID + "/" + streakType + "/" + targetID
}

func (f *fakeStore) GetStreak(actorID, streakType, targetID string) (models.Streak, bool, error) {
	s, ok := f.streaks[streakKey(actorID, streakType, targetID)]
	return s, ok, nil
}

func (f *fakeStore) PutStreak(s models.Streak) error {
	f.streaks[streakKey(s.ActorID, s.Type, s.TargetID)] = s
	return nil
}

func (f *fakeStore) SavePrediction(p models.Prediction) error {
	f.predictions[p.ActivityID+"/"+p.Date] = p
	return nil
}

func (f *fakeStore) GetUserLevel(actorID string) (models.UserLevel, bool, error) {
	l, ok := f.levels[actorID]
	return l, ok, nil
}

func (f *fakeStore) PutUserLevel(l models.UserLevel) error {
	f.levels[l.ActorID] = l
	return nil
}

func (f *fakeStore) HasAchievement(actorID, code string) (bool, error) {
	_, ok := f.achievements[actorID+"/"+code]
	return ok, nil
}

func (f *fakeStore) AddAchievement(a models.UserAchievement) error {
	key := a.ActorID + "/" + a.Code
	if _, exists := f.achievements[key]; exists {
		return fmt.Errorf("achievement %s already exists", key)
	}
	f.achievements[key] = a
	return nil
}

func (f *fakeStore) ActorSnapshot(actorID string) (Snapshot, error) {
	if s, ok := f.snapshots[actorID]; ok {
		return s, nil
	}
	return Snapshot{
		Counts:       make(map[string]int),
		RecentCounts: make(map[string]int),
		Streaks:      make(map[string]int),
	}, nil
}

func (f *fakeStore) GetChallenge(challengeID string) (models.DailyChallenge, error) {
	c, ok := f.challenges[challengeID]
	if !ok {
		return models.DailyChallenge{}, fmt.Errorf("challenge not found: %s", challengeID)
	}
	return c, nil
}

func (f *fakeStore) HasChallengeCompletion(actorID, challengeID string) (bool, error) {
	_, ok := f.completions[actorID+"/"+challengeID]
	return ok, nil
}

func (f *fakeStore) AddChallengeCompletion(c models.ChallengeCompletion) error {
	key := c.ActorID + "/" + c.ChallengeID
	if _, exists := f.completions[key]; exists {
		return fmt.Errorf("completion %s already exists", key)
	}
	f.completions[key] = c
	return nil
}

// newTestEngine returns an engine over a fresh fake store with a fixed clock.
func newTestEngine() (*Engine, *fakeStore) {
	store := newFakeStore()
	e := New(store)
	e.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return e, store
}
