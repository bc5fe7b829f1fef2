package engine

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

// Counter kinds tracked in Snapshot.Counts and Snapshot.RecentCounts.
const (
	CountHabits   = "habit"
	CountMoods    = models.EventMood
	CountDreams   = models.EventDream
	CountJournals = models.EventJournal
	CountDecision = models.EventDecision
	CountInsights = models.EventInsight
	CountCheckins = models.EventCheckin
)

// LongEntryMinWords is the word count a journal entry needs to count as
// long-form for the wordsmith achievement.
const LongEntryMinWords = 250

// recentWindowDays is the trailing window Snapshot.RecentCounts covers.
const recentWindowDays = 7

// ProgressFunc scores an actor's progress toward an achievement in [0,1].
type ProgressFunc func(s Snapshot) float64

// Achievement pairs a stable code with its reward and progress formula.
type Achievement struct {
	Code        string
	Name        string
	Description string
	XPReward    int
	Progress    ProgressFunc
}

// Registry holds the achievement catalogue. New achievement kinds are added
// by registration rather than by growing a dispatch switch.
type Registry struct {
	order []string
	defs  map[string]Achievement
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Achievement)}
}

// Register adds a definition to the catalogue. Codes must be unique and every
// definition needs a progress formula.
func (r *Registry) Register(a Achievement) error {
	if a.Code == "" {
		return fmt.Errorf("achievement code is empty")
	}
	if a.Progress == nil {
		return fmt.Errorf("achievement %s has no progress formula", a.Code)
	}
	if _, exists := r.defs[a.Code]; exists {
		return fmt.Errorf("achievement %s already registered", a.Code)
	}
	r.defs[a.Code] = a
	r.order = append(r.order, a.Code)
	return nil
}

func (r *Registry) mustRegister(a Achievement) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// All returns the catalogue in registration order.
func (r *Registry) All() []Achievement {
	out := make([]Achievement, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.defs[code])
	}
	return out
}

// Get looks up a definition by code.
func (r *Registry) Get(code string) (Achievement, bool) {
	a, ok := r.defs[code]
	return a, ok
}

func clampRatio(have, want int) float64 {
	if want <= 0 || have >= want {
		return 1
	}
	if have <= 0 {
		return 0
	}
	return float64(have) / float64(want)
}

// CountThreshold scores lifetime counts of one kind against a target.
func CountThreshold(kind string, n int) ProgressFunc {
	return func(s Snapshot) float64 {
		return clampRatio(s.Counts[kind], n)
	}
}

// StreakThreshold scores the actor's best current streak of one type.
func StreakThreshold(streakType string, n int) ProgressFunc {
	return func(s Snapshot) float64 {
		return clampRatio(s.Streaks[streakType], n)
	}
}

// WindowedCount scores counts of one kind within the trailing 7-day window.
func WindowedCount(kind string, n int) ProgressFunc {
	return func(s Snapshot) float64 {
		return clampRatio(s.RecentCounts[kind], n)
	}
}

// ContentLengthThreshold scores the number of long-form journal entries.
func ContentLengthThreshold(n int) ProgressFunc {
	return func(s Snapshot) float64 {
		return clampRatio(s.LongEntries, n)
	}
}

// DateCutoff awards full progress to actors created on or before the cutoff.
func DateCutoff(cutoff time.Time) ProgressFunc {
	return func(s Snapshot) float64 {
		if !s.CreatedAt.IsZero() && !s.CreatedAt.After(cutoff) {
			return 1
		}
		return 0
	}
}

var earlyAdopterCutoff = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// DefaultRegistry returns the built-in achievement catalogue.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.mustRegister(Achievement{Code: "first_habit", Name: "First Steps", Description: "Create your first habit", XPReward: 25, Progress: CountThreshold(CountHabits, 1)})
	r.mustRegister(Achievement{Code: "habit_streak_3", Name: "Getting Going", Description: "Keep a 3-day habit streak", XPReward: 50, Progress: StreakThreshold(models.StreakTypeHabit, 3)})
	r.mustRegister(Achievement{Code: "habit_streak_7", Name: "One Full Week", Description: "Keep a 7-day habit streak", XPReward: 100, Progress: StreakThreshold(models.StreakTypeHabit, 7)})
	r.mustRegister(Achievement{Code: "habit_streak_30", Name: "Iron Will", Description: "Keep a 30-day habit streak", XPReward: 500, Progress: StreakThreshold(models.StreakTypeHabit, 30)})
	r.mustRegister(Achievement{Code: "first_mood", Name: "Checking In", Description: "Log your mood for the first time", XPReward: 10, Progress: CountThreshold(CountMoods, 1)})
	r.mustRegister(Achievement{Code: "mood_30", Name: "Self Aware", Description: "Log your mood 30 times", XPReward: 100, Progress: CountThreshold(CountMoods, 30)})
	r.mustRegister(Achievement{Code: "mood_week", Name: "Week of Feelings", Description: "Log your mood every day for a week", XPReward: 75, Progress: WindowedCount(CountMoods, 7)})
	r.mustRegister(Achievement{Code: "first_dream", Name: "Dream Catcher", Description: "Record your first dream", XPReward: 10, Progress: CountThreshold(CountDreams, 1)})
	r.mustRegister(Achievement{Code: "dream_10", Name: "Lucid", Description: "Record 10 dreams", XPReward: 100, Progress: CountThreshold(CountDreams, 10)})
	r.mustRegister(Achievement{Code: "first_decision", Name: "Decider", Description: "Log your first decision", XPReward: 25, Progress: CountThreshold(CountDecision, 1)})
	r.mustRegister(Achievement{Code: "first_insight", Name: "Lightbulb", Description: "Save your first insight", XPReward: 25, Progress: CountThreshold(CountInsights, 1)})
	r.mustRegister(Achievement{Code: "journal_10", Name: "Journaler", Description: "Write 10 journal entries", XPReward: 100, Progress: CountThreshold(CountJournals, 10)})
	r.mustRegister(Achievement{Code: "journal_50", Name: "Chronicler", Description: "Write 50 journal entries", XPReward: 300, Progress: CountThreshold(CountJournals, 50)})
	r.mustRegister(Achievement{Code: "journal_streak_14", Name: "Daily Writer", Description: "Journal 14 days in a row", XPReward: 200, Progress: StreakThreshold(models.StreakTypeJournal, 14)})
	r.mustRegister(Achievement{Code: "morning_person", Name: "Morning Person", Description: "Do 7 morning check-ins", XPReward: 75, Progress: CountThreshold(CountCheckins, 7)})
	r.mustRegister(Achievement{Code: "wordsmith", Name: "Wordsmith", Description: "Write 10 journal entries of 250+ words", XPReward: 150, Progress: ContentLengthThreshold(10)})
	r.mustRegister(Achievement{Code: "early_adopter", Name: "Early Adopter", Description: "Joined during the first release", XPReward: 100, Progress: DateCutoff(earlyAdopterCutoff)})

	return r
}

// CheckAndAward evaluates every unearned achievement for the actor and awards
// those whose progress reached 1.0. The existence check runs before any
// recomputation, so a just-awarded achievement is never re-awarded even
// though the XP it grants re-enters this check; the recursion depth is
// bounded by the catalogue size.
func (e *Engine) CheckAndAward(actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkAndAward(actorID)
}

func (e *Engine) checkAndAward(actorID string) error {
	snapshot, err := e.store.ActorSnapshot(actorID)
	if err != nil {
		return fmt.Errorf("failed to load actor snapshot: %w", err)
	}

	for _, def := range e.registry.All() {
		earned, err := e.store.HasAchievement(actorID, def.Code)
		if err != nil {
			return fmt.Errorf("failed to check achievement %s: %w", def.Code, err)
		}
		if earned {
			continue
		}
		if def.Progress(snapshot) < 1.0 {
			continue
		}

		record := models.UserAchievement{
			ActorID:  actorID,
			Code:     def.Code,
			EarnedAt: e.now(),
		}
		if err := e.store.AddAchievement(record); err != nil {
			return fmt.Errorf("failed to record achievement %s: %w", def.Code, err)
		}
		if _, err := e.awardXP(actorID, def.XPReward, "Achievement: "+def.Name); err != nil {
			return err
		}
	}
	return nil
}
