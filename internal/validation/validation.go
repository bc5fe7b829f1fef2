package validation

import (
	"fmt"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidFrequency   ConflictType = "invalid_frequency"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictInvalidStatus      ConflictType = "invalid_status"
	ConflictInvalidQuality     ConflictType = "invalid_quality"
	ConflictDuplicateDay       ConflictType = "duplicate_day"
	ConflictInconsistentStreak ConflictType = "inconsistent_streak"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit names or IDs involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored habits, completion logs and streaks for
// inconsistencies.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateActivities checks the habit catalogue for duplicate names,
// unknown frequency types and malformed target times.
func (v *Validator) ValidateActivities(activities []models.Activity) Result {
	result := Result{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, activity := range activities {
		if activity.Name == "" {
			continue
		}
		key := activity.ActorID + "|" + activity.Name
		nameCount[key] = append(nameCount[key], activity.ID)
	}
	for key, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", key, ids),
				Items:       ids,
			})
		}
	}

	for _, activity := range activities {
		switch activity.FrequencyType {
		case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyCustom:
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidFrequency,
				Description: fmt.Sprintf("Habit %q has unknown frequency type: %s", activity.Name, activity.FrequencyType),
				Items:       []string{activity.ID},
			})
		}

		if activity.TargetTime != "" && !dates.ValidClock(activity.TargetTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Habit %q has invalid target time: %s", activity.Name, activity.TargetTime),
				Items:       []string{activity.ID},
			})
		}
	}

	return result
}

// ValidateEvents checks one habit's completion log for unknown statuses,
// out-of-range quality ratings and more than one event per calendar day.
func (v *Validator) ValidateEvents(activity models.Activity, events []models.CompletionEvent) Result {
	result := Result{Conflicts: []Conflict{}}

	seenDays := make(map[string][]string)
	for _, event := range events {
		switch event.Status {
		case models.StatusCompleted, models.StatusSkipped, models.StatusPartial:
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidStatus,
				Description: fmt.Sprintf("Habit %q has event with unknown status: %s", activity.Name, event.Status),
				Items:       []string{event.ID},
			})
		}

		if event.QualityRating < 0 || event.QualityRating > 5 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidQuality,
				Description: fmt.Sprintf("Habit %q has event with quality rating out of range: %d", activity.Name, event.QualityRating),
				Items:       []string{event.ID},
			})
		}

		day := dates.DayString(event.CompletedAt)
		seenDays[day] = append(seenDays[day], event.ID)
	}

	for day, ids := range seenDays {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDay,
				Description: fmt.Sprintf("Habit %q has %d events on %s", activity.Name, len(ids), day),
				Items:       ids,
			})
		}
	}

	return result
}

// ValidateStreaks checks streak records for impossible values.
func (v *Validator) ValidateStreaks(streaks []models.Streak) Result {
	result := Result{Conflicts: []Conflict{}}

	for _, streak := range streaks {
		key := fmt.Sprintf("%s/%s/%s", streak.ActorID, streak.Type, streak.TargetID)

		if streak.CurrentStreak < 0 || streak.LongestStreak < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInconsistentStreak,
				Description: fmt.Sprintf("Streak %s has negative length", key),
				Items:       []string{key},
			})
			continue
		}
		if streak.CurrentStreak > streak.LongestStreak {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInconsistentStreak,
				Description: fmt.Sprintf("Streak %s: current (%d) exceeds longest (%d)", key, streak.CurrentStreak, streak.LongestStreak),
				Items:       []string{key},
			})
		}
		if streak.LastActivityDate != "" {
			if _, err := dates.ParseDay(streak.LastActivityDate); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("Streak %s has invalid last activity date: %s", key, streak.LastActivityDate),
					Items:       []string{key},
				})
			}
		}
	}

	return result
}

// Merge combines several results into one.
func Merge(results ...Result) Result {
	merged := Result{Conflicts: []Conflict{}}
	for _, r := range results {
		merged.Conflicts = append(merged.Conflicts, r.Conflicts...)
	}
	return merged
}
