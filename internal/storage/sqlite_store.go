package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pulseapp/pulse/internal/dates"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/migration"
	"github.com/pulseapp/pulse/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrationsFS() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// The directory is compiled into the binary; a failure here is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return sub
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrationsFS())
	if _, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'pulse init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrationsFS())
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// MigrationRunner returns a runner bound to this store's database and the
// migrations shipped with the binary. Used by diagnostics.
func (s *SQLiteStore) MigrationRunner() *migration.Runner {
	return migration.NewRunner(s.db, migrationsFS())
}

func (s *SQLiteStore) AddActivity(activity models.Activity) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (id, actor_id, name, frequency_type, target_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.ActorID, activity.Name, string(activity.FrequencyType),
		activity.TargetTime, activity.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, actor_id, name, frequency_type, target_time, created_at
		FROM activities WHERE id = ?`, id)
	return scanActivity(row)
}

func (s *SQLiteStore) GetActivityByName(actorID, name string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, actor_id, name, frequency_type, target_time, created_at
		FROM activities WHERE actor_id = ? AND name = ?`, actorID, name)
	activity, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Activity{}, fmt.Errorf("habit not found: %s", name)
	}
	return activity, err
}

func (s *SQLiteStore) GetActivities(actorID string) ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, actor_id, name, frequency_type, target_time, created_at
		FROM activities WHERE actor_id = ? ORDER BY created_at`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var a models.Activity
	var frequencyType, createdAt string
	if err := row.Scan(&a.ID, &a.ActorID, &a.Name, &frequencyType, &a.TargetTime, &createdAt); err != nil {
		return models.Activity{}, err
	}
	a.FrequencyType = models.FrequencyType(frequencyType)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}

func (s *SQLiteStore) AddCompletionEvent(event models.CompletionEvent) error {
	day := dates.DayString(event.CompletedAt)

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM completion_events WHERE activity_id = ? AND day = ?",
		event.ActivityID, day,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check completion log: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("already logged for %s", day)
	}

	_, err = s.db.Exec(`
		INSERT INTO completion_events (id, activity_id, actor_id, completed_at, day, status, quality_rating, mood, energy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.ActivityID, event.ActorID,
		event.CompletedAt.UTC().Format(time.RFC3339), day,
		string(event.Status), event.QualityRating, event.Mood, event.Energy,
	)
	if err != nil {
		return fmt.Errorf("failed to add completion event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCompletionEvents(activityID string) ([]models.CompletionEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, activity_id, actor_id, completed_at, status, quality_rating, mood, energy
		FROM completion_events WHERE activity_id = ? ORDER BY day DESC`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CompletionEvent
	for rows.Next() {
		var e models.CompletionEvent
		var completedAt, status string
		if err := rows.Scan(&e.ID, &e.ActivityID, &e.ActorID, &completedAt, &status, &e.QualityRating, &e.Mood, &e.Energy); err != nil {
			return nil, err
		}
		e.Status = models.CompletionStatus(status)
		if t, err := time.Parse(time.RFC3339, completedAt); err == nil {
			e.CompletedAt = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) EnsureActor(actorID string, createdAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO actors (id, created_at) VALUES (?, ?)",
		actorID, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure actor: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddActorEvent(event models.ActorEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO actor_events (id, actor_id, kind, day, word_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.ActorID, event.Kind, event.Day, event.WordCount,
		event.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add actor event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetStreak(actorID, streakType, targetID string) (models.Streak, bool, error) {
	row := s.db.QueryRow(`
		SELECT actor_id, streak_type, target_id, current_streak, longest_streak, last_activity_date, streak_start_date
		FROM streaks WHERE actor_id = ? AND streak_type = ? AND target_id = ?`,
		actorID, streakType, targetID)

	var streak models.Streak
	err := row.Scan(&streak.ActorID, &streak.Type, &streak.TargetID,
		&streak.CurrentStreak, &streak.LongestStreak,
		&streak.LastActivityDate, &streak.StreakStartDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Streak{}, false, nil
	}
	if err != nil {
		return models.Streak{}, false, err
	}
	return streak, true, nil
}

func (s *SQLiteStore) GetStreaks(actorID string) ([]models.Streak, error) {
	rows, err := s.db.Query(`
		SELECT actor_id, streak_type, target_id, current_streak, longest_streak, last_activity_date, streak_start_date
		FROM streaks WHERE actor_id = ? ORDER BY streak_type, target_id`, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streaks []models.Streak
	for rows.Next() {
		var streak models.Streak
		if err := rows.Scan(&streak.ActorID, &streak.Type, &streak.TargetID,
			&streak.CurrentStreak, &streak.LongestStreak,
			&streak.LastActivityDate, &streak.StreakStartDate); err != nil {
			return nil, err
		}
		streaks = append(streaks, streak)
	}
	return streaks, rows.Err()
}

func (s *SQLiteStore) PutStreak(streak models.Streak) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO streaks (actor_id, streak_type, target_id, current_streak, longest_streak, last_activity_date, streak_start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		streak.ActorID, streak.Type, streak.TargetID,
		streak.CurrentStreak, streak.LongestStreak,
		streak.LastActivityDate, streak.StreakStartDate,
	)
	return err
}

func (s *SQLiteStore) SavePrediction(prediction models.Prediction) error {
	timesJSON, err := json.Marshal(prediction.RecommendedTimes)
	if err != nil {
		return fmt.Errorf("failed to marshal recommended times: %w", err)
	}
	factorsJSON, err := json.Marshal(prediction.RiskFactors)
	if err != nil {
		return fmt.Errorf("failed to marshal risk factors: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO predictions (activity_id, day, skip_risk_score, recommended_times, risk_factors, confidence, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prediction.ActivityID, prediction.Date, prediction.SkipRiskScore,
		string(timesJSON), string(factorsJSON), prediction.Confidence,
		prediction.GeneratedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetPrediction(activityID, date string) (models.Prediction, bool, error) {
	row := s.db.QueryRow(`
		SELECT activity_id, day, skip_risk_score, recommended_times, risk_factors, confidence, generated_at
		FROM predictions WHERE activity_id = ? AND day = ?`, activityID, date)

	var p models.Prediction
	var timesJSON, factorsJSON, generatedAt string
	err := row.Scan(&p.ActivityID, &p.Date, &p.SkipRiskScore, &timesJSON, &factorsJSON, &p.Confidence, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prediction{}, false, nil
	}
	if err != nil {
		return models.Prediction{}, false, err
	}

	if err := json.Unmarshal([]byte(timesJSON), &p.RecommendedTimes); err != nil {
		return models.Prediction{}, false, fmt.Errorf("corrupt recommended times: %w", err)
	}
	if err := json.Unmarshal([]byte(factorsJSON), &p.RiskFactors); err != nil {
		return models.Prediction{}, false, fmt.Errorf("corrupt risk factors: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, generatedAt); err == nil {
		p.GeneratedAt = t
	}
	return p, true, nil
}

func (s *SQLiteStore) GetUserLevel(actorID string) (models.UserLevel, bool, error) {
	row := s.db.QueryRow(`
		SELECT actor_id, level, current_xp, total_xp, xp_to_next_level, title
		FROM user_levels WHERE actor_id = ?`, actorID)

	var level models.UserLevel
	err := row.Scan(&level.ActorID, &level.Level, &level.CurrentXP, &level.TotalXP, &level.XPToNextLevel, &level.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserLevel{}, false, nil
	}
	if err != nil {
		return models.UserLevel{}, false, err
	}
	return level, true, nil
}

func (s *SQLiteStore) PutUserLevel(level models.UserLevel) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO user_levels (actor_id, level, current_xp, total_xp, xp_to_next_level, title)
		VALUES (?, ?, ?, ?, ?, ?)`,
		level.ActorID, level.Level, level.CurrentXP, level.TotalXP, level.XPToNextLevel, level.Title,
	)
	return err
}

func (s *SQLiteStore) HasAchievement(actorID, code string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM user_achievements WHERE actor_id = ? AND code = ?",
		actorID, code,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) AddAchievement(achievement models.UserAchievement) error {
	_, err := s.db.Exec(
		"INSERT INTO user_achievements (actor_id, code, earned_at) VALUES (?, ?, ?)",
		achievement.ActorID, achievement.Code, achievement.EarnedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add achievement: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAchievements(actorID string) ([]models.UserAchievement, error) {
	rows, err := s.db.Query(
		"SELECT actor_id, code, earned_at FROM user_achievements WHERE actor_id = ? ORDER BY earned_at",
		actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []models.UserAchievement
	for rows.Next() {
		var a models.UserAchievement
		var earnedAt string
		if err := rows.Scan(&a.ActorID, &a.Code, &earnedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, earnedAt); err == nil {
			a.EarnedAt = t
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (s *SQLiteStore) ActorSnapshot(actorID string) (engine.Snapshot, error) {
	snapshot := engine.Snapshot{
		Counts:       make(map[string]int),
		RecentCounts: make(map[string]int),
		Streaks:      make(map[string]int),
	}

	var createdAt string
	err := s.db.QueryRow("SELECT created_at FROM actors WHERE id = ?", actorID).Scan(&createdAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return engine.Snapshot{}, fmt.Errorf("failed to load actor: %w", err)
	}
	if err == nil {
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			snapshot.CreatedAt = t
		}
	}

	var habitCount int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM activities WHERE actor_id = ?", actorID,
	).Scan(&habitCount); err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to count activities: %w", err)
	}
	snapshot.Counts[engine.CountHabits] = habitCount

	rows, err := s.db.Query(
		"SELECT kind, COUNT(*) FROM actor_events WHERE actor_id = ? GROUP BY kind", actorID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to count actor events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return engine.Snapshot{}, err
		}
		snapshot.Counts[kind] = count
	}
	if err := rows.Err(); err != nil {
		return engine.Snapshot{}, err
	}

	// Trailing 7-day window, inclusive of today
	cutoff := dates.DayString(time.Now().UTC().AddDate(0, 0, -6))
	recentRows, err := s.db.Query(
		"SELECT kind, COUNT(*) FROM actor_events WHERE actor_id = ? AND day >= ? GROUP BY kind",
		actorID, cutoff)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to count recent actor events: %w", err)
	}
	defer recentRows.Close()
	for recentRows.Next() {
		var kind string
		var count int
		if err := recentRows.Scan(&kind, &count); err != nil {
			return engine.Snapshot{}, err
		}
		snapshot.RecentCounts[kind] = count
	}
	if err := recentRows.Err(); err != nil {
		return engine.Snapshot{}, err
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM actor_events WHERE actor_id = ? AND kind = ? AND word_count >= ?",
		actorID, models.EventJournal, engine.LongEntryMinWords,
	).Scan(&snapshot.LongEntries); err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to count long entries: %w", err)
	}

	streakRows, err := s.db.Query(
		"SELECT streak_type, MAX(current_streak) FROM streaks WHERE actor_id = ? GROUP BY streak_type",
		actorID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load streaks: %w", err)
	}
	defer streakRows.Close()
	for streakRows.Next() {
		var streakType string
		var best int
		if err := streakRows.Scan(&streakType, &best); err != nil {
			return engine.Snapshot{}, err
		}
		snapshot.Streaks[streakType] = best
	}
	if err := streakRows.Err(); err != nil {
		return engine.Snapshot{}, err
	}

	return snapshot, nil
}

func (s *SQLiteStore) AddDailyChallenge(challenge models.DailyChallenge) error {
	_, err := s.db.Exec(
		"INSERT INTO daily_challenges (id, day, xp_reward, description) VALUES (?, ?, ?, ?)",
		challenge.ID, challenge.Date, challenge.XPReward, challenge.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to add daily challenge: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetChallenge(challengeID string) (models.DailyChallenge, error) {
	row := s.db.QueryRow(
		"SELECT id, day, xp_reward, description FROM daily_challenges WHERE id = ?", challengeID)

	var c models.DailyChallenge
	if err := row.Scan(&c.ID, &c.Date, &c.XPReward, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyChallenge{}, fmt.Errorf("challenge not found: %s", challengeID)
		}
		return models.DailyChallenge{}, err
	}
	return c, nil
}

func (s *SQLiteStore) GetChallengeByDate(date string) (models.DailyChallenge, bool, error) {
	row := s.db.QueryRow(
		"SELECT id, day, xp_reward, description FROM daily_challenges WHERE day = ?", date)

	var c models.DailyChallenge
	err := row.Scan(&c.ID, &c.Date, &c.XPReward, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyChallenge{}, false, nil
	}
	if err != nil {
		return models.DailyChallenge{}, false, err
	}
	return c, true, nil
}

func (s *SQLiteStore) HasChallengeCompletion(actorID, challengeID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM challenge_completions WHERE actor_id = ? AND challenge_id = ?",
		actorID, challengeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) AddChallengeCompletion(completion models.ChallengeCompletion) error {
	_, err := s.db.Exec(
		"INSERT INTO challenge_completions (actor_id, challenge_id, completed_at) VALUES (?, ?, ?)",
		completion.ActorID, completion.ChallengeID, completion.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add challenge completion: %w", err)
	}
	return nil
}
