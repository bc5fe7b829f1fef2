package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/pulseapp/pulse/internal/cli"
	"github.com/pulseapp/pulse/internal/engine"
	"github.com/pulseapp/pulse/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/pulse/pulse.db"`
	Actor   string `help:"Acting user ID." default:"default"`

	Init  cli.InitCmd `cmd:"" help:"Initialize pulse storage."`
	Habit struct {
		Add  cli.HabitAddCmd  `cmd:"" help:"Add a new habit."`
		List cli.HabitListCmd `cmd:"" help:"List habits with their stats."`
	} `cmd:"" help:"Manage habits."`
	Log    cli.LogCmd `cmd:"" help:"Log a habit completion."`
	Record struct {
		Mood     cli.RecordMoodCmd     `cmd:"" help:"Record a mood check-in."`
		Dream    cli.RecordDreamCmd    `cmd:"" help:"Record a dream entry."`
		Journal  cli.RecordJournalCmd  `cmd:"" help:"Record a journal entry."`
		Decision cli.RecordDecisionCmd `cmd:"" help:"Record a logged decision."`
		Insight  cli.RecordInsightCmd  `cmd:"" help:"Record a saved insight."`
		Checkin  cli.RecordCheckinCmd  `cmd:"" help:"Record a morning check-in."`
	} `cmd:"" help:"Record journaling entries."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show stats for a habit."`
	Predict      cli.PredictCmd      `cmd:"" help:"Predict skip risk for a habit."`
	Level        cli.LevelCmd        `cmd:"" help:"Show your level and XP."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show earned achievements."`
	Challenge    struct {
		Today    cli.ChallengeTodayCmd    `cmd:"" help:"Show today's challenge."`
		Complete cli.ChallengeCompleteCmd `cmd:"" help:"Claim today's challenge."`
	} `cmd:"" help:"Daily challenges."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pulse"),
		kong.Description("Habit analytics and gamification companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: engine.New(store),
		Actor:  CLI.Actor,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
