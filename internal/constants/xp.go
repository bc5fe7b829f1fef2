package constants

// XP awarded per logged entry, by kind. Achievement and challenge rewards
// carry their own amounts and are not listed here.
const (
	XPHabitCompletion = 10
	XPMoodCheckin     = 5
	XPDreamEntry      = 10
	XPJournalEntry    = 15
	XPDecisionLogged  = 10
	XPInsightSaved    = 20
	XPMorningCheckin  = 5
)
