package engine

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse/internal/models"
)

// CompletionResult reports a claimed daily challenge.
type CompletionResult struct {
	ChallengeID string      `json:"challenge_id"`
	CompletedAt time.Time   `json:"completed_at"`
	Award       AwardResult `json:"award"`
}

// CompleteChallenge records an actor's completion of a dated challenge and
// awards its XP. A second claim for the same (actor, challenge) pair fails
// with ErrAlreadyCompleted and grants nothing.
func (e *Engine) CompleteChallenge(actorID, challengeID string) (CompletionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	done, err := e.store.HasChallengeCompletion(actorID, challengeID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to check challenge completion: %w", err)
	}
	if done {
		return CompletionResult{}, fmt.Errorf("challenge %s: %w", challengeID, ErrAlreadyCompleted)
	}

	challenge, err := e.store.GetChallenge(challengeID)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("failed to load challenge %s: %w", challengeID, err)
	}

	completion := models.ChallengeCompletion{
		ActorID:     actorID,
		ChallengeID: challengeID,
		CompletedAt: e.now(),
	}
	if err := e.store.AddChallengeCompletion(completion); err != nil {
		return CompletionResult{}, fmt.Errorf("failed to record challenge completion: %w", err)
	}

	award, err := e.awardXP(actorID, challenge.XPReward, challenge.Description)
	if err != nil {
		return CompletionResult{}, err
	}

	return CompletionResult{
		ChallengeID: challengeID,
		CompletedAt: completion.CompletedAt,
		Award:       award,
	}, nil
}
