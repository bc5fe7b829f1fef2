package models

import "time"

// Prediction is the skip-risk estimate for an activity on one calendar day.
// Regenerating a prediction replaces the prior record for that day.
type Prediction struct {
	ActivityID       string             `json:"activity_id"`
	Date             string             `json:"date"`              // YYYY-MM-DD format
	SkipRiskScore    float64            `json:"skip_risk_score"`   // [0,1]
	RecommendedTimes []string           `json:"recommended_times"` // HH:MM, most likely first
	RiskFactors      map[string]float64 `json:"risk_factors,omitempty"`
	Confidence       float64            `json:"confidence"` // [0,1]
	GeneratedAt      time.Time          `json:"generated_at"`
}
