package models

// Keys the model is instructed to return.
const (
	KeyJDMatch          = "JD Match"
	KeyMissingKeywords  = "MissingKeywords"
	KeyMatchingKeywords = "MatchingKeywords"
	KeyProfileSummary   = "Profile Summary"
	KeyScoreExplanation = "ScoreExplanation"
)

// DefaultScoreExplanation is used when the model omits ScoreExplanation.
const DefaultScoreExplanation = "can't explain the score"

type AnalysisResult struct {
	MatchPercentage  string   `json:"match_percentage"`
	MissingKeywords  []string `json:"missing_keywords"`
	MatchingKeywords []string `json:"matching_keywords"`
	ProfileSummary   string   `json:"profile_summary"`
	ScoreExplanation string   `json:"score_explanation"`
}
