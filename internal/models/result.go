package models

type AnalyzeResponse struct {
	SessionID string         `json:"session_id"`
	Result    *AnalysisView  `json:"result,omitempty"`
	Raw       AnalysisResult `json:"raw"`
}

// AnalysisView is the rendered form of an AnalysisResult.
type AnalysisView struct {
	MatchScore       string `json:"match_score"`
	MissingKeywords  string `json:"missing_keywords"`
	MatchingKeywords string `json:"matching_keywords"`
	ProfileSummary   string `json:"profile_summary"`
	ScoreExplanation string `json:"score_explanation"`
}

type SessionResponse struct {
	ID         string `json:"id"`
	Processing bool   `json:"processing"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
