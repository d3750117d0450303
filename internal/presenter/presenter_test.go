package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestRender(t *testing.T) {
	view := Render(&models.AnalysisResult{
		MatchPercentage:  "82%",
		MissingKeywords:  []string{"Kubernetes", "Go"},
		MatchingKeywords: []string{"Python", "SQL", "Python"},
		ProfileSummary:   "Strong backend profile.",
		ScoreExplanation: "Keyword match 8/10.",
	})

	assert.Equal(t, "82%", view.MatchScore)
	assert.Equal(t, "Kubernetes, Go", view.MissingKeywords)
	assert.Equal(t, "Python, SQL, Python", view.MatchingKeywords)
	assert.Equal(t, "Strong backend profile.", view.ProfileSummary)
	assert.Equal(t, "Keyword match 8/10.", view.ScoreExplanation)
}

func TestRenderPlaceholders(t *testing.T) {
	view := Render(&models.AnalysisResult{})

	assert.Equal(t, "N/A", view.MatchScore)
	assert.Equal(t, "No critical missing keywords found!", view.MissingKeywords)
	assert.Equal(t, "No critical matching keywords found!", view.MatchingKeywords)
	assert.Equal(t, "No summary available", view.ProfileSummary)
	assert.Equal(t, models.DefaultScoreExplanation, view.ScoreExplanation)
}

func TestText(t *testing.T) {
	out := Text(Render(&models.AnalysisResult{
		MatchPercentage: "50%",
		ProfileSummary:  "ok",
	}))

	assert.Contains(t, out, "Match Score: 50%\n")
	assert.Contains(t, out, "Missing Keywords\n----------------\nNo critical missing keywords found!\n")
	assert.Contains(t, out, "Profile Summary\n---------------\nok\n")
	assert.Contains(t, out, "ScoreExplanation\n----------------\ncan't explain the score\n")
}
