package presenter

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	noMissingKeywords  = "No critical missing keywords found!"
	noMatchingKeywords = "No critical matching keywords found!"
	noSummary          = "No summary available"
	noMatchScore       = "N/A"
)

// Render converts a result into display strings with placeholders for blanks.
func Render(result *models.AnalysisResult) *models.AnalysisView {
	view := &models.AnalysisView{
		MatchScore:       orDefault(result.MatchPercentage, noMatchScore),
		MissingKeywords:  joinKeywords(result.MissingKeywords, noMissingKeywords),
		MatchingKeywords: joinKeywords(result.MatchingKeywords, noMatchingKeywords),
		ProfileSummary:   orDefault(result.ProfileSummary, noSummary),
		ScoreExplanation: orDefault(result.ScoreExplanation, models.DefaultScoreExplanation),
	}
	return view
}

// Text lays the view out for a terminal.
func Text(view *models.AnalysisView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Match Score: %s\n\n", view.MatchScore)
	section(&b, "Missing Keywords", view.MissingKeywords)
	section(&b, "Matching Keywords", view.MatchingKeywords)
	section(&b, "Profile Summary", view.ProfileSummary)
	section(&b, "ScoreExplanation", view.ScoreExplanation)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "%s\n%s\n%s\n\n", title, strings.Repeat("-", len(title)), body)
}

func joinKeywords(keywords []string, empty string) string {
	if len(keywords) == 0 {
		return empty
	}
	return strings.Join(keywords, ", ")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
