package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// analysisTemperature pins decoding to greedy so repeated runs score alike.
const analysisTemperature float32 = 0

var requiredFields = []string{
	models.KeyJDMatch,
	models.KeyMissingKeywords,
	models.KeyMatchingKeywords,
	models.KeyProfileSummary,
}

// ModelClient sends an analysis prompt and returns a validated result.
// Every error it returns is a *ModelError.
type ModelClient interface {
	Query(ctx context.Context, prompt string) (*models.AnalysisResult, error)
}

type modelClient struct {
	gemini GeminiService
	logger *zap.Logger
}

func NewModelClient(gemini GeminiService, logger *zap.Logger) ModelClient {
	return &modelClient{
		gemini: gemini,
		logger: logger,
	}
}

func (m *modelClient) Query(ctx context.Context, prompt string) (*models.AnalysisResult, error) {
	start := time.Now()
	text, err := m.gemini.GenerateText(ctx, prompt, analysisTemperature)
	metrics.ModelRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, newModelError("request failed", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, newModelError("empty response", nil)
	}

	m.logger.Debug("model response received", zap.Int("characters", len(text)))

	fields, err := decodeObject(text)
	if err != nil {
		m.logger.Warn("model response is not strict JSON, attempting repair", zap.Error(err))

		repaired, ok := extractJSON(text)
		if !ok {
			return nil, newModelError("could not extract valid JSON response", err)
		}

		fields, err = decodeObject(repaired)
		if err != nil {
			return nil, newModelError("could not extract valid JSON response", err)
		}
	}

	return buildResult(fields)
}

func decodeObject(text string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return fields, nil
}

// extractJSON returns the span from the first '{' to the last '}'. Braces
// inside string values can defeat this; it is a salvage step, not a parser.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func buildResult(fields map[string]json.RawMessage) (*models.AnalysisResult, error) {
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, newModelError("missing required field: "+name, nil)
		}
	}

	result := &models.AnalysisResult{
		ScoreExplanation: models.DefaultScoreExplanation,
	}

	var err error
	if result.MatchPercentage, err = scalarField(fields, models.KeyJDMatch); err != nil {
		return nil, err
	}
	if result.MissingKeywords, err = keywordField(fields, models.KeyMissingKeywords); err != nil {
		return nil, err
	}
	if result.MatchingKeywords, err = keywordField(fields, models.KeyMatchingKeywords); err != nil {
		return nil, err
	}
	if result.ProfileSummary, err = scalarField(fields, models.KeyProfileSummary); err != nil {
		return nil, err
	}
	if _, ok := fields[models.KeyScoreExplanation]; ok {
		explanation, err := scalarField(fields, models.KeyScoreExplanation)
		if err != nil {
			return nil, err
		}
		if explanation != "" {
			result.ScoreExplanation = explanation
		}
	}

	return result, nil
}

// scalarField reads a string value; a bare number (e.g. "JD Match": 82) is kept
// in its literal form.
func scalarField(fields map[string]json.RawMessage, name string) (string, error) {
	raw := fields[name]

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", newModelError("invalid field type: "+name, nil)
}

func keywordField(fields map[string]json.RawMessage, name string) ([]string, error) {
	var keywords []string
	if err := json.Unmarshal(fields[name], &keywords); err != nil {
		return nil, newModelError("invalid field type: "+name, err)
	}
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}
