package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/mocks"
)

func newTestModelClient(t *testing.T, response string, err error) (ModelClient, *mocks.MockGeminiService) {
	t.Helper()

	gemini := new(mocks.MockGeminiService)
	gemini.On("GenerateText", mock.Anything, "prompt", float32(0)).Return(response, err)

	return NewModelClient(gemini, logger.NewTestLogger(t)), gemini
}

func requireModelError(t *testing.T, err error, message string) {
	t.Helper()

	var modelErr *ModelError
	require.Error(t, err)
	require.True(t, errors.As(err, &modelErr), "expected *ModelError, got %T", err)
	assert.Equal(t, message, modelErr.Message)
}

func TestModelClientQueryStrictJSON(t *testing.T) {
	response := `{"JD Match":"82%","MissingKeywords":["Kubernetes","Go"],"MatchingKeywords":["Python"],"Profile Summary":"Strong backend profile.","ScoreExplanation":"9/11 keywords."}`
	client, gemini := newTestModelClient(t, response, nil)

	result, err := client.Query(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, &models.AnalysisResult{
		MatchPercentage:  "82%",
		MissingKeywords:  []string{"Kubernetes", "Go"},
		MatchingKeywords: []string{"Python"},
		ProfileSummary:   "Strong backend profile.",
		ScoreExplanation: "9/11 keywords.",
	}, result)
	gemini.AssertExpectations(t)
}

func TestModelClientQueryRepairsSurroundingProse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name: "leading and trailing prose",
			response: "Sure! Here is the result:\n" +
				`{"JD Match":"60%","MissingKeywords":[],"MatchingKeywords":["SQL"],"Profile Summary":"OK"}` +
				"\nLet me know if you need more.",
		},
		{
			name: "code fence",
			response: "```json\n" +
				`{"JD Match":"60%","MissingKeywords":[],"MatchingKeywords":["SQL"],"Profile Summary":"OK"}` +
				"\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestModelClient(t, tt.response, nil)

			result, err := client.Query(context.Background(), "prompt")
			require.NoError(t, err)

			assert.Equal(t, &models.AnalysisResult{
				MatchPercentage:  "60%",
				MissingKeywords:  []string{},
				MatchingKeywords: []string{"SQL"},
				ProfileSummary:   "OK",
				ScoreExplanation: models.DefaultScoreExplanation,
			}, result)
		})
	}
}

func TestModelClientQueryNumericMatch(t *testing.T) {
	response := `{"JD Match":82,"MissingKeywords":null,"MatchingKeywords":["Go"],"Profile Summary":"Fine"}`
	client, _ := newTestModelClient(t, response, nil)

	result, err := client.Query(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "82", result.MatchPercentage)
	assert.Equal(t, []string{}, result.MissingKeywords)
}

func TestModelClientQueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		message  string
	}{
		{
			name:    "transport failure",
			err:     errors.New("connection reset"),
			message: "request failed",
		},
		{
			name:     "empty response",
			response: "",
			message:  "empty response",
		},
		{
			name:     "whitespace response",
			response: "  \n\t ",
			message:  "empty response",
		},
		{
			name:     "no braces",
			response: "I cannot help with that.",
			message:  "could not extract valid JSON response",
		},
		{
			name:     "unparseable span",
			response: "result: {not json at all}",
			message:  "could not extract valid JSON response",
		},
		{
			name:     "top level array",
			response: `["JD Match"]`,
			message:  "could not extract valid JSON response",
		},
		{
			name:     "missing keywords field",
			response: `{"JD Match":"50%","MatchingKeywords":[],"Profile Summary":"x"}`,
			message:  "missing required field: MissingKeywords",
		},
		{
			name:     "missing summary in repaired text",
			response: `Here: {"JD Match":"50%","MissingKeywords":[],"MatchingKeywords":[]}`,
			message:  "missing required field: Profile Summary",
		},
		{
			name:     "keywords not a list",
			response: `{"JD Match":"50%","MissingKeywords":"Go","MatchingKeywords":[],"Profile Summary":"x"}`,
			message:  "invalid field type: MissingKeywords",
		},
		{
			name:     "summary not a string",
			response: `{"JD Match":"50%","MissingKeywords":[],"MatchingKeywords":[],"Profile Summary":{"a":1}}`,
			message:  "invalid field type: Profile Summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestModelClient(t, tt.response, tt.err)

			result, err := client.Query(context.Background(), "prompt")

			assert.Nil(t, result)
			requireModelError(t, err, tt.message)
		})
	}
}

func TestModelClientQueryWrapsTransportError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client, _ := newTestModelClient(t, "", cause)

	_, err := client.Query(context.Background(), "prompt")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "error generating response")
}

func TestModelClientQueryEmptyExplanationFallsBack(t *testing.T) {
	response := `{"JD Match":"10%","MissingKeywords":[],"MatchingKeywords":[],"Profile Summary":"x","ScoreExplanation":""}`
	client, _ := newTestModelClient(t, response, nil)

	result, err := client.Query(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, models.DefaultScoreExplanation, result.ScoreExplanation)
}

func TestExtractJSON(t *testing.T) {
	span, ok := extractJSON(`noise {"a":{"b":1}} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, span)

	_, ok = extractJSON("} backwards {")
	assert.False(t, ok)
}
