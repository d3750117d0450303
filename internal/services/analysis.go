package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type AnalyzeInput struct {
	JobDescription string
	Resume         *models.ResumeDocument
}

// AnalysisService runs one analysis per call: extract, build prompt, query.
type AnalysisService interface {
	Analyze(ctx context.Context, sessionID string, input AnalyzeInput) (*models.AnalysisResult, error)
	IsBusy(ctx context.Context, sessionID string) (bool, error)
}

type analysisService struct {
	guard         BusyGuard
	extractor     ExtractorService
	promptBuilder *PromptBuilder
	modelClient   ModelClient
	logger        *zap.Logger
}

func NewAnalysisService(
	guard BusyGuard,
	extractor ExtractorService,
	modelClient ModelClient,
	logger *zap.Logger,
) AnalysisService {
	return &analysisService{
		guard:         guard,
		extractor:     extractor,
		promptBuilder: NewPromptBuilder(),
		modelClient:   modelClient,
		logger:        logger,
	}
}

func (a *analysisService) Analyze(ctx context.Context, sessionID string, input AnalyzeInput) (result *models.AnalysisResult, err error) {
	start := time.Now()
	log := a.logger.With(zap.String("session_id", sessionID))

	defer func() {
		outcome := outcomeOf(err)
		metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
		metrics.AnalysisDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	token, acquireErr := a.guard.Acquire(ctx, sessionID)
	if acquireErr != nil {
		log.Info("analysis rejected", zap.Error(acquireErr))
		return nil, acquireErr
	}
	metrics.AnalysesInFlight.Inc()

	// Release must run even when ctx was cancelled mid-request.
	defer func() {
		metrics.AnalysesInFlight.Dec()
		if releaseErr := a.guard.Release(context.WithoutCancel(ctx), sessionID, token); releaseErr != nil {
			log.Error("failed to release session", zap.Error(releaseErr))
		}
	}()

	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, &ValidationError{Message: "please provide a job description"}
	}
	if input.Resume == nil || len(input.Resume.Content) == 0 {
		return nil, &ValidationError{Message: "please upload a resume in PDF, DOC or DOCX format"}
	}

	log.Info("analyzing resume", zap.String("filename", input.Resume.Filename))

	resumeText, err := a.extractor.Extract(ctx, *input.Resume)
	if err != nil {
		return nil, err
	}

	prompt, err := a.promptBuilder.BuildAnalysisPrompt(resumeText, input.JobDescription)
	if err != nil {
		return nil, err
	}
	log.Debug("prompt built", zap.Int("characters", len(prompt)))

	result, err = a.modelClient.Query(ctx, prompt)
	if err != nil {
		log.Warn("model query failed", zap.Error(err))
		return nil, err
	}

	log.Info("analysis complete",
		zap.String("match", result.MatchPercentage),
		zap.Int("missing_keywords", len(result.MissingKeywords)),
		zap.Int("matching_keywords", len(result.MatchingKeywords)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (a *analysisService) IsBusy(ctx context.Context, sessionID string) (bool, error) {
	return a.guard.IsBusy(ctx, sessionID)
}

func outcomeOf(err error) string {
	var (
		validationErr *ValidationError
		extractionErr *ExtractionError
		modelErr      *ModelError
	)

	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrAnalysisInProgress):
		return metrics.OutcomeBusy
	case errors.As(err, &validationErr):
		return metrics.OutcomeValidation
	case errors.As(err, &extractionErr):
		return metrics.OutcomeExtraction
	case errors.As(err, &modelErr):
		return metrics.OutcomeModel
	default:
		return metrics.OutcomeOther
	}
}
