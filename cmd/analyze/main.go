package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/presenter"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	jdPath := flag.String("jd", "", "path to a text file holding the job description")
	jdText := flag.String("jd-text", "", "job description text (overrides -jd)")
	resumePath := flag.String("resume", "", "path to the resume (pdf, doc or docx)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		exitErr(err.Error())
	}

	jobDescription := *jdText
	if jobDescription == "" && *jdPath != "" {
		data, err := os.ReadFile(*jdPath)
		if err != nil {
			exitErr(fmt.Sprintf("failed to read job description: %v", err))
		}
		jobDescription = string(data)
	}

	var resume *models.ResumeDocument
	if *resumePath != "" {
		data, err := os.ReadFile(*resumePath)
		if err != nil {
			exitErr(fmt.Sprintf("failed to read resume: %v", err))
		}
		doc := models.NewResumeDocument(filepath.Base(*resumePath), data)
		resume = &doc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		exitErr(fmt.Sprintf("failed to configure API: %v", err))
	}

	storageService := services.NewStorageService(cfg.Extractor.TempDir)
	analysisService := services.NewAnalysisService(
		services.NewMemoryBusyGuard(),
		services.NewExtractorService(
			services.NewPDFParserService(),
			services.NewDocxParserService(),
			services.NewDocParserService(storageService, cfg.Extractor.DocCommand),
			log,
		),
		services.NewModelClient(geminiService, log),
		log,
	)

	result, err := analysisService.Analyze(ctx, uuid.New().String(), services.AnalyzeInput{
		JobDescription: jobDescription,
		Resume:         resume,
	})
	if err != nil {
		log.Debug("analysis failed", zap.Error(err))
		exitErr(fmt.Sprintf("An error occurred: %v", err))
	}

	fmt.Print(presenter.Text(presenter.Render(result)))
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
