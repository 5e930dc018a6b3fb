package resumes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smarthire-backend/internal/extract"
	"smarthire-backend/internal/llm"
	"smarthire-backend/internal/shared/metrics"
	"smarthire-backend/internal/shared/storage/object"
	"smarthire-backend/internal/shared/telemetry"
)

// Service runs the resume intake pipeline and serves stored records.
//
// Extract is swappable so tests can feed plain text without crafting real
// PDF or DOCX payloads; it defaults to extract.Text.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	LLM     llm.Client
	Extract func(ctx context.Context, data []byte, mimeType string) (string, error)
}

// NewService constructs a Service with the default extractor.
func NewService(repo Repo, store object.ObjectStore, client llm.Client) *Service {
	return &Service{
		Repo:    repo,
		Store:   store,
		LLM:     client,
		Extract: extract.Text,
	}
}

// Upload runs the full pipeline for one file: validate, store, extract text,
// issue both model prompts, assemble the record and persist it. Model
// failures of any kind degrade to the documented fallback documents; the
// upload itself still succeeds. The stored file is removed once processing
// finishes, whether it succeeded or not.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeType string, file io.Reader) (_ Resume, err error) {
	if !extract.Supported(mimeType) {
		return Resume{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Resume{}, ErrNoFile
	}

	metrics.IncUploadStarted()
	start := time.Now()
	defer func() {
		metrics.ObserveUploadDurationMs(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.IncUploadFailed()
		} else {
			metrics.IncUploadCompleted()
		}
	}()

	storageKey, _, _, err := s.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}
	defer func() {
		if err := s.Store.Delete(context.WithoutCancel(ctx), storageKey); err != nil {
			telemetry.Warn("resume.cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       err.Error(),
			})
		}
	}()

	text, err := s.Extract(ctx, data, mimeType)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: could not extract text from file", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return Resume{}, fmt.Errorf("%w: file contains no extractable text", ErrInvalidInput)
	}

	recommendations, analysis := s.analyze(ctx, text)

	resume := Resume{
		ID:                 uuid.NewString(),
		UserID:             userID,
		OriginalFileName:   fileName,
		StorageKey:         storageKey,
		JobRecommendations: recommendations,
		Analysis:           analysis,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, fmt.Errorf("persist resume: %w", err)
	}
	return resume, nil
}

// analyze issues the two prompts concurrently. Each prompt degrades to its
// fallback independently; this never returns an error.
func (s *Service) analyze(ctx context.Context, text string) ([]JobRecommendation, *Analysis) {
	if s.LLM == nil {
		telemetry.Warn("resume.llm_unconfigured", nil)
		metrics.IncPromptFallback()
		metrics.IncPromptFallback()
		return FallbackJobRecommendations(""), FallbackAnalysis()
	}

	var (
		wg              sync.WaitGroup
		recommendations []JobRecommendation
		analysis        *Analysis
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, err := s.LLM.Generate(ctx, llm.JobRecommendationsPrompt(text))
		if err != nil {
			telemetry.Error("resume.recommendations_failed", map[string]any{"error": err.Error()})
			metrics.IncPromptFallback()
			recommendations = FallbackJobRecommendations("")
			return
		}
		parsed, ok := ParseJobRecommendations(raw)
		if !ok {
			telemetry.Warn("resume.recommendations_unparseable", map[string]any{"raw_len": len(raw)})
			metrics.IncPromptFallback()
			recommendations = FallbackJobRecommendations(raw)
			return
		}
		recommendations = parsed
	}()
	go func() {
		defer wg.Done()
		raw, err := s.LLM.Generate(ctx, llm.AnalysisPrompt(text))
		if err != nil {
			telemetry.Error("resume.analysis_failed", map[string]any{"error": err.Error()})
			metrics.IncPromptFallback()
			analysis = FallbackAnalysis()
			return
		}
		parsed, ok := ParseAnalysis(raw)
		if !ok {
			telemetry.Warn("resume.analysis_unparseable", map[string]any{"raw_len": len(raw)})
			metrics.IncPromptFallback()
			analysis = FallbackAnalysis()
			return
		}
		analysis = parsed
	}()
	wg.Wait()

	return recommendations, analysis
}

// LatestRecommendations returns the job recommendations from the user's most
// recent resume.
func (s *Service) LatestRecommendations(ctx context.Context, userID string) ([]JobRecommendation, error) {
	resume, err := s.Repo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(resume.JobRecommendations) == 0 {
		return nil, ErrNotFound
	}
	return resume.JobRecommendations, nil
}

// LatestAnalysis returns the analysis from the user's most recent resume.
func (s *Service) LatestAnalysis(ctx context.Context, userID string) (*Analysis, error) {
	resume, err := s.Repo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if resume.Analysis == nil {
		return nil, ErrNotFound
	}
	return resume.Analysis, nil
}

// List returns the user's resumes newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Delete removes one resume owned by the user. The stored file, when still
// present, is removed best-effort; the record deletion is what matters.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, resumeID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, resume.StorageKey); err != nil {
		telemetry.Warn("resume.delete_file_failed", map[string]any{
			"resume_id":   resumeID,
			"storage_key": resume.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}

// Download opens the stored file for one resume owned by the user. Files are
// removed after processing, so the record can exist while the file is gone.
func (s *Service) Download(ctx context.Context, userID, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return Resume{}, nil, fmt.Errorf("%w: %s", ErrFileGone, resume.StorageKey)
	}
	return resume, rc, nil
}
