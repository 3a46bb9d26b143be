package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lgsobral/eduhub/internal/ai"
	"github.com/lgsobral/eduhub/internal/apperror"
	"github.com/lgsobral/eduhub/internal/model"
)

const (
	// GenerateTimeout bounds one language-model round trip. The model
	// regularly takes several seconds; 30s is the cutoff past which we
	// answer with a timeout error instead of keeping the caller hanging.
	GenerateTimeout = 30 * time.Second

	// generateAttempts caps the invoke-parse-validate loop. The second
	// attempt exists because model output is nondeterministic — a retry
	// after a parse failure often succeeds. Timeouts are NOT retried:
	// they already consumed the full deadline once, and a retry would
	// double the worst-case latency for a call that is likely to time
	// out again.
	generateAttempts = 2
)

// GenerateService is the Smart Assist pipeline: it asks the language
// model for a pedagogical description and tags for a resource, then
// parses and validates the answer defensively.
//
// The pipeline persists nothing. Its result prefills the create/update
// form; the user reviews (and may edit) the content before submitting,
// and only that submit writes to the store. Abandoning an in-flight
// generation (the caller cancels ctx) therefore has no side effects.
type GenerateService struct {
	client ai.Client
	logger *slog.Logger
}

// NewGenerateService creates a new GenerateService.
func NewGenerateService(client ai.Client, logger *slog.Logger) *GenerateService {
	return &GenerateService{
		client: client,
		logger: logger,
	}
}

// GenerateInput is the request for one generation: the title the user
// has typed so far and the resource type they selected.
type GenerateInput struct {
	Title        string             `json:"title"`
	ResourceType model.ResourceType `json:"resource_type"`
}

// Generate runs the pipeline: build the prompt, invoke the model under
// a deadline, parse the raw text, validate the structure.
//
// Every failure surfaces as a distinct error kind — timeout, upstream,
// parse, validation — so the caller can choose the right recovery UX.
// The pipeline never substitutes placeholder content for a failure.
func (s *GenerateService) Generate(ctx context.Context, in GenerateInput) (*ai.Generation, error) {
	title := strings.TrimSpace(in.Title)
	if len(title) < TitleMinLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be at least %d characters", TitleMinLength))
	}
	if len(title) > TitleMaxLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", TitleMaxLength))
	}
	if !in.ResourceType.Valid() {
		return nil, apperror.ValidationFailed("resource_type",
			"resource_type must be one of: video, pdf, link")
	}

	user := ai.BuildUserMessage(title, in.ResourceType)

	var lastErr error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		gen, err := s.generateOnce(ctx, user)
		if err == nil {
			if attempt > 1 {
				s.logger.Info("generation succeeded on retry",
					slog.String("title", title),
					slog.Int("attempt", attempt),
				)
			}
			return gen, nil
		}
		lastErr = err

		// Only parse/validation failures are worth a second attempt.
		if !errors.Is(err, apperror.ErrGenerationParse) &&
			!errors.Is(err, apperror.ErrGenerationValidation) {
			return nil, err
		}

		s.logger.Warn("generation attempt produced unusable output",
			slog.String("title", title),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}

	return nil, lastErr
}

// generateOnce performs a single Building→Invoking→Parsing→Validating
// pass with its own deadline.
func (s *GenerateService) generateOnce(ctx context.Context, user string) (*ai.Generation, error) {
	callCtx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.client.GenerateContent(callCtx, ai.SystemPrompt, user)
	latency := time.Since(start)

	if err != nil {
		// A caller-cancelled context is not a timeout: the user left,
		// nobody is waiting for this answer.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("model call exceeded deadline",
				slog.Duration("latency", latency),
			)
			return nil, apperror.GenerationTimeout(
				fmt.Sprintf("the language model did not answer within %s", GenerateTimeout))
		}
		s.logger.Error("model call failed",
			slog.Duration("latency", latency),
			slog.String("error", err.Error()),
		)
		return nil, apperror.GenerationUpstream(
			"could not reach the language model; check connectivity and the configured API key")
	}

	s.logger.Info("model call completed",
		slog.Duration("latency", latency),
		slog.Int("response_bytes", len(text)),
	)

	return ai.ParseGeneration(text)
}
