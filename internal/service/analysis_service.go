package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"ai-trade-pro/internal/domain"
	"ai-trade-pro/internal/signal"
)

// sideEffectTimeout bounds webhook delivery and journal writes that run
// after the HTTP response has been sent.
const sideEffectTimeout = 10 * time.Second

type PromptBuilder interface {
	Build(ctx context.Context, req domain.AnalysisRequest) (string, []domain.ConversationMessage)
}

type ModelCaller interface {
	Complete(ctx context.Context, apiKey, model, system string, messages []domain.ConversationMessage) (string, error)
}

type AnalysisLogStore interface {
	InsertLog(ctx context.Context, entry domain.AnalysisLogEntry) (domain.AnalysisLogEntry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error)
	Stats(ctx context.Context) (domain.JournalStats, error)
}

type CredentialReader interface {
	Get(ctx context.Context, userID string) (string, error)
}

type SignalNotifier interface {
	Enabled() bool
	NotifySignal(ctx context.Context, parsed domain.ParsedSignal, raw string, mode domain.TradingMode)
}

type AlertBroadcaster interface {
	NotifyParsed(parsed domain.ParsedSignal)
}

// AnalysisResult is the outcome of one full pipeline run: the raw completion
// plus whatever structured signal could be extracted from it.
type AnalysisResult struct {
	Completion string              `json:"completion"`
	Parsed     domain.ParsedSignal `json:"parsed"`
	Valid      bool                `json:"valid"`
	ModelUsed  string              `json:"model_used"`
}

// AnalysisService runs the analyze pipeline: credential resolution, prompt
// assembly, model call, signal extraction, then journal write and
// notifications off the request path.
type AnalysisService struct {
	tracer      trace.Tracer
	prompts     PromptBuilder
	model       ModelCaller
	logs        AnalysisLogStore
	credentials CredentialReader
	notifier    SignalNotifier
	alerts      AlertBroadcaster

	defaultModel string

	// async runs side effects after the response; tests replace it to run
	// inline.
	async func(fn func())
}

func NewAnalysisService(
	tracer trace.Tracer,
	prompts PromptBuilder,
	model ModelCaller,
	logs AnalysisLogStore,
	credentials CredentialReader,
	notifier SignalNotifier,
	alerts AlertBroadcaster,
	defaultModel string,
) *AnalysisService {
	return &AnalysisService{
		tracer:       tracer,
		prompts:      prompts,
		model:        model,
		logs:         logs,
		credentials:  credentials,
		notifier:     notifier,
		alerts:       alerts,
		defaultModel: defaultModel,
		async:        func(fn func()) { go fn() },
	}
}

// Analyze runs one request through the pipeline. A request-supplied API key
// wins over a stored credential; with neither, the request is rejected before
// any network call.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	if len(req.Messages) == 0 && req.Image == "" {
		return AnalysisResult{}, &domain.ValidationError{Reason: "a message or chart image is required"}
	}

	apiKey := req.APIKey
	if apiKey == "" && s.credentials != nil && req.UserID != "" {
		stored, err := s.credentials.Get(ctx, req.UserID)
		if err != nil {
			log.Printf("analysis: credential lookup failed for %s: %v", req.UserID, err)
		}
		apiKey = stored
	}
	if apiKey == "" {
		return AnalysisResult{}, &domain.ValidationError{Reason: "API key is required"}
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	system, messages := s.prompts.Build(ctx, req)

	completion, err := s.model.Complete(ctx, apiKey, model, system, messages)
	if err != nil {
		return AnalysisResult{}, err
	}

	parsed := signal.Parse(completion)
	result := AnalysisResult{
		Completion: completion,
		Parsed:     parsed,
		Valid:      parsed.Valid(),
		ModelUsed:  model,
	}

	s.async(func() {
		s.dispatchSideEffects(req, result)
	})

	return result, nil
}

// dispatchSideEffects persists the journal row and fans out notifications.
// It runs detached from the request context so a closed connection cannot
// cancel the journal write.
func (s *AnalysisService) dispatchSideEffects(req domain.AnalysisRequest, result AnalysisResult) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "analysis-service.side-effects")
	defer span.End()

	if s.logs != nil && req.UserID != "" {
		entry := domain.AnalysisLogEntry{
			UserID:         req.UserID,
			PairName:       result.Parsed.Pair,
			Signal:         result.Parsed.Signal,
			AnalysisResult: result.Completion,
			ModelUsed:      result.ModelUsed,
		}
		if _, err := s.logs.InsertLog(ctx, entry); err != nil {
			log.Printf("analysis: journal write failed for %s: %v", req.UserID, err)
		}
	}

	if !ShouldBroadcast(result.Completion) {
		return
	}

	if s.notifier != nil && s.notifier.Enabled() {
		s.notifier.NotifySignal(ctx, result.Parsed, result.Completion, req.TradingMode)
	}
	if s.alerts != nil && result.Valid {
		s.alerts.NotifyParsed(result.Parsed)
	}
}

// ShouldBroadcast filters notifications: completions with no trading content
// are journaled but not pushed anywhere.
func ShouldBroadcast(raw string) bool {
	upper := strings.ToUpper(raw)
	for _, marker := range []string{"SIGNAL", "BUY", "SELL"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// Journal returns the most recent entries for one user.
func (s *AnalysisService) Journal(ctx context.Context, userID string, limit int) ([]domain.AnalysisLogEntry, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.journal")
	defer span.End()

	if userID == "" {
		return nil, &domain.ValidationError{Reason: "user_id is required"}
	}
	if s.logs == nil {
		return nil, errors.New("journal is not configured")
	}
	return s.logs.ListByUser(ctx, userID, limit)
}

// Stats aggregates journal counters for the admin dashboard.
func (s *AnalysisService) Stats(ctx context.Context) (domain.JournalStats, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.stats")
	defer span.End()

	if s.logs == nil {
		return domain.JournalStats{}, errors.New("journal is not configured")
	}
	return s.logs.Stats(ctx)
}
