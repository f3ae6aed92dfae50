package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// contentGenerator is the subset of the genai Models API used by Generator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	logger     *slog.Logger
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini client from cfg. The API key and model name are required.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(client.Models, cfg, logger), nil
}

func newGenerator(models contentGenerator, cfg config.LLMConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}

	return &Generator{
		models:     models,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      sleepContext,
		logger:     logger.With(slog.String("component", "gemini_generator")),
	}
}

// GenerateCards asks the model for flashcards about text.
func (g *Generator) GenerateCards(ctx context.Context, text string) ([]generation.CardDraft, error) {
	prompt, err := createPrompt(text)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "generating cards",
		slog.Int("text_length", len(text)),
		slog.String("model", g.model))

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	drafts, err := parseResponse(raw)
	if err != nil {
		g.logger.WarnContext(ctx, "unusable model response",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(raw)))
		return nil, err
	}

	g.logger.InfoContext(ctx, "cards generated", slog.Int("count", len(drafts)))
	return drafts, nil
}

// callWithRetry returns the text of the first candidate. API call failures are
// retried up to maxRetries times with jittered exponential backoff; blocked and
// empty responses are permanent.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	for attempt := 0; ; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			return responseText(resp)
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", g.maxRetries+1),
			slog.String("error", err.Error()))

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		delay := g.backoff(attempt)
		g.logger.InfoContext(ctx, "retrying after delay",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))
		if err := g.sleep(ctx, delay); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

// backoff is baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1.0).
// It is safe for concurrent use.
func (g *Generator) backoff(attempt int) time.Duration {
	backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(backoff * jitter)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// parseResponse decodes the model's JSON into drafts. A bare array of cards is
// accepted as well as the {"cards": [...]} object, and markdown code fences are
// stripped. Cards with a blank side are dropped.
func parseResponse(raw string) ([]generation.CardDraft, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var schema ResponseSchema
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &schema.Cards); err != nil {
			return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
		}
	} else if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	drafts := make([]generation.CardDraft, 0, len(schema.Cards))
	for _, c := range schema.Cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		drafts = append(drafts, generation.CardDraft{Front: front, Back: back})
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", generation.ErrInvalidResponse)
	}
	return drafts, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
