package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/logger"
)

// previewLogLimit bounds prompt and response previews in debug logs.
const previewLogLimit = 500

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

// Compile-time check that GeminiClient satisfies the gateway interface.
var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a gateway backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg Config, log *zap.Logger) (*GeminiClient, error) {
	cfg = cfg.withDefaults()
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{client: client, cfg: cfg, logger: log}, nil
}

// GenerateRubric produces an evaluation rubric from a rubric prompt.
func (g *GeminiClient) GenerateRubric(ctx context.Context, prompt string) (*domain.Rubric, error) {
	rubric, err := generate(ctx, g, prompt, func(r *domain.Rubric) {
		if r.GeneratedAt.IsZero() {
			r.GeneratedAt = time.Now().UTC()
		}
	})
	if err != nil {
		return nil, err
	}
	if err := rubric.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return rubric, nil
}

// ExtractWorkingMemory produces a reviewer's first-pass notes.
func (g *GeminiClient) ExtractWorkingMemory(ctx context.Context, prompt string) (*domain.WorkingMemory, error) {
	memory, err := generate(ctx, g, prompt, func(m *domain.WorkingMemory) {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
	})
	if err != nil {
		return nil, err
	}
	if err := memory.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return memory, nil
}

// GenerateReview produces a reviewer's second-pass evaluation. Coverage
// against the rubric is checked by the caller, which sets the expected
// category list before revalidating.
func (g *GeminiClient) GenerateReview(ctx context.Context, prompt string) (*domain.AgentReview, error) {
	review, err := generate[domain.AgentReview](ctx, g, prompt, nil)
	if err != nil {
		return nil, err
	}
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return review, nil
}

// generate runs one prompt through the gateway and decodes the response
// into T, applying the optional normalize hook before the caller validates.
func generate[T any](ctx context.Context, g *GeminiClient, prompt string, normalize func(*T)) (*T, error) {
	raw, err := g.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	value := new(T)
	if err := decodeJSON(raw, value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if normalize != nil {
		normalize(value)
	}
	return value, nil
}

// generateText sends the prompt to Gemini and returns the joined textual
// response. The call is bounded by the configured request timeout.
func (g *GeminiClient) generateText(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt must not be empty", ErrGeneration)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	g.logger.Debug("sending generation request",
		zap.String("model", g.cfg.Model),
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, previewLogLimit)),
	)

	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens:  g.cfg.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", ErrGeneration, err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("%w: model returned empty response", ErrGeneration)
	}

	g.logger.Debug("received generation response",
		zap.String("model", g.cfg.Model),
		zap.Int("response_length", len(output)),
		zap.String("response_preview", logger.TruncateForLog(output, previewLogLimit)),
	)

	return output, nil
}

// Model returns the configured model name.
func (g *GeminiClient) Model() string {
	if g == nil {
		return ""
	}
	return g.cfg.Model
}
