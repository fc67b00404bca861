// Package worker provides initialization and setup utilities for Temporal workers.
// This package contains initialization logic that should be executed during
// worker startup, keeping activity packages focused on pure activity logic.
package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/panelist/internal/llm"
)

// InitializeLLMClient creates the generation gateway used by the rubric and
// review activities. Returns the client for dependency injection rather than
// setting global state. Must be called during worker startup.
func InitializeLLMClient(ctx context.Context, cfg llm.Config, log *zap.Logger) (llm.Client, error) {
	client, err := llm.NewGeminiClient(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	return client, nil
}
