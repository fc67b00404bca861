// Package llm provides the generation gateway: the single opaque capability
// the pipeline depends on for producing typed domain values from prompts.
// Callers treat it as "generate an instance of schema T from this prompt";
// failures are classified into generation errors (transport, unusable text)
// and schema validation errors (parsed but non-conforming output) so
// activities can tag them for retry decisions.
package llm

import (
	"context"

	"github.com/hireloop/panelist/internal/domain"
)

// Client is the typed generation gateway consumed by pipeline activities.
// Implementations must return values that already pass the target type's
// structural validation; cross-cutting checks (role match, rubric coverage)
// remain with the caller, which owns the context those checks need.
type Client interface {
	// GenerateRubric produces an evaluation rubric from a rubric prompt.
	GenerateRubric(ctx context.Context, prompt string) (*domain.Rubric, error)

	// ExtractWorkingMemory produces a reviewer's first-pass notes.
	ExtractWorkingMemory(ctx context.Context, prompt string) (*domain.WorkingMemory, error)

	// GenerateReview produces a reviewer's second-pass evaluation.
	GenerateReview(ctx context.Context, prompt string) (*domain.AgentReview, error)
}
