// Package review implements the reviewer Temporal activity: one panelist's
// two-pass evaluation of a resume against the rubric. Pass one extracts
// structured working memory; pass two produces the scored review grounded in
// that memory. The whole node is the retry unit, so a schema failure in
// either pass re-runs both passes.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/llm"
	"github.com/hireloop/panelist/pkg/activity"
)

// Activities handles reviewer Temporal activities.
type Activities struct {
	activity.BaseActivities
	llmClient llm.Client
	events    *EventEmitter
}

// NewActivities creates reviewer activities with the provided dependencies.
func NewActivities(base activity.BaseActivities, client llm.Client) *Activities {
	return &Activities{
		BaseActivities: base,
		llmClient:      client,
		events:         NewEventEmitter(base),
	}
}

// PerformReview runs one panelist's evaluation.
//
// With working memory enabled the node performs two passes: extract memory,
// then score with the memory digest in the prompt. With it disabled the node
// performs pass two alone and returns a nil memory.
//
// Role mismatches and rubric misalignment in either pass surface as
// retryable schema-validation errors: the model produced a parseable but
// unusable value, and regeneration may fix it.
func (a *Activities) PerformReview(
	ctx context.Context,
	input domain.PerformReviewInput,
) (*domain.PerformReviewOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable(domain.ErrTypeInput, err, "invalid review input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting PerformReview activity",
		"workflow_id", wfCtx.WorkflowID,
		"agent_role", input.Role)

	startTime := time.Now()

	var memory *domain.WorkingMemory
	if input.Config.EnableWorkingMemory {
		extracted, err := a.extractMemory(ctx, &input)
		if err != nil {
			return nil, err
		}
		memory = extracted
	}

	reviewed, err := a.generateReview(ctx, &input, memory)
	if err != nil {
		return nil, err
	}

	latencyMs := time.Since(startTime).Milliseconds()
	a.events.EmitReviewCompleted(ctx, reviewed, memory != nil, latencyMs, wfCtx)

	activity.SafeLog(ctx, "PerformReview completed",
		"agent_role", input.Role,
		"categories_scored", len(reviewed.CategoryScores),
		"memory_extracted", memory != nil,
		"latency_ms", latencyMs)

	return &domain.PerformReviewOutput{
		Review: *reviewed,
		Memory: memory,
	}, nil
}

// extractMemory runs pass one and enforces the cross-cutting checks the
// gateway cannot: the memory must report the assigned role and its
// observation categories must align with the rubric.
func (a *Activities) extractMemory(
	ctx context.Context,
	input *domain.PerformReviewInput,
) (*domain.WorkingMemory, error) {
	a.RecordHeartbeat(ctx, fmt.Sprintf("%s: extracting working memory", input.Role))

	prompt := BuildMemoryPrompt(input.Role, input.Resume, &input.Rubric)
	memory, err := a.llmClient.ExtractWorkingMemory(ctx, prompt)
	if err != nil {
		return nil, classifyLLMError("working memory extraction", err)
	}

	if memory.AgentRole != input.Role {
		return nil, retryable(domain.ErrTypeSchemaValidation,
			fmt.Errorf("memory reports role %q, assigned role is %q", memory.AgentRole, input.Role),
			"working memory role mismatch")
	}
	if err := memory.ValidateAgainstRubric(&input.Rubric); err != nil {
		return nil, retryable(domain.ErrTypeSchemaValidation, err,
			"working memory misaligned with rubric")
	}

	return memory, nil
}

// generateReview runs pass two. The expected category list is stamped onto
// the review before revalidation so exact coverage is enforced even though
// the gateway validated only the standalone structure.
func (a *Activities) generateReview(
	ctx context.Context,
	input *domain.PerformReviewInput,
	memory *domain.WorkingMemory,
) (*domain.AgentReview, error) {
	a.RecordHeartbeat(ctx, fmt.Sprintf("%s: generating review", input.Role))

	prompt := BuildReviewPrompt(input.Role, input.Resume, &input.Rubric, memory)
	reviewed, err := a.llmClient.GenerateReview(ctx, prompt)
	if err != nil {
		return nil, classifyLLMError("review generation", err)
	}

	if reviewed.AgentRole != input.Role {
		return nil, retryable(domain.ErrTypeSchemaValidation,
			fmt.Errorf("review reports role %q, assigned role is %q", reviewed.AgentRole, input.Role),
			"review role mismatch")
	}

	reviewed.ExpectedRubricCategories = input.Rubric.CategoryNames()
	if err := reviewed.Validate(); err != nil {
		return nil, retryable(domain.ErrTypeSchemaValidation, err,
			"review does not cover the rubric")
	}

	return reviewed, nil
}

// classifyLLMError maps gateway failures onto tagged Temporal errors.
func classifyLLMError(op string, err error) error {
	if errors.Is(err, llm.ErrSchemaValidation) {
		return retryable(domain.ErrTypeSchemaValidation, err, op+" returned non-conforming output")
	}
	return retryable(domain.ErrTypeGeneration, err, op+" failed")
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a Temporal retryable application error. The
// cause stays on the error chain so callers can errors.Is against gateway
// sentinels.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationErrorWithCause(msg, tag, cause)
}
