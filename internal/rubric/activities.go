// Package rubric implements the Temporal activity that generates job-specific
// evaluation rubrics. The activity prompts the LLM gateway with the job
// description and company context, validates the returned rubric against the
// domain invariants, and runs advisory quality lint whose findings are logged
// and returned but never fail the run.
package rubric

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/llm"
	"github.com/hireloop/panelist/pkg/activity"
)

// Activities handles rubric-generation Temporal activities.
// It encapsulates the LLM client used for generation and the event
// emitter used for observability.
type Activities struct {
	activity.BaseActivities
	llmClient llm.Client
	events    *EventEmitter
}

// NewActivities creates rubric activities with the provided dependencies.
// The base activities provide event emission and safe logging.
func NewActivities(base activity.BaseActivities, client llm.Client) *Activities {
	return &Activities{
		BaseActivities: base,
		llmClient:      client,
		events:         NewEventEmitter(base),
	}
}

// GenerateRubric produces a job-specific evaluation rubric from the job
// description and company context.
//
// The operation:
// 1. Validates input (blank job description or resume is non-retryable)
// 2. Prompts the LLM gateway for a structurally valid rubric
// 3. Runs advisory quality lint and logs each finding
// 4. Emits a RubricGenerated event for observability
//
// Structural failures from the gateway (weights not summing to 1.0, missing
// must-have flags) surface as retryable errors so the workflow retry policy
// can request a better result.
func (a *Activities) GenerateRubric(
	ctx context.Context,
	input domain.GenerateRubricInput,
) (*domain.GenerateRubricOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable(domain.ErrTypeInput, err, "invalid rubric generation input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting GenerateRubric activity",
		"workflow_id", wfCtx.WorkflowID,
		"category_count", input.CategoryCount)

	startTime := time.Now()
	prompt := BuildPrompt(input)

	a.RecordHeartbeat(ctx, "generating rubric")

	generated, err := a.llmClient.GenerateRubric(ctx, prompt)
	if err != nil {
		return nil, classifyLLMError("rubric generation", err)
	}

	// Quality lint is advisory: findings travel with the output and are
	// logged, but a structurally valid rubric is never rejected here.
	warnings := Lint(generated)
	for _, w := range warnings {
		activity.SafeLog(ctx, "Rubric quality warning", "warning", w)
	}

	a.events.EmitRubricGenerated(ctx, generated, len(warnings), wfCtx)

	activity.SafeLog(ctx, "GenerateRubric completed",
		"role_title", generated.RoleTitle,
		"categories", len(generated.Categories),
		"warnings", len(warnings),
		"latency_ms", time.Since(startTime).Milliseconds())

	return &domain.GenerateRubricOutput{
		Rubric:   *generated,
		Warnings: warnings,
	}, nil
}

// classifyLLMError maps gateway failures onto tagged Temporal errors.
// Both generation and schema failures are retryable: a retry may produce a
// conforming result. The tag distinguishes them for observability.
func classifyLLMError(op string, err error) error {
	if errors.Is(err, llm.ErrSchemaValidation) {
		return retryable(domain.ErrTypeSchemaValidation, err, op+" returned non-conforming output")
	}
	return retryable(domain.ErrTypeGeneration, err, op+" failed")
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
// Used for validation failures and permanent errors that should not be retried.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a Temporal retryable application error.
// Used for transient failures that may succeed on retry with backoff.
// The cause stays on the error chain so callers can errors.Is against
// gateway sentinels.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationErrorWithCause(msg, tag, cause)
}
