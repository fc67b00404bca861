package synthesis

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/pkg/activity"
)

// Activities handles the synthesis Temporal activity.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates synthesis activities with the provided base
// infrastructure. Synthesis takes no gateway client; it never generates.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// Synthesize runs the deterministic pipeline over the validated panel
// state and returns the run's final artifacts. Failures here mean the
// input or the derived packet violated a structural invariant; retrying
// deterministic code cannot change the outcome, so everything surfaces as
// non-retryable.
func (a *Activities) Synthesize(
	ctx context.Context,
	input domain.SynthesizeInput,
) (*domain.SynthesizeOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable(domain.ErrTypeInput, err, "invalid synthesis input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting Synthesize activity",
		"workflow_id", wfCtx.WorkflowID,
		"role_title", input.Rubric.RoleTitle,
		"panel_reviews", len(input.PanelReviews),
		"memory_roles", len(input.AgentWorkingMemory))

	activity.RecordHeartbeat(ctx, "synthesizing decision")

	output, err := Run(&input, time.Now().UTC())
	if err != nil {
		return nil, nonRetryable(domain.ErrTypeStateValidation, err, "synthesis failed")
	}

	a.events.EmitDecisionIssued(ctx, &output.DecisionPacket, wfCtx)

	recommendation := "withheld"
	if output.DecisionPacket.Recommendation != nil {
		recommendation = string(*output.DecisionPacket.Recommendation)
	}
	questionCount := 0
	if output.InterviewPlan != nil {
		questionCount = output.InterviewPlan.TotalQuestions()
	}
	activity.SafeLog(ctx, "Synthesize activity completed",
		"overall_fit_score", output.DecisionPacket.OverallFitScore,
		"confidence", output.DecisionPacket.Confidence,
		"recommendation", recommendation,
		"disagreements", len(output.Disagreements),
		"must_have_gaps", len(output.DecisionPacket.MustHaveGaps),
		"interview_questions", questionCount)

	return output, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
// Used for validation failures and permanent errors that should not be retried.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
