// Package workflow orchestrates the hiring panel using Temporal workflows.
// It defines deterministic control flow with clean separation of stages:
// GenerateRubric → parallel PerformReview fan-out → consistency checkpoint →
// Synthesize. All merge policy lives here; activities never share state.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/hireloop/panelist/internal/domain"
)

// TaskQueue is the Temporal task queue the panel worker polls and the
// client helper submits to.
const TaskQueue = "hiring-panel"

// WorkflowName is the registered name of HiringWorkflow. Clients start the
// workflow by this name so they never link workflow code.
const WorkflowName = "HiringWorkflow"

// Activity names as registered by the worker. The workflow dispatches by
// name to keep activity packages out of the deterministic code path.
const (
	ActivityGenerateRubric = "GenerateRubric"
	ActivityPerformReview  = "PerformReview"
	ActivitySynthesize     = "Synthesize"
)

// HiringWorkflow evaluates one resume against one job description with a
// panel of role-specialized reviewers.
//
// Stages run in a fixed order: rubric generation, parallel reviewer fan-out,
// AND-join with state consistency validation, synthesis. Reviewer branches
// return deltas; the coordinator alone applies the two merge operations
// (append review, insert memory) so the run state never needs locking.
//
// Activities are retried per the standard policy; input and state-validation
// failures are tagged non-retryable and abort the run immediately.
func HiringWorkflow(
	ctx workflow.Context,
	req domain.HiringRequest,
) (*domain.RunResult, error) {
	// Version gate enables safe evolution and backward compatibility.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "hiring.v", workflow.DefaultVersion, currentVersion)

	logger := workflow.GetLogger(ctx)
	info := workflow.GetInfo(ctx)
	startedAt := workflow.Now(ctx).UTC()

	// Validate request early to fail fast before any activity is scheduled.
	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid hiring request",
			domain.ErrTypeInput,
			err,
		)
	}

	// Standard timeouts and retry policy for all pipeline activities.
	// Input and state-validation failures cannot be repaired by retrying.
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Duration(req.Config.ActivityTimeoutSeconds) * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
			NonRetryableErrorTypes: []string{
				domain.ErrTypeInput,
				domain.ErrTypeStateValidation,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	state := domain.NewPanelState(
		req.JobDescription,
		req.Resume,
		req.NormalizedCompanyContext(),
		req.CandidateName,
	)

	rubricIn := domain.GenerateRubricInput{
		JobDescription: req.JobDescription,
		Resume:         req.Resume,
		CompanyContext: req.NormalizedCompanyContext(),
		CategoryCount:  req.Config.RubricCategoryCount,
	}
	var rubricOut domain.GenerateRubricOutput
	if err := workflow.ExecuteActivity(ctx, ActivityGenerateRubric, rubricIn).Get(ctx, &rubricOut); err != nil {
		logger.Error("Rubric generation failed", "error", err)
		return nil, err
	}
	state.Rubric = &rubricOut.Rubric
	state.RubricWarnings = rubricOut.Warnings
	logger.Info("Rubric generated",
		"role_title", rubricOut.Rubric.RoleTitle,
		"categories", len(rubricOut.Rubric.Categories),
		"warnings", len(rubricOut.Warnings))

	// Fan out one reviewer branch per active panel role. All branches share
	// the same immutable rubric.
	roles := req.Config.PanelRoles()
	futures := make([]workflow.Future, len(roles))
	for i, role := range roles {
		reviewIn := domain.PerformReviewInput{
			Role:   role,
			Resume: req.Resume,
			Rubric: rubricOut.Rubric,
			Config: req.Config,
		}
		futures[i] = workflow.ExecuteActivity(ctx, ActivityPerformReview, reviewIn)
	}

	// AND-join: consume branches in completion order and wait for every one
	// of them. A failed branch never cancels its siblings; the first failure
	// is reported only after the join completes.
	selector := workflow.NewSelector(ctx)
	var branchErr error
	for i := range futures {
		role := roles[i]
		selector.AddFuture(futures[i], func(f workflow.Future) {
			var out domain.PerformReviewOutput
			if err := f.Get(ctx, &out); err != nil {
				logger.Error("Review branch failed", "agent_role", role, "error", err)
				if branchErr == nil {
					branchErr = err
				}
				return
			}

			state.AppendReview(out.Review)
			if out.Memory != nil && !state.InsertMemory(role, out.Memory) {
				logger.Warn("Duplicate working memory dropped", "agent_role", role)
			}
			logger.Info("Review branch completed",
				"agent_role", role,
				"categories_scored", len(out.Review.CategoryScores),
				"memory_extracted", out.Memory != nil)
		})
	}
	for range futures {
		selector.Select(ctx)
	}
	if branchErr != nil {
		return nil, branchErr
	}

	if len(state.PanelReviews) == 0 {
		return nil, temporal.NewNonRetryableApplicationError(
			"no panel reviews were produced",
			domain.ErrTypeStateValidation,
			nil,
		)
	}

	// Consistency checkpoint between the join and synthesis. With working
	// memory disabled the memory map is legitimately empty, so only review
	// role validity is checked.
	var stateErr error
	if req.Config.EnableWorkingMemory {
		stateErr = domain.ValidatePanelConsistency(state.PanelReviews, state.AgentWorkingMemory)
	} else {
		stateErr = domain.ValidateReviewRoles(state.PanelReviews)
	}
	if stateErr != nil {
		logger.Error("Panel state failed consistency validation", "error", stateErr)
		return nil, temporal.NewNonRetryableApplicationError(
			"panel state failed consistency validation",
			domain.ErrTypeStateValidation,
			stateErr,
		)
	}

	synthIn := domain.SynthesizeInput{
		Rubric:             rubricOut.Rubric,
		PanelReviews:       state.PanelReviews,
		AgentWorkingMemory: state.AgentWorkingMemory,
		CandidateName:      req.CandidateName,
		Config:             req.Config,
	}
	var synthOut domain.SynthesizeOutput
	if err := workflow.ExecuteActivity(ctx, ActivitySynthesize, synthIn).Get(ctx, &synthOut); err != nil {
		logger.Error("Synthesis failed", "error", err)
		return nil, err
	}
	state.Disagreements = synthOut.Disagreements
	state.DecisionPacket = &synthOut.DecisionPacket
	state.InterviewPlan = synthOut.InterviewPlan

	completedAt := workflow.Now(ctx).UTC()
	logger.Info("Hiring panel completed",
		"overall_fit_score", synthOut.DecisionPacket.OverallFitScore,
		"disagreements", len(synthOut.Disagreements),
		"duration_ms", completedAt.Sub(startedAt).Milliseconds())

	return &domain.RunResult{
		Rubric:             state.Rubric,
		PanelReviews:       state.PanelReviews,
		AgentWorkingMemory: state.AgentWorkingMemory,
		Disagreements:      state.Disagreements,
		DecisionPacket:     state.DecisionPacket,
		InterviewPlan:      state.InterviewPlan,
		Metadata: domain.RunMetadata{
			WorkflowID:     info.WorkflowExecution.ID,
			RunID:          info.WorkflowExecution.RunID,
			StartedAt:      startedAt,
			CompletedAt:    completedAt,
			DurationMillis: completedAt.Sub(startedAt).Milliseconds(),
			PanelRoles:     roles,
			RubricWarnings: state.RubricWarnings,
		},
	}, nil
}
