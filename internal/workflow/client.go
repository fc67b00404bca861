package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/hireloop/panelist/internal/domain"
)

// ExecuteHiring starts HiringWorkflow on the panel task queue and blocks
// until the run produces its result. Validation runs locally first so a bad
// request fails before anything is submitted.
//
// Start and await failures are wrapped in *domain.WorkflowExecutionError;
// workflow-internal failures (tagged application errors) travel through the
// same wrapper as the await cause.
func ExecuteHiring(
	ctx context.Context,
	c client.Client,
	req domain.HiringRequest,
) (*domain.RunResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.WorkflowExecutionError{
			Message: "invalid hiring request",
			Cause:   err,
		}
	}

	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("hiring-panel-%s", uuid.New().String()),
		TaskQueue: TaskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, options, WorkflowName, req)
	if err != nil {
		return nil, &domain.WorkflowExecutionError{
			Message: "failed to start hiring workflow",
			Cause:   err,
		}
	}

	var result domain.RunResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, &domain.WorkflowExecutionError{
			Message: "hiring workflow execution failed",
			Cause:   err,
		}
	}
	return &result, nil
}
