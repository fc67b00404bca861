// Package worker exposes helpers to register workflows/activities with a Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/hireloop/panelist/internal/llm"
	"github.com/hireloop/panelist/internal/review"
	"github.com/hireloop/panelist/internal/rubric"
	"github.com/hireloop/panelist/internal/synthesis"
	"github.com/hireloop/panelist/internal/workflow"
	"github.com/hireloop/panelist/pkg/activity"
	"github.com/hireloop/panelist/pkg/events"
)

// RegisterAll registers the hiring workflow and all pipeline activities with
// the Temporal worker. This function must be called during worker
// initialization before starting the worker. The registration is not
// thread-safe and should only be called once during application startup.
//
// Activities register under their method names, which must stay in sync with
// the dispatch names in the workflow package.
func RegisterAll(w sdkworker.Worker, llmClient llm.Client) {
	eventSink := events.NewNoOpEventSink()

	base := activity.NewBaseActivities(eventSink)

	// Stage-specific activity instances share the base infrastructure for
	// event emission and logging.
	rubricActivities := rubric.NewActivities(base, llmClient)
	reviewActivities := review.NewActivities(base, llmClient)
	synthesisActivities := synthesis.NewActivities(base)

	w.RegisterWorkflow(workflow.HiringWorkflow)

	w.RegisterActivity(rubricActivities.GenerateRubric)
	w.RegisterActivity(reviewActivities.PerformReview)
	w.RegisterActivity(synthesisActivities.Synthesize)
}
