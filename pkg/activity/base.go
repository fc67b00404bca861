// Package activity provides shared infrastructure for the pipeline's
// Temporal activities: workflow context extraction, panic-safe logging, and
// best-effort event emission. The stage packages (rubric, review, synthesis)
// embed BaseActivities rather than reimplementing these concerns.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/hireloop/panelist/pkg/events"
)

// DefaultTenant is the tenant recorded on events. The deployment is
// single-tenant; the field stays on the envelope for shape stability.
const DefaultTenant = "default"

// Event emission retry bounds. One short retry covers transient sink
// hiccups without delaying the activity result.
const (
	emitAttempts   = 2
	emitRetryDelay = 200 * time.Millisecond
)

// WorkflowContext carries the identifiers an activity stamps onto events
// and logs: which workflow run asked for this work, and which activity
// execution performed it.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	TenantID   string
	ActivityID string
}

// BaseActivities bundles the cross-cutting pieces every pipeline activity
// needs. Stage activity types embed it by value.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities creates the shared infrastructure around an event sink.
// A nil sink disables emission, which is the normal test configuration.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext extracts workflow identifiers from the activity
// context. activity.GetInfo panics outside a real activity environment, so
// tests that call activities directly get stable placeholder identifiers
// instead; idempotency keys derived from them stay deterministic per run.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if recover() != nil {
				wfCtx.WorkflowID = "test-workflow"
				wfCtx.RunID = "test-run-" + uuid.New().String()[:8]
				wfCtx.TenantID = DefaultTenant
				wfCtx.ActivityID = "test-activity"
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
		wfCtx.TenantID = DefaultTenant
	}()

	return wfCtx
}

// EmitEventSafe appends an event to the sink without ever failing the
// calling activity: emission failures are retried once, then logged and
// dropped. Skips entirely when no sink is configured.
func (b *BaseActivities) EmitEventSafe(
	ctx context.Context,
	envelope events.Envelope,
	description string,
) {
	if b.eventSink == nil {
		return
	}

	var lastErr error
	for attempt := 0; attempt < emitAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(emitRetryDelay):
			case <-ctx.Done():
				SafeLogError(ctx, fmt.Sprintf("Event emission cancelled: %s", description),
					"event_type", envelope.Type)
				return
			}
		}

		if err := b.eventSink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		SafeLog(ctx, fmt.Sprintf("Event emitted: %s", description),
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return
	}

	SafeLogError(ctx, fmt.Sprintf("Failed to emit %s after %d attempts", description, emitAttempts),
		"event_type", envelope.Type,
		"error", lastErr)
}

// RecordHeartbeat records an activity heartbeat with the given details.
// Reviewer stages heartbeat at pass boundaries so a stuck LLM call is
// distinguishable from a dead worker.
func (b *BaseActivities) RecordHeartbeat(ctx context.Context, details ...any) {
	RecordHeartbeat(ctx, details...)
}

// SafeLog logs through the activity logger when one is available and is a
// no-op otherwise. activity.GetLogger panics outside activity contexts.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError logs at error level with the same context safety as SafeLog.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}

// RecordHeartbeat is the function form of heartbeat recording for callers
// without a BaseActivities value. Safe outside activity contexts.
func RecordHeartbeat(ctx context.Context, details ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.RecordHeartbeat(ctx, details...)
}
