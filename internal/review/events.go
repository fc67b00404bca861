package review

import (
	"context"
	"fmt"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/pkg/activity"
	"github.com/hireloop/panelist/pkg/events"
)

// EventEmitter handles domain event emission for reviewer activities.
// Emission is best-effort: failures are logged without affecting the
// review operation.
type EventEmitter struct{ base activity.BaseActivities }

// NewEventEmitter creates a new EventEmitter with base activity infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitReviewCompleted emits one ReviewCompleted event per panelist with
// the scored category count, whether pass-one memory was produced, and the
// node latency.
func (e *EventEmitter) EmitReviewCompleted(
	ctx context.Context,
	reviewed *domain.AgentReview,
	memoryExtracted bool,
	latencyMs int64,
	wfCtx activity.WorkflowContext,
) {
	domainEvent, err := domain.NewReviewCompletedEvent(
		wfCtx.TenantID,
		wfCtx.WorkflowID,
		wfCtx.RunID,
		reviewed,
		memoryExtracted,
		latencyMs,
	)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create ReviewCompleted event",
			"agent_role", reviewed.AgentRole,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, convertDomainEventToEnvelope(domainEvent), "ReviewCompleted")
}

// convertDomainEventToEnvelope converts domain.EventEnvelope to events.Envelope.
func convertDomainEventToEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             domainEvent.IdempotencyKey,
		Type:           string(domainEvent.EventType),
		Source:         domainEvent.Producer,
		Version:        fmt.Sprintf("%d.0.0", domainEvent.Version),
		Timestamp:      domainEvent.OccurredAt,
		IdempotencyKey: domainEvent.IdempotencyKey,
		TenantID:       domainEvent.TenantID,
		WorkflowID:     domainEvent.WorkflowID,
		RunID:          domainEvent.RunID,
		Payload:        domainEvent.Payload,
	}
}
