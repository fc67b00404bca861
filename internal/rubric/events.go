package rubric

import (
	"context"
	"fmt"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/pkg/activity"
	"github.com/hireloop/panelist/pkg/events"
)

// EventEmitter handles domain event emission for rubric generation.
// It bridges domain event construction and the base activity event
// infrastructure. Emission is best-effort: failures are logged without
// affecting the generation activity.
type EventEmitter struct{ base activity.BaseActivities }

// NewEventEmitter creates a new EventEmitter with base activity infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitRubricGenerated emits one RubricGenerated event per run with category
// counts and the number of advisory lint findings.
func (e *EventEmitter) EmitRubricGenerated(
	ctx context.Context,
	rubric *domain.Rubric,
	warningCount int,
	wfCtx activity.WorkflowContext,
) {
	domainEvent, err := domain.NewRubricGeneratedEvent(
		wfCtx.TenantID,
		wfCtx.WorkflowID,
		wfCtx.RunID,
		rubric,
		warningCount,
	)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create RubricGenerated event",
			"role_title", rubric.RoleTitle,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, convertDomainEventToEnvelope(domainEvent), "RubricGenerated")
}

// convertDomainEventToEnvelope converts domain.EventEnvelope to events.Envelope.
// This bridges the domain event system with the base activity infrastructure.
func convertDomainEventToEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             domainEvent.IdempotencyKey, // Use idempotency key for deterministic IDs
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
